package tt

import "testing"

func TestStoreAndProbe(t *testing.T) {
	table := New(1)
	table.Store(0x1234, 5, 100, Exact, "E6-E8")

	entry, ok := table.Probe(0x1234)
	if !ok {
		t.Fatal("expected a hit")
	}
	if entry.Score != 100 || entry.Depth != 5 || entry.BestMove != "E6-E8" {
		t.Errorf("unexpected entry: %+v", entry)
	}
}

func TestProbeMiss(t *testing.T) {
	table := New(1)
	if _, ok := table.Probe(0xDEAD); ok {
		t.Error("expected a miss on an empty table")
	}
}

func TestDepthPreferringReplacement(t *testing.T) {
	table := New(1)
	table.Store(0x1234, 10, 100, Exact, "deep")
	table.Store(0x1234, 3, -50, Exact, "shallow")

	entry, _ := table.Probe(0x1234)
	if entry.Depth != 10 || entry.BestMove != "deep" {
		t.Errorf("shallower store should not replace a deeper entry: %+v", entry)
	}

	table.Store(0x1234, 12, 77, Exact, "deeper")
	entry, _ = table.Probe(0x1234)
	if entry.Depth != 12 || entry.BestMove != "deeper" {
		t.Errorf("a deeper store should replace the existing entry: %+v", entry)
	}
}

func TestFIFOEvictionRespectsBudget(t *testing.T) {
	// A zero-megabyte budget holds no 48-byte entry at all, so New clamps
	// it to a single entry and every new store evicts the previous one.
	table := New(0) // New clamps to at least 1 entry
	for i := uint64(0); i < 10; i++ {
		table.Store(i, 1, int(i), Exact, "")
	}
	if table.Len() > 1 {
		t.Errorf("expected eviction to keep the table near its minimum size, got %d entries", table.Len())
	}
	if _, ok := table.Probe(9); !ok {
		t.Error("expected the most recently stored entry to still be present")
	}
}

func TestClearEmptiesTable(t *testing.T) {
	table := New(1)
	table.Store(1, 1, 1, Exact, "")
	table.Clear()
	if table.Len() != 0 {
		t.Errorf("expected empty table after Clear, got %d entries", table.Len())
	}
}
