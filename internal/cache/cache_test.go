package cache

import (
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	opts := badger.DefaultOptions(t.TempDir())
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		t.Fatalf("open badger: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return &Cache{db: db, logger: zerolog.Nop()}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	c := newTestCache(t)
	rec := Record{Score: 42, BestMove: "E6-E8", Depth: 5, NodesSearched: 1000}
	c.Save(0xABCD, 0, 5, rec)

	got, ok := c.Load(0xABCD, 0, 5)
	if !ok {
		t.Fatal("expected a cache hit after Save")
	}
	if got != rec {
		t.Errorf("loaded record %+v does not match saved record %+v", got, rec)
	}
}

func TestLoadMissReturnsFalse(t *testing.T) {
	c := newTestCache(t)
	if _, ok := c.Load(0x1111, 0, 1); ok {
		t.Error("expected a miss on an empty cache")
	}
}

func TestKeyIsDistinctPerDepthAndSide(t *testing.T) {
	c := newTestCache(t)
	c.Save(0xBEEF, 0, 3, Record{Score: 1, BestMove: "a"})
	c.Save(0xBEEF, 1, 3, Record{Score: 2, BestMove: "b"})
	c.Save(0xBEEF, 0, 4, Record{Score: 3, BestMove: "c"})

	white, _ := c.Load(0xBEEF, 0, 3)
	black, _ := c.Load(0xBEEF, 1, 3)
	deeper, _ := c.Load(0xBEEF, 0, 4)

	if white.BestMove != "a" || black.BestMove != "b" || deeper.BestMove != "c" {
		t.Errorf("expected independent entries per (side, depth), got %q %q %q", white.BestMove, black.BestMove, deeper.BestMove)
	}
}
