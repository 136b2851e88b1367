// Package tt implements a transposition table: a bounded cache from Zobrist
// hash to search result, depth-preferring on collision, FIFO-evicted once
// the configured megabyte budget is exceeded. Owned exclusively by one
// engine instance and touched only from its own goroutine, so it carries no
// locking.
package tt

// Flag records what kind of bound Score represents.
type Flag uint8

const (
	Exact Flag = iota
	LowerBound
	UpperBound
)

// Entry is one transposition table record.
type Entry struct {
	Hash     uint64
	Depth    int
	Score    int
	Flag     Flag
	BestMove string // notation, advisory only
}

// bytesPerEntry is a conservative estimate used to convert a megabyte budget
// into an entry count (hash + score + depth + flag + a short notation
// string header).
const bytesPerEntry = 48

// Table is a bounded, depth-preferring, FIFO-evicted transposition table.
type Table struct {
	maxEntries int
	entries    map[uint64]Entry
	order      []uint64 // insertion order, for FIFO eviction
}

// New creates a table sized to hold roughly sizeMB megabytes of entries.
func New(sizeMB int) *Table {
	max := (sizeMB * 1024 * 1024) / bytesPerEntry
	if max < 1 {
		max = 1
	}
	return &Table{
		maxEntries: max,
		entries:    make(map[uint64]Entry),
	}
}

// Probe looks up hash, returning the stored entry and true if present. A hit
// is advisory: a full 64-bit key isn't re-verified against board state here,
// so callers must tolerate the rare Zobrist collision.
func (t *Table) Probe(hash uint64) (Entry, bool) {
	e, ok := t.entries[hash]
	return e, ok
}

// Store records hash -> (depth, score, flag, bestMove), replacing any
// existing entry only if the new depth is at least as deep.
func (t *Table) Store(hash uint64, depth, score int, flag Flag, bestMove string) {
	if existing, ok := t.entries[hash]; ok {
		if depth < existing.Depth {
			return
		}
		t.entries[hash] = Entry{Hash: hash, Depth: depth, Score: score, Flag: flag, BestMove: bestMove}
		return
	}

	if len(t.entries) >= t.maxEntries {
		t.evictOldest()
	}
	t.entries[hash] = Entry{Hash: hash, Depth: depth, Score: score, Flag: flag, BestMove: bestMove}
	t.order = append(t.order, hash)
}

func (t *Table) evictOldest() {
	for len(t.order) > 0 {
		oldest := t.order[0]
		t.order = t.order[1:]
		if _, ok := t.entries[oldest]; ok {
			delete(t.entries, oldest)
			return
		}
	}
}

// Clear empties the table, as required on a new game.
func (t *Table) Clear() {
	t.entries = make(map[uint64]Entry)
	t.order = t.order[:0]
}

// Len returns the current number of stored entries.
func (t *Table) Len() int { return len(t.entries) }
