package cache

import (
	"encoding/json"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"
)

// Record is one cached analysis result, keyed by position hash, side to
// move and search depth.
type Record struct {
	Score         int    `json:"score"`
	BestMove      string `json:"best_move"`
	Depth         int    `json:"depth"`
	NodesSearched uint64 `json:"nodes_searched"`
}

// Cache is a durable, BadgerDB-backed store mapping a position's Zobrist
// hash (plus side to move and depth) to a previously computed analysis,
// letting repeated analyses of the same position across process restarts
// skip the search entirely.
type Cache struct {
	db     *badger.DB
	logger zerolog.Logger
}

// NewCache opens (creating if absent) the analysis cache in the platform
// data directory.
func NewCache(logger zerolog.Logger) (*Cache, error) {
	dir, err := GetDatabaseDir()
	if err != nil {
		return nil, fmt.Errorf("cache: resolve data dir: %w", err)
	}
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("cache: open badger: %w", err)
	}
	logger.Info().Str("dir", dir).Msg("analysis cache opened")
	return &Cache{db: db, logger: logger}, nil
}

// Close releases the underlying database handle.
func (c *Cache) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

func cacheKey(hash uint64, side int, depth int) []byte {
	return []byte(fmt.Sprintf("%016x:%d:%d", hash, side, depth))
}

// Load returns the cached record for (hash, side, depth), if any.
func (c *Cache) Load(hash uint64, side int, depth int) (Record, bool) {
	var rec Record
	found := false
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(cacheKey(hash, side, depth))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			if err := json.Unmarshal(val, &rec); err != nil {
				return err
			}
			found = true
			return nil
		})
	})
	if err != nil {
		c.logger.Warn().Err(err).Msg("analysis cache read failed")
		return Record{}, false
	}
	return rec, found
}

// Save stores rec under (hash, side, depth), overwriting any prior entry.
func (c *Cache) Save(hash uint64, side int, depth int, rec Record) {
	data, err := json.Marshal(rec)
	if err != nil {
		c.logger.Warn().Err(err).Msg("analysis cache marshal failed")
		return
	}
	err = c.db.Update(func(txn *badger.Txn) error {
		return txn.Set(cacheKey(hash, side, depth), data)
	})
	if err != nil {
		c.logger.Warn().Err(err).Msg("analysis cache write failed")
	}
}
