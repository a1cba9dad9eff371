// Package epochdb persists epoch aggregator checkpoints in a pebble database.
package epochdb

import (
	"errors"

	"github.com/Fantom-foundation/lachesis-base/common/bigendian"
	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/cockroachdb/pebble"

	"github.com/rony4d/go-asset-shard/inter/iepochstats"
	"github.com/rony4d/go-asset-shard/logger"
)

// ErrNoCheckpoint is returned when no checkpoint is stored for the request.
var ErrNoCheckpoint = errors.New("no checkpoint found")

// statsPrefix keys the aggregator checkpoints, ordered by epoch.
var statsPrefix = []byte("s")

// Config tunes the pebble instance backing the store.
type Config struct {
	CacheMB      int  // block cache size
	MaxOpenFiles int  // file descriptor budget
	SyncWrites   bool // fsync every saved checkpoint
	DisableWAL   bool // skip the write-ahead log, losing crash safety
}

// DefaultConfig returns the balanced store configuration with durable writes.
func DefaultConfig() Config {
	return Config{
		CacheMB:      64,
		MaxOpenFiles: 512,
		SyncWrites:   true,
	}
}

// Store persists one aggregator checkpoint per epoch.
// A checkpoint is the canonical encoding of the aggregator, so the stored
// bytes are comparable across nodes.
type Store struct {
	db *pebble.DB
	wo *pebble.WriteOptions

	logger.Instance
}

// Open opens or creates the checkpoint database at the given path.
func Open(path string, cfg Config) (*Store, error) {
	opts := &pebble.Options{
		MaxOpenFiles: cfg.MaxOpenFiles,
		DisableWAL:   cfg.DisableWAL,
	}
	if cfg.CacheMB > 0 {
		cache := pebble.NewCache(int64(cfg.CacheMB) << 20)
		defer cache.Unref()
		opts.Cache = cache
	}
	db, err := pebble.Open(path, opts)
	if err != nil {
		return nil, err
	}
	wo := pebble.Sync
	if !cfg.SyncWrites || cfg.DisableWAL {
		// pebble rejects synced writes while the WAL is off.
		wo = pebble.NoSync
	}
	return &Store{
		db:       db,
		wo:       wo,
		Instance: logger.New("epochdb"),
	}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func checkpointKey(epoch idx.Epoch) []byte {
	return append(statsPrefix, bigendian.Uint32ToBytes(uint32(epoch))...)
}

func checkpointBounds() *pebble.IterOptions {
	return &pebble.IterOptions{
		LowerBound: statsPrefix,
		UpperBound: append(append([]byte{}, statsPrefix...), 0xFF),
	}
}

// SaveCheckpoint writes the aggregator checkpoint under its epoch,
// replacing a previous checkpoint of the same epoch.
func (s *Store) SaveCheckpoint(a *iepochstats.Aggregator) error {
	b, err := a.MarshalBinary()
	if err != nil {
		return err
	}
	if err := s.db.Set(checkpointKey(a.Epoch), b, s.wo); err != nil {
		return err
	}
	s.Log.WithField("epoch", a.Epoch).Debug("Saved epoch checkpoint")
	return nil
}

// LoadCheckpoint reads the aggregator checkpoint of the given epoch.
func (s *Store) LoadCheckpoint(epoch idx.Epoch) (*iepochstats.Aggregator, error) {
	b, closer, err := s.db.Get(checkpointKey(epoch))
	if err == pebble.ErrNotFound {
		return nil, ErrNoCheckpoint
	}
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	a := &iepochstats.Aggregator{}
	if err := a.UnmarshalBinary(b); err != nil {
		return nil, err
	}
	return a, nil
}

// LatestCheckpoint returns the stored checkpoint with the highest epoch.
func (s *Store) LatestCheckpoint() (*iepochstats.Aggregator, error) {
	it, err := s.db.NewIter(checkpointBounds())
	if err != nil {
		return nil, err
	}
	defer it.Close()

	if !it.Last() {
		return nil, ErrNoCheckpoint
	}
	a := &iepochstats.Aggregator{}
	if err := a.UnmarshalBinary(it.Value()); err != nil {
		return nil, err
	}
	return a, nil
}

// Epochs lists the epochs with a stored checkpoint, in ascending order.
func (s *Store) Epochs() ([]idx.Epoch, error) {
	it, err := s.db.NewIter(checkpointBounds())
	if err != nil {
		return nil, err
	}
	defer it.Close()

	epochs := []idx.Epoch{}
	for it.First(); it.Valid(); it.Next() {
		key := it.Key()
		if len(key) != len(statsPrefix)+4 {
			continue
		}
		epochs = append(epochs, idx.Epoch(bigendian.BytesToUint32(key[len(statsPrefix):])))
	}
	return epochs, it.Error()
}
