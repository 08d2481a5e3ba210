package sqlite

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/hueboard/hueboard/internal/kvstate"
	"github.com/hueboard/hueboard/internal/quota"
	"github.com/hueboard/hueboard/pkg/types"
)

// stateFile is the key-value state file name under the data directory.
const stateFile = "state.json"

// Storage bundles the pool, the key-value state, and the three stores
// behind one open/close lifecycle.
type Storage struct {
	cfg  types.Config
	pool *Pool
	kv   *kvstate.Store
	acct *quota.Accountant

	Lists    *ListsStore
	Images   *ImagesStore
	Swatches *SwatchStore

	closeOnce sync.Once
	closeErr  error
}

// Open validates cfg, fills in defaults, and wires up the engine. The
// data directory is created if needed; no database file is opened until
// a store is first used.
func Open(cfg types.Config) (*Storage, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.WithDefaults()

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	kv, err := kvstate.Open(filepath.Join(cfg.DataDir, stateFile))
	if err != nil {
		return nil, err
	}

	pool := NewPool(cfg.DataDir, cfg.IdleThreshold, cfg.ReapPeriod)
	if err := pool.Init(); err != nil {
		return nil, err
	}

	acct := quota.NewAccountant(kv)
	swatches := NewSwatchStore(pool)

	return &Storage{
		cfg:      cfg,
		pool:     pool,
		kv:       kv,
		acct:     acct,
		Lists:    NewListsStore(pool, kv, swatches, acct, cfg.DebounceWindow),
		Images:   NewImagesStore(pool),
		Swatches: swatches,
	}, nil
}

// Estimate reports the advisory storage usage against the fixed quota.
func (s *Storage) Estimate() types.StorageEstimate {
	return s.acct.Estimate()
}

// State exposes the key-value state store.
func (s *Storage) State() *kvstate.Store { return s.kv }

// Close flushes pending list changes and shuts the pool down.
// Idempotent; later calls return the first result.
func (s *Storage) Close() error {
	s.closeOnce.Do(func() {
		flushErr := s.Lists.FlushNow()
		shutErr := s.pool.Shutdown()
		if flushErr != nil {
			s.closeErr = flushErr
			return
		}
		s.closeErr = shutErr
	})
	return s.closeErr
}
