package types

import (
	"errors"
	"time"
)

// Default tuning values applied by Config.WithDefaults.
const (
	DefaultDebounceWindow = 300 * time.Millisecond
	DefaultIdleThreshold  = 60 * time.Second
	DefaultReapPeriod     = 60 * time.Second
)

// Config holds the parameters for opening the storage engine.
type Config struct {
	// DataDir is where the SQLite files and the key-value state file live.
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// DebounceWindow is how long the lists store coalesces mutations
	// before flushing them as one transaction. Zero means the default.
	DebounceWindow time.Duration `json:"debounce_window" yaml:"debounce_window"`

	// IdleThreshold is how long a pooled connection may sit unused
	// before the reaper closes it. Zero means the default.
	IdleThreshold time.Duration `json:"idle_threshold" yaml:"idle_threshold"`

	// ReapPeriod is how often the pool scans for idle connections.
	// Zero means the default.
	ReapPeriod time.Duration `json:"reap_period" yaml:"reap_period"`
}

// Config validation errors.
var (
	ErrDataDirEmpty   = errors.New("data dir must not be empty")
	ErrWindowNegative = errors.New("debounce window must not be negative")
	ErrIdleNegative   = errors.New("idle threshold must not be negative")
	ErrPeriodNegative = errors.New("reap period must not be negative")
)

// Validate checks that the Config is well-formed. It returns a sentinel
// error from this package on failure.
func (c Config) Validate() error {
	if c.DataDir == "" {
		return ErrDataDirEmpty
	}
	if c.DebounceWindow < 0 {
		return ErrWindowNegative
	}
	if c.IdleThreshold < 0 {
		return ErrIdleNegative
	}
	if c.ReapPeriod < 0 {
		return ErrPeriodNegative
	}
	return nil
}

// WithDefaults returns a copy of the Config with zero tuning values
// replaced by the package defaults.
func (c Config) WithDefaults() Config {
	if c.DebounceWindow == 0 {
		c.DebounceWindow = DefaultDebounceWindow
	}
	if c.IdleThreshold == 0 {
		c.IdleThreshold = DefaultIdleThreshold
	}
	if c.ReapPeriod == 0 {
		c.ReapPeriod = DefaultReapPeriod
	}
	return c
}
