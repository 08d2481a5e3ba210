// Package sqlite implements the hueboard storage engine on embedded
// SQLite: a connection pool keyed by logical database name, a versioned
// schema migrator, and the lists, images, and swatch stores.
//
// Each logical database name maps to one SQLite file under the data
// directory. The pool owns every handle; stores borrow a handle per
// operation and never cache it.
package sqlite

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/hueboard/hueboard/internal/log"
	"github.com/hueboard/hueboard/pkg/types"
)

// UpgradeFunc migrates a database's schema inside the upgrade
// transaction. oldVersion is the version found on disk (0 for a fresh
// file), newVersion the target being applied.
type UpgradeFunc func(tx *sql.Tx, oldVersion, newVersion int) error

// Conn is one pooled handle. At most one open Conn exists per logical
// database name at a time.
type Conn struct {
	name     string
	db       *sql.DB
	closed   bool
	lastUsed time.Time
}

// DB returns the underlying database handle.
func (c *Conn) DB() *sql.DB { return c.db }

// openCall memoizes an in-flight open so concurrent Acquire calls for
// the same unopened name share one underlying open. The memo is cleared
// once the open settles; failures are never cached.
type openCall struct {
	done chan struct{}
	conn *Conn
	err  error
}

// Pool maintains at most one live handle per logical database name,
// lazily opening, reusing, and reaping idle handles.
type Pool struct {
	dataDir       string
	idleThreshold time.Duration
	reapPeriod    time.Duration
	log           *slog.Logger

	mu      sync.Mutex
	conns   map[string]*Conn
	opening map[string]*openCall
	opens   int // underlying opens performed; read by tests
	closed  bool
	quit    chan struct{}
	wg      sync.WaitGroup
}

// NewPool creates a pool rooted at dataDir. Init must be called before
// use; Shutdown releases every handle.
func NewPool(dataDir string, idleThreshold, reapPeriod time.Duration) *Pool {
	return &Pool{
		dataDir:       dataDir,
		idleThreshold: idleThreshold,
		reapPeriod:    reapPeriod,
		log:           log.WithComponent("pool"),
		conns:         make(map[string]*Conn),
		opening:       make(map[string]*openCall),
		quit:          make(chan struct{}),
	}
}

// Init creates the data directory and starts the idle reaper.
func (p *Pool) Init() error {
	if err := os.MkdirAll(p.dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}
	if p.reapPeriod > 0 {
		p.wg.Add(1)
		go p.reapLoop()
	}
	return nil
}

// Shutdown stops the reaper and closes every handle. Idempotent.
func (p *Pool) Shutdown() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.quit)

	var firstErr error
	for name, c := range p.conns {
		if !c.closed {
			if err := c.db.Close(); err != nil && firstErr == nil {
				firstErr = fmt.Errorf("closing %s: %w", name, err)
			}
			c.closed = true
		}
	}
	p.conns = make(map[string]*Conn)
	p.mu.Unlock()

	p.wg.Wait()
	return firstErr
}

// Acquire returns the open handle for name, opening and migrating the
// database first if needed. Concurrent calls for the same unopened name
// share a single open; every call refreshes the handle's last-used time.
func (p *Pool) Acquire(name string, version int, upgrade UpgradeFunc) (*Conn, error) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, types.ErrStorageClosed
	}
	if c, ok := p.conns[name]; ok && !c.closed {
		c.lastUsed = time.Now()
		p.mu.Unlock()
		return c, nil
	}
	if call, ok := p.opening[name]; ok {
		p.mu.Unlock()
		<-call.done
		if call.err != nil {
			return nil, call.err
		}
		p.mu.Lock()
		call.conn.lastUsed = time.Now()
		p.mu.Unlock()
		return call.conn, nil
	}

	call := &openCall{done: make(chan struct{})}
	p.opening[name] = call
	p.mu.Unlock()

	conn, err := p.open(name, version, upgrade)

	p.mu.Lock()
	delete(p.opening, name)
	if err == nil {
		p.conns[name] = conn
		call.conn = conn
	} else {
		call.err = err
	}
	p.mu.Unlock()
	close(call.done)

	return conn, err
}

// open opens the SQLite file for name and brings its schema up to
// version.
func (p *Pool) open(name string, version int, upgrade UpgradeFunc) (*Conn, error) {
	path := filepath.Join(p.dataDir, name+".db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", name, err)
	}
	// The modernc driver serializes writers per connection; a single
	// connection avoids SQLITE_BUSY under concurrent store calls.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("opening %s: %w", name, err)
	}
	if err := migrate(db, version, upgrade); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating %s: %w", name, err)
	}

	p.mu.Lock()
	p.opens++
	p.mu.Unlock()

	return &Conn{name: name, db: db, lastUsed: time.Now()}, nil
}

// reapLoop periodically closes handles idle past the threshold.
func (p *Pool) reapLoop() {
	defer p.wg.Done()
	ticker := time.NewTicker(p.reapPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-p.quit:
			return
		case now := <-ticker.C:
			p.reapIdle(now)
		}
	}
}

// reapIdle closes every open handle unused for longer than the idle
// threshold. Best-effort: a reap racing a caller just forces a fresh
// open on the next Acquire.
func (p *Pool) reapIdle(now time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for name, c := range p.conns {
		if !c.closed && now.Sub(c.lastUsed) > p.idleThreshold {
			if err := c.db.Close(); err != nil {
				p.log.Debug("closing idle connection failed", "db", name, "err", err)
			}
			c.closed = true
			p.log.Debug("closed idle connection", "db", name)
		}
	}
}
