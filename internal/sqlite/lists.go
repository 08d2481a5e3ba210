package sqlite

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/hueboard/hueboard/internal/kvstate"
	"github.com/hueboard/hueboard/internal/log"
	"github.com/hueboard/hueboard/internal/quota"
	"github.com/hueboard/hueboard/pkg/types"
)

// orderKey is the kvstate entry holding the persisted list display order.
const orderKey = "listOrder"

// ListsStore holds the curated lists in memory and persists them with
// debounced, coalesced full rewrites: every mutation goes through
// Replace, which marks a clear+rewrite-all pending change and arms the
// debounce window; the flush then clears the lists table and re-inserts
// the whole mapping in one transaction. Rapid interactive edits
// (drag-reorder, per-keystroke renames) therefore cost one write
// transaction per quiet window, at the price of losing at most one
// window of changes on a crash. Acceptable: this is curation data, not
// a system of record.
//
// List display order is not the engine's native key order; it is kept as
// a separate artifact in kvstate and reconciled against the live list
// names on every change and on load.
type ListsStore struct {
	pool     *Pool
	kv       *kvstate.Store
	swatches *SwatchStore
	acct     *quota.Accountant
	log      *slog.Logger
	debounce *Debouncer

	mu    sync.Mutex
	state map[string][]types.ProductEntry
	order []string
	dirty bool
	saves int // flush transactions executed; read by tests

	flushMu sync.Mutex // at most one flush in flight
}

// NewListsStore wires a ListsStore. The swatch store receives the
// cascade when variants are removed; the accountant records the
// serialized state size after every mutation.
func NewListsStore(pool *Pool, kv *kvstate.Store, swatches *SwatchStore, acct *quota.Accountant, window time.Duration) *ListsStore {
	return &ListsStore{
		pool:     pool,
		kv:       kv,
		swatches: swatches,
		acct:     acct,
		log:      log.WithComponent("lists"),
		debounce: NewDebouncer(window),
		state:    make(map[string][]types.ProductEntry),
	}
}

func (s *ListsStore) conn() (*Conn, error) {
	return s.pool.Acquire(productListsDB, productListsVersion, upgradeProductLists)
}

// LoadAll reads every list in one transaction, reshapes the rows into
// the in-memory mapping, reconciles the persisted display order, and
// returns a snapshot. Called once at startup.
func (s *ListsStore) LoadAll() (map[string][]types.ProductEntry, error) {
	c, err := s.conn()
	if err != nil {
		return nil, err
	}

	rows, err := c.db.Query(`SELECT list_name, products FROM lists`)
	if err != nil {
		return nil, fmt.Errorf("loading lists: %w", err)
	}
	defer rows.Close()

	state := make(map[string][]types.ProductEntry)
	for rows.Next() {
		var name, productsJSON string
		if err := rows.Scan(&name, &productsJSON); err != nil {
			return nil, fmt.Errorf("scanning list: %w", err)
		}
		var products []types.ProductEntry
		if err := json.Unmarshal([]byte(productsJSON), &products); err != nil {
			return nil, fmt.Errorf("decoding list %q: %w", name, err)
		}
		state[name] = products
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.state = state
	s.order = reconcileOrder(s.persistedOrder(), naturalOrder(state))
	snap := s.snapshotLocked()
	s.mu.Unlock()
	return snap, nil
}

// Replace applies the updater to the current mapping and schedules the
// debounced flush. It is the only mutation primitive: the caller hands
// back the complete next state and the store persists it wholesale.
func (s *ListsStore) Replace(update func(map[string][]types.ProductEntry) map[string][]types.ProductEntry) {
	s.mu.Lock()
	next := update(s.snapshotLocked())
	if next == nil {
		next = make(map[string][]types.ProductEntry)
	}
	s.state = next
	s.order = reconcileOrder(s.order, naturalOrder(next))
	s.dirty = true
	s.persistOrderLocked()
	s.mu.Unlock()

	if s.acct != nil {
		if err := s.acct.RecordUsage(quota.ObjectSize(next)); err != nil {
			s.log.Warn("recording storage usage failed", "err", err)
		}
	}

	s.debounce.Schedule(s.flush)
}

// Lists returns a snapshot of the in-memory mapping.
func (s *ListsStore) Lists() map[string][]types.ProductEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Order returns the current display order of list names.
func (s *ListsStore) Order() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.order...)
}

// SetOrder installs a caller-chosen display order (drag reorder). The
// given order is reconciled against the live names before persisting.
func (s *ListsStore) SetOrder(order []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.order = reconcileOrder(order, naturalOrder(s.state))
	s.persistOrderLocked()
}

// FlushNow cancels any pending window and flushes synchronously. Used
// at shutdown so the close does not race a pending debounce.
func (s *ListsStore) FlushNow() error {
	s.debounce.Stop()
	return s.flushOnce()
}

// flush is the debounced entry point. Failures are logged, not
// returned: the dirty flag stays set and the next mutation's debounce
// cycle retries the same full rewrite.
func (s *ListsStore) flush() {
	if err := s.flushOnce(); err != nil {
		s.log.Error("list flush failed, changes remain queued", "err", err)
	}
}

// flushOnce writes the whole mapping in one transaction. Only one flush
// runs at a time; changes arriving mid-flush set dirty again and arm a
// fresh debounce cycle after this one settles.
func (s *ListsStore) flushOnce() error {
	s.flushMu.Lock()
	defer s.flushMu.Unlock()

	s.mu.Lock()
	if !s.dirty {
		s.mu.Unlock()
		return nil
	}
	snap := s.snapshotLocked()
	s.dirty = false
	s.mu.Unlock()

	if err := s.writeAll(snap); err != nil {
		s.mu.Lock()
		s.dirty = true
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	s.saves++
	redo := s.dirty
	s.mu.Unlock()
	if redo {
		s.debounce.Schedule(s.flush)
	}
	return nil
}

// writeAll clears the lists table and re-inserts every pair. The
// rewrite is idempotent full-state replacement, so a failed flush is
// safely retried as-is.
func (s *ListsStore) writeAll(state map[string][]types.ProductEntry) error {
	c, err := s.conn()
	if err != nil {
		return err
	}
	tx, err := c.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning list flush: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM lists`); err != nil {
		return fmt.Errorf("clearing lists: %w", err)
	}
	for name, products := range state {
		productsJSON, err := json.Marshal(products)
		if err != nil {
			return fmt.Errorf("encoding list %q: %w", name, err)
		}
		if _, err := tx.Exec(
			`INSERT INTO lists (list_name, products) VALUES (?, ?)`,
			name, string(productsJSON)); err != nil {
			return fmt.Errorf("writing list %q: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing list flush: %w", err)
	}
	return nil
}

// RemoveVariant removes the color variant at variantIndex from the
// addressed product. The swatch cascade runs first and is awaited:
// delete the removed variant's swatches, then renumber the swatches of
// every later sibling down by one so they stay attached to the right
// position. A cascade failure is logged distinctly and the splice still
// proceeds; that inconsistency window is accepted in favor of keeping
// the UI responsive. A product left with no variants is removed from
// its list.
func (s *ListsStore) RemoveVariant(listName, productID string, variantIndex int) error {
	s.mu.Lock()
	products, ok := s.state[listName]
	if !ok {
		s.mu.Unlock()
		return types.ErrListNotFound
	}
	found := false
	for _, p := range products {
		if p.ID == productID {
			if variantIndex < 0 || variantIndex >= len(p.ColorVariants) {
				s.mu.Unlock()
				return types.ErrVariantIndex
			}
			found = true
			break
		}
	}
	s.mu.Unlock()
	if !found {
		return types.ErrProductNotFound
	}

	if err := s.swatches.DeleteByVariant(listName, productID, variantIndex); err != nil {
		s.log.Error("swatch cascade delete failed, continuing with variant removal",
			"list", listName, "product", productID, "variant", variantIndex, "err", err)
	}
	if err := s.swatches.RenumberFrom(listName, productID, variantIndex+1); err != nil {
		s.log.Error("swatch cascade renumber failed, continuing with variant removal",
			"list", listName, "product", productID, "variant", variantIndex, "err", err)
	}

	s.Replace(func(state map[string][]types.ProductEntry) map[string][]types.ProductEntry {
		products := state[listName]
		next := products[:0]
		for _, p := range products {
			if p.ID == productID {
				p.ColorVariants = append(
					append([]types.ColorVariant(nil), p.ColorVariants[:variantIndex]...),
					p.ColorVariants[variantIndex+1:]...)
				if len(p.ColorVariants) == 0 {
					continue
				}
			}
			next = append(next, p)
		}
		state[listName] = next
		return state
	})
	return nil
}

// CreateList adds an empty list. Creating an existing list is a no-op.
func (s *ListsStore) CreateList(name string) error {
	if name == "" {
		return types.ErrInvalidKey
	}
	s.Replace(func(state map[string][]types.ProductEntry) map[string][]types.ProductEntry {
		if _, ok := state[name]; !ok {
			state[name] = []types.ProductEntry{}
		}
		return state
	})
	return nil
}

// DeleteList removes a list and drops its name from the display order.
func (s *ListsStore) DeleteList(name string) error {
	s.mu.Lock()
	_, ok := s.state[name]
	s.mu.Unlock()
	if !ok {
		return types.ErrListNotFound
	}
	s.Replace(func(state map[string][]types.ProductEntry) map[string][]types.ProductEntry {
		delete(state, name)
		return state
	})
	return nil
}

// RemoveProduct drops a product entry from a list.
func (s *ListsStore) RemoveProduct(listName, productID string) error {
	s.mu.Lock()
	_, ok := s.state[listName]
	s.mu.Unlock()
	if !ok {
		return types.ErrListNotFound
	}
	s.Replace(func(state map[string][]types.ProductEntry) map[string][]types.ProductEntry {
		products := state[listName]
		next := products[:0]
		for _, p := range products {
			if p.ID != productID {
				next = append(next, p)
			}
		}
		state[listName] = next
		return state
	})
	return nil
}

// AddVariant appends a color variant to the product in the named list,
// creating the list or the product entry as needed. A variant with the
// same HSL triple and image position as an existing one is skipped, so
// repeated captures do not pile up duplicates.
func (s *ListsStore) AddVariant(listName string, product types.ProductEntry, variant types.ColorVariant) error {
	if listName == "" || product.ID == "" {
		return types.ErrInvalidKey
	}
	s.Replace(func(state map[string][]types.ProductEntry) map[string][]types.ProductEntry {
		products := state[listName]
		for i, p := range products {
			if p.ID != product.ID {
				continue
			}
			for _, v := range p.ColorVariants {
				if v.SameColors(variant) && v.ImageIndex == variant.ImageIndex {
					return state
				}
			}
			p.ColorVariants = append(append([]types.ColorVariant(nil), p.ColorVariants...), variant)
			products[i] = p
			state[listName] = products
			return state
		}
		entry := product.Clone()
		entry.ColorVariants = []types.ColorVariant{variant}
		state[listName] = append(products, entry)
		return state
	})
	return nil
}

// SetNotes replaces the notes on a product entry.
func (s *ListsStore) SetNotes(listName, productID string, notes []types.Note) error {
	s.mu.Lock()
	_, ok := s.state[listName]
	s.mu.Unlock()
	if !ok {
		return types.ErrListNotFound
	}
	s.Replace(func(state map[string][]types.ProductEntry) map[string][]types.ProductEntry {
		products := state[listName]
		for i, p := range products {
			if p.ID == productID {
				p.Notes = append([]types.Note(nil), notes...)
				products[i] = p
				break
			}
		}
		state[listName] = products
		return state
	})
	return nil
}

// snapshotLocked deep-copies the mapping. The caller must hold mu.
func (s *ListsStore) snapshotLocked() map[string][]types.ProductEntry {
	snap := make(map[string][]types.ProductEntry, len(s.state))
	for name, products := range s.state {
		cp := make([]types.ProductEntry, len(products))
		for i, p := range products {
			cp[i] = p.Clone()
		}
		snap[name] = cp
	}
	return snap
}

// persistedOrder reads the order artifact from kvstate. Missing or
// corrupt state yields nil, which reconciliation turns into natural key
// order.
func (s *ListsStore) persistedOrder() []string {
	raw, ok := s.kv.Get(orderKey)
	if !ok {
		return nil
	}
	var order []string
	if err := json.Unmarshal([]byte(raw), &order); err != nil {
		s.log.Warn("persisted list order is corrupt, falling back to key order", "err", err)
		return nil
	}
	return order
}

// persistOrderLocked writes the order artifact. The caller must hold mu.
func (s *ListsStore) persistOrderLocked() {
	data, err := json.Marshal(s.order)
	if err != nil {
		return
	}
	if err := s.kv.Set(orderKey, string(data)); err != nil {
		s.log.Warn("persisting list order failed", "err", err)
	}
}

// reconcileOrder intersects a persisted order with the live name set:
// names no longer live are dropped, live names not yet ordered are
// appended in the order given by live. Idempotent, and safe against any
// stale or foreign persisted order.
func reconcileOrder(order, live []string) []string {
	liveSet := make(map[string]bool, len(live))
	for _, name := range live {
		liveSet[name] = true
	}

	result := make([]string, 0, len(live))
	seen := make(map[string]bool, len(live))
	for _, name := range order {
		if liveSet[name] && !seen[name] {
			result = append(result, name)
			seen[name] = true
		}
	}
	for _, name := range live {
		if !seen[name] {
			result = append(result, name)
			seen[name] = true
		}
	}
	return result
}

// naturalOrder returns the list names in the engine's native key order
// (lexicographic).
func naturalOrder(state map[string][]types.ProductEntry) []string {
	names := make([]string, 0, len(state))
	for name := range state {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
