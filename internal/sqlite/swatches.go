package sqlite

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/hueboard/hueboard/internal/log"
	"github.com/hueboard/hueboard/pkg/types"
)

// SwatchStore persists saved colors in the color_picker database, keyed
// by an autoincrement id with a non-unique composite index over
// (list_name, product_id, variant_index). Insertion is a set union: no
// two swatches under one composite key carry the same HSL triple.
type SwatchStore struct {
	pool *Pool
	log  *slog.Logger
}

// NewSwatchStore returns a SwatchStore borrowing connections from pool.
func NewSwatchStore(pool *Pool) *SwatchStore {
	return &SwatchStore{pool: pool, log: log.WithComponent("swatches")}
}

func (s *SwatchStore) conn() (*Conn, error) {
	return s.pool.Acquire(colorPickerDB, colorPickerVersion, upgradeColorPicker)
}

// SaveMany inserts the colors not already present under the composite
// key, stamping each with the current time. It reports whether anything
// was inserted. Duplicates within the input batch collapse too.
func (s *SwatchStore) SaveMany(colors []types.HSLColor, listName, productID string, variantIndex int) (bool, error) {
	if listName == "" || productID == "" {
		return false, types.ErrInvalidKey
	}
	if variantIndex < 0 {
		return false, types.ErrVariantIndex
	}
	if len(colors) == 0 {
		return false, nil
	}

	c, err := s.conn()
	if err != nil {
		return false, err
	}
	tx, err := c.db.Begin()
	if err != nil {
		return false, fmt.Errorf("beginning swatch save: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.Query(
		`SELECT hue, saturation, lightness FROM swatches
		 WHERE list_name = ? AND product_id = ? AND variant_index = ?`,
		listName, productID, variantIndex)
	if err != nil {
		return false, fmt.Errorf("reading existing swatches: %w", err)
	}
	existing := make(map[types.HSLColor]struct{})
	for rows.Next() {
		var col types.HSLColor
		if err := rows.Scan(&col.Hue, &col.Saturation, &col.Lightness); err != nil {
			rows.Close()
			return false, fmt.Errorf("scanning existing swatch: %w", err)
		}
		existing[col] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return false, err
	}
	rows.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	inserted := false
	for _, col := range colors {
		if _, dup := existing[col]; dup {
			continue
		}
		if _, err := tx.Exec(
			`INSERT INTO swatches (list_name, product_id, variant_index, hue, saturation, lightness, timestamp)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			listName, productID, variantIndex,
			col.Hue, col.Saturation, col.Lightness, now); err != nil {
			return false, fmt.Errorf("inserting swatch: %w", err)
		}
		existing[col] = struct{}{}
		inserted = true
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("committing swatch save: %w", err)
	}
	return inserted, nil
}

// Save is the single-color form of SaveMany.
func (s *SwatchStore) Save(color types.HSLColor, listName, productID string, variantIndex int) (bool, error) {
	return s.SaveMany([]types.HSLColor{color}, listName, productID, variantIndex)
}

// Load returns every swatch under the exact composite key, in insertion
// order.
func (s *SwatchStore) Load(listName, productID string, variantIndex int) ([]types.Swatch, error) {
	c, err := s.conn()
	if err != nil {
		return nil, err
	}

	rows, err := c.db.Query(
		`SELECT id, list_name, product_id, variant_index, hue, saturation, lightness, timestamp
		 FROM swatches
		 WHERE list_name = ? AND product_id = ? AND variant_index = ?
		 ORDER BY id`,
		listName, productID, variantIndex)
	if err != nil {
		return nil, fmt.Errorf("loading swatches: %w", err)
	}
	defer rows.Close()

	var swatches []types.Swatch
	for rows.Next() {
		var sw types.Swatch
		if err := rows.Scan(&sw.ID, &sw.ListName, &sw.ProductID, &sw.VariantIndex,
			&sw.Hue, &sw.Saturation, &sw.Lightness, &sw.Timestamp); err != nil {
			return nil, fmt.Errorf("scanning swatch: %w", err)
		}
		swatches = append(swatches, sw)
	}
	return swatches, rows.Err()
}

// DeleteMany removes swatches by id in one transaction. The returned
// slice reports, per input slot, whether a row was actually removed.
func (s *SwatchStore) DeleteMany(ids []int64) ([]bool, error) {
	results := make([]bool, len(ids))
	if len(ids) == 0 {
		return results, nil
	}

	c, err := s.conn()
	if err != nil {
		return nil, err
	}
	tx, err := c.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("beginning swatch delete: %w", err)
	}
	defer tx.Rollback()

	for i, id := range ids {
		res, err := tx.Exec(`DELETE FROM swatches WHERE id = ?`, id)
		if err != nil {
			return nil, fmt.Errorf("deleting swatch %d: %w", id, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return nil, fmt.Errorf("deleting swatch %d: %w", id, err)
		}
		results[i] = n > 0
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing swatch delete: %w", err)
	}
	return results, nil
}

// Delete removes one swatch by id, reporting whether it existed.
func (s *SwatchStore) Delete(id int64) (bool, error) {
	results, err := s.DeleteMany([]int64{id})
	if err != nil {
		return false, err
	}
	return results[0], nil
}

// DeleteByVariant removes every swatch under the exact composite key:
// the cascade issued when a color variant is removed.
func (s *SwatchStore) DeleteByVariant(listName, productID string, variantIndex int) error {
	c, err := s.conn()
	if err != nil {
		return err
	}

	rows, err := c.db.Query(
		`SELECT id FROM swatches
		 WHERE list_name = ? AND product_id = ? AND variant_index = ?`,
		listName, productID, variantIndex)
	if err != nil {
		return fmt.Errorf("finding variant swatches: %w", err)
	}
	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return fmt.Errorf("scanning swatch id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	_, err = s.DeleteMany(ids)
	return err
}

// RenumberFrom rewrites every swatch for (listName, productID) whose
// variant index is at or past startIndex with the index decremented by
// one, preserving record ids. The matches are snapshotted before any
// rewrite so records cannot be skipped while the range shifts under the
// scan. Issued after an earlier-indexed sibling variant is removed.
func (s *SwatchStore) RenumberFrom(listName, productID string, startIndex int) error {
	c, err := s.conn()
	if err != nil {
		return err
	}
	tx, err := c.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning swatch renumber: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.Query(
		`SELECT id, variant_index FROM swatches
		 WHERE list_name = ? AND product_id = ? AND variant_index >= ?`,
		listName, productID, startIndex)
	if err != nil {
		return fmt.Errorf("finding swatches to renumber: %w", err)
	}
	type match struct {
		id  int64
		idx int
	}
	var matches []match
	for rows.Next() {
		var m match
		if err := rows.Scan(&m.id, &m.idx); err != nil {
			rows.Close()
			return fmt.Errorf("scanning swatch to renumber: %w", err)
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	for _, m := range matches {
		if _, err := tx.Exec(
			`UPDATE swatches SET variant_index = ? WHERE id = ?`,
			m.idx-1, m.id); err != nil {
			return fmt.Errorf("renumbering swatch %d: %w", m.id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing swatch renumber: %w", err)
	}
	return nil
}
