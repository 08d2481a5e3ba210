package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/hueboard/hueboard/pkg/types"
)

// ImagesStore persists image payloads in the product_lists database,
// keyed by surrogate id. It lives apart from the lists table so large
// blobs never ride along in the frequently-rewritten lists flush.
type ImagesStore struct {
	pool *Pool
}

// NewImagesStore returns an ImagesStore borrowing connections from pool.
func NewImagesStore(pool *Pool) *ImagesStore {
	return &ImagesStore{pool: pool}
}

func (s *ImagesStore) conn() (*Conn, error) {
	return s.pool.Acquire(productListsDB, productListsVersion, upgradeProductLists)
}

// NewImageID generates a surrogate image id.
func NewImageID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// PutMany upserts every record in one transaction and returns the
// stored ids in input order. A record with an empty id fails the batch.
func (s *ImagesStore) PutMany(records []types.ImageRecord) ([]string, error) {
	c, err := s.conn()
	if err != nil {
		return nil, err
	}
	tx, err := c.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("beginning image put: %w", err)
	}
	defer tx.Rollback()

	ids := make([]string, 0, len(records))
	for _, rec := range records {
		if rec.ID == "" {
			return nil, types.ErrInvalidKey
		}
		if _, err := tx.Exec(
			`INSERT INTO images (id, data) VALUES (?, ?)
			 ON CONFLICT(id) DO UPDATE SET data = excluded.data`,
			rec.ID, rec.Data); err != nil {
			return nil, fmt.Errorf("storing image %s: %w", rec.ID, err)
		}
		ids = append(ids, rec.ID)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing image put: %w", err)
	}
	return ids, nil
}

// GetMany reads the given ids in one transaction, preserving input
// order. A missing key yields a record with empty Data: a read miss is
// an expected case, not an error.
func (s *ImagesStore) GetMany(ids []string) ([]types.ImageRecord, error) {
	c, err := s.conn()
	if err != nil {
		return nil, err
	}
	tx, err := c.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("beginning image get: %w", err)
	}
	defer tx.Rollback()

	records := make([]types.ImageRecord, 0, len(ids))
	for _, id := range ids {
		rec := types.ImageRecord{ID: id}
		err := tx.QueryRow(`SELECT data FROM images WHERE id = ?`, id).Scan(&rec.Data)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("reading image %s: %w", id, err)
		}
		records = append(records, rec)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing image get: %w", err)
	}
	return records, nil
}

// DeleteMany removes the given ids in one transaction. The returned
// slice reports, per input slot, whether a row was actually removed.
func (s *ImagesStore) DeleteMany(ids []string) ([]bool, error) {
	c, err := s.conn()
	if err != nil {
		return nil, err
	}
	tx, err := c.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("beginning image delete: %w", err)
	}
	defer tx.Rollback()

	results := make([]bool, len(ids))
	for i, id := range ids {
		res, err := tx.Exec(`DELETE FROM images WHERE id = ?`, id)
		if err != nil {
			return nil, fmt.Errorf("deleting image %s: %w", id, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return nil, fmt.Errorf("deleting image %s: %w", id, err)
		}
		results[i] = n > 0
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing image delete: %w", err)
	}
	return results, nil
}

// Put stores one image.
func (s *ImagesStore) Put(id, data string) error {
	_, err := s.PutMany([]types.ImageRecord{{ID: id, Data: data}})
	return err
}

// Get reads one image; a missing id returns empty data and no error.
func (s *ImagesStore) Get(id string) (string, error) {
	records, err := s.GetMany([]string{id})
	if err != nil {
		return "", err
	}
	return records[0].Data, nil
}

// Delete removes one image, reporting whether it existed.
func (s *ImagesStore) Delete(id string) (bool, error) {
	results, err := s.DeleteMany([]string{id})
	if err != nil {
		return false, err
	}
	return results[0], nil
}
