package sqlite

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openRaw(t *testing.T, name string) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), name+".db"))
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

func userVersion(t *testing.T, db *sql.DB) int {
	t.Helper()
	var v int
	require.NoError(t, db.QueryRow(`PRAGMA user_version`).Scan(&v))
	return v
}

func TestMigrateFreshDatabase(t *testing.T) {
	db := openRaw(t, "fresh")

	require.NoError(t, migrate(db, productListsVersion, upgradeProductLists))
	assert.Equal(t, productListsVersion, userVersion(t, db))

	// Both tables exist and are queryable.
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM lists`).Scan(&n))
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM images`).Scan(&n))
}

func TestMigrateAlreadyCurrent(t *testing.T) {
	db := openRaw(t, "current")

	require.NoError(t, migrate(db, productListsVersion, upgradeProductLists))

	ran := false
	require.NoError(t, migrate(db, productListsVersion, func(tx *sql.Tx, oldVersion, newVersion int) error {
		ran = true
		return nil
	}))
	assert.False(t, ran, "upgrade must not run when already at target")
}

func TestMigrateDestructiveRecreate(t *testing.T) {
	db := openRaw(t, "picker")

	// Simulate an old schema generation holding data.
	require.NoError(t, migrate(db, 1, upgradeColorPicker))
	_, err := db.Exec(
		`INSERT INTO swatches (list_name, product_id, variant_index, hue, saturation, lightness, timestamp)
		 VALUES ('favs', 'p1', 0, 10, 20, 30, '2026-01-01T00:00:00Z')`)
	require.NoError(t, err)

	// The bump to the current generation drops and recreates the table.
	require.NoError(t, migrate(db, colorPickerVersion, upgradeColorPicker))
	assert.Equal(t, colorPickerVersion, userVersion(t, db))

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM swatches`).Scan(&n))
	assert.Zero(t, n)
}

func TestMigrateUpgradeFailureRollsBack(t *testing.T) {
	db := openRaw(t, "rollback")

	err := migrate(db, 1, func(tx *sql.Tx, oldVersion, newVersion int) error {
		if _, err := tx.Exec(`CREATE TABLE half (id INTEGER)`); err != nil {
			return err
		}
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	// Neither the table nor the version bump survives.
	assert.Zero(t, userVersion(t, db))
	var n int
	scanErr := db.QueryRow(`SELECT COUNT(*) FROM half`).Scan(&n)
	assert.Error(t, scanErr)
}
