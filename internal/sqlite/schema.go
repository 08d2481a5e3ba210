package sqlite

import (
	"database/sql"
	"fmt"
)

// Logical database names and their schema versions. Each name maps to
// its own SQLite file under the data directory.
const (
	productListsDB      = "product_lists"
	productListsVersion = 1

	colorPickerDB      = "color_picker"
	colorPickerVersion = 4
)

// product_lists schema. Additive only: tables are created if absent and
// never dropped. The products column holds the JSON-encoded entry slice.
const (
	createLists = `CREATE TABLE IF NOT EXISTS lists (
    list_name TEXT PRIMARY KEY,
    products TEXT NOT NULL
);`

	createImages = `CREATE TABLE IF NOT EXISTS images (
    id TEXT PRIMARY KEY,
    data TEXT NOT NULL
);`
)

// color_picker schema. The composite index is non-unique: several
// swatches share one (list, product, variant) key.
const (
	createSwatches = `CREATE TABLE swatches (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    list_name TEXT NOT NULL,
    product_id TEXT NOT NULL,
    variant_index INTEGER NOT NULL,
    hue INTEGER NOT NULL,
    saturation INTEGER NOT NULL,
    lightness INTEGER NOT NULL,
    timestamp TEXT NOT NULL
);`

	idxSwatchesByProductVariant = `CREATE INDEX by_product_variant
    ON swatches(list_name, product_id, variant_index);`
)

// upgradeProductLists creates the lists and images tables.
func upgradeProductLists(tx *sql.Tx, oldVersion, newVersion int) error {
	for _, ddl := range []string{createLists, createImages} {
		if _, err := tx.Exec(ddl); err != nil {
			return fmt.Errorf("creating product_lists schema: %w", err)
		}
	}
	return nil
}

// upgradeColorPicker drops and recreates the swatches table. The
// migration is destructive on purpose: swatches are derived, cache-like
// data, and rebuilding beats carrying per-version column migrations.
func upgradeColorPicker(tx *sql.Tx, oldVersion, newVersion int) error {
	if _, err := tx.Exec(`DROP TABLE IF EXISTS swatches`); err != nil {
		return fmt.Errorf("dropping swatches: %w", err)
	}
	for _, ddl := range []string{createSwatches, idxSwatchesByProductVariant} {
		if _, err := tx.Exec(ddl); err != nil {
			return fmt.Errorf("creating color_picker schema: %w", err)
		}
	}
	return nil
}
