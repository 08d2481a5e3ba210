package sqlite

import (
	"database/sql"
	"fmt"
)

// migrate brings db up to target using the upgrade callback. The current
// version is read from PRAGMA user_version (0 for a fresh file); if it is
// already at or past target, nothing runs. The upgrade and the version
// bump commit in one transaction, so a given version bump runs exactly
// once per database file.
func migrate(db *sql.DB, target int, upgrade UpgradeFunc) error {
	var current int
	if err := db.QueryRow(`PRAGMA user_version`).Scan(&current); err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}
	if current >= target {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning upgrade: %w", err)
	}
	defer tx.Rollback()

	if upgrade != nil {
		if err := upgrade(tx, current, target); err != nil {
			return err
		}
	}
	if _, err := tx.Exec(fmt.Sprintf(`PRAGMA user_version = %d`, target)); err != nil {
		return fmt.Errorf("setting schema version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing upgrade: %w", err)
	}
	return nil
}
