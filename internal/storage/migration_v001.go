package storage

import "database/sql"

// migrateV001 creates the initial punchclock schema. start and stop are UTC
// epoch seconds; a NULL stop marks the entry as still open. Every statement
// uses IF NOT EXISTS for idempotency.
func migrateV001(tx *sql.Tx) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS entries (
			id    INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			start INTEGER NOT NULL,
			stop  INTEGER
		)`,

		`CREATE INDEX IF NOT EXISTS idx_entries_start ON entries(start)`,
	}

	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}
