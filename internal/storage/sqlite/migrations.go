package sqlite

import "database/sql"

// schema contains the SQL statements to set up the journal.
// These run on startup to ensure tables exist.
// seq preserves insertion order; created_at only has second resolution.
const schema = `
CREATE TABLE IF NOT EXISTS events (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    id TEXT NOT NULL UNIQUE,
    kind TEXT NOT NULL,
    party TEXT,
    lender TEXT,
    borrower TEXT,
    amount TEXT NOT NULL,
    created_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_events_created_at ON events(created_at);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
