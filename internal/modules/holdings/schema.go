package holdings

import "database/sql"

// PositionsSchema defines the positions table
const PositionsSchema = `
CREATE TABLE IF NOT EXISTS positions (
    symbol TEXT PRIMARY KEY,
    quantity INTEGER NOT NULL,
    average_cost REAL NOT NULL,
    opened_at TEXT NOT NULL
);
`

// InitSchema ensures the positions table exists
func InitSchema(db *sql.DB) error {
	_, err := db.Exec(PositionsSchema)
	return err
}
