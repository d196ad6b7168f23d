package analytics

import "database/sql"

// HistorySchema defines the daily portfolio value history table. One row per
// calendar day; the snapshot job upserts today's row on each run.
const HistorySchema = `
CREATE TABLE IF NOT EXISTS performance_history (
    date TEXT PRIMARY KEY,
    value REAL NOT NULL,
    invested REAL NOT NULL,
    gain_loss REAL NOT NULL,
    gain_loss_pct REAL NOT NULL
);
`

// InitSchema ensures the performance history table exists
func InitSchema(db *sql.DB) error {
	_, err := db.Exec(HistorySchema)
	return err
}
