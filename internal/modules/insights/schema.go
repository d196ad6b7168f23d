package insights

import "database/sql"

// InsightsSchema defines the insights table
const InsightsSchema = `
CREATE TABLE IF NOT EXISTS insights (
    id TEXT PRIMARY KEY,
    kind TEXT NOT NULL,
    priority TEXT NOT NULL,
    title TEXT NOT NULL,
    description TEXT NOT NULL,
    recommendation TEXT,
    related_symbols TEXT NOT NULL,
    created_at TEXT NOT NULL,
    is_read INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_insights_created_at ON insights(created_at);
`

// InitSchema ensures the insights table exists
func InitSchema(db *sql.DB) error {
	_, err := db.Exec(InsightsSchema)
	return err
}
