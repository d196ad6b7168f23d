package alerts

import "database/sql"

// AlertsSchema defines the price alerts table
const AlertsSchema = `
CREATE TABLE IF NOT EXISTS alerts (
    id TEXT PRIMARY KEY,
    symbol TEXT NOT NULL,
    condition TEXT NOT NULL,
    target_price REAL NOT NULL,
    status TEXT NOT NULL DEFAULT 'active',
    created_at TEXT NOT NULL,
    triggered_at TEXT,
    price_at_trigger REAL NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_alerts_symbol ON alerts(symbol);
CREATE INDEX IF NOT EXISTS idx_alerts_status ON alerts(status);
`

// InitSchema ensures the alerts table exists
func InitSchema(db *sql.DB) error {
	_, err := db.Exec(AlertsSchema)
	return err
}
