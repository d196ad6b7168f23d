package trading

import "database/sql"

// TransactionsSchema defines the transactions table
const TransactionsSchema = `
CREATE TABLE IF NOT EXISTS transactions (
    id TEXT PRIMARY KEY,
    symbol TEXT NOT NULL,
    side TEXT NOT NULL,
    quantity INTEGER NOT NULL,
    price REAL NOT NULL,
    executed_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_transactions_executed_at ON transactions(executed_at);
CREATE INDEX IF NOT EXISTS idx_transactions_symbol ON transactions(symbol);
`

// InitSchema ensures the transactions table exists
func InitSchema(db *sql.DB) error {
	_, err := db.Exec(TransactionsSchema)
	return err
}
