package trading

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// timeLayout keeps a fixed-width fraction so lexicographic order in SQL
// matches chronological order. RFC3339Nano trims trailing zeros and breaks
// that property.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Repository handles transaction database operations
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new transaction repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "trading").Logger(),
	}
}

// Insert appends an executed trade to the history
func (r *Repository) Insert(tx Transaction) error {
	query := `
		INSERT INTO transactions (id, symbol, side, quantity, price, executed_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		tx.ID,
		tx.Symbol,
		string(tx.Side),
		tx.Quantity,
		tx.Price,
		tx.ExecutedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	return nil
}

// GetRecent returns the most recent transactions, newest first. A limit of 0
// or less returns the full history.
func (r *Repository) GetRecent(limit int) ([]Transaction, error) {
	query := `
		SELECT id, symbol, side, quantity, price, executed_at
		FROM transactions
		ORDER BY executed_at DESC
	`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var out []Transaction
	for rows.Next() {
		var tx Transaction
		var executedAt string
		if err := rows.Scan(&tx.ID, &tx.Symbol, &tx.Side, &tx.Quantity, &tx.Price, &executedAt); err != nil {
			r.log.Warn().Err(err).Msg("Skipping corrupt transaction row")
			continue
		}

		ts, err := time.Parse(timeLayout, executedAt)
		if err != nil {
			r.log.Warn().Err(err).Str("id", tx.ID).Msg("Corrupt executed_at, using zero time")
		}
		tx.ExecutedAt = ts

		out = append(out, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	return out, nil
}

// GetBySymbol returns the transaction history for a single symbol, newest
// first.
func (r *Repository) GetBySymbol(symbol string) ([]Transaction, error) {
	rows, err := r.db.Query(`
		SELECT id, symbol, side, quantity, price, executed_at
		FROM transactions
		WHERE symbol = ?
		ORDER BY executed_at DESC
	`, symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions for %s: %w", symbol, err)
	}
	defer rows.Close()

	var out []Transaction
	for rows.Next() {
		var tx Transaction
		var executedAt string
		if err := rows.Scan(&tx.ID, &tx.Symbol, &tx.Side, &tx.Quantity, &tx.Price, &executedAt); err != nil {
			r.log.Warn().Err(err).Msg("Skipping corrupt transaction row")
			continue
		}

		ts, err := time.Parse(timeLayout, executedAt)
		if err != nil {
			r.log.Warn().Err(err).Str("id", tx.ID).Msg("Corrupt executed_at, using zero time")
		}
		tx.ExecutedAt = ts

		out = append(out, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	return out, nil
}
