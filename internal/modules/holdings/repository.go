package holdings

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Repository handles position database operations
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new position repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "holdings").Logger(),
	}
}

// GetAll returns all persisted positions. Rows that fail to scan are logged
// and skipped rather than aborting the load; the ledger starts from whatever
// state is readable.
func (r *Repository) GetAll() ([]Position, error) {
	rows, err := r.db.Query("SELECT symbol, quantity, average_cost, opened_at FROM positions")
	if err != nil {
		return nil, fmt.Errorf("failed to query positions: %w", err)
	}
	defer rows.Close()

	var positions []Position
	for rows.Next() {
		var pos Position
		var openedAt string
		if err := rows.Scan(&pos.Symbol, &pos.Quantity, &pos.AverageCost, &openedAt); err != nil {
			r.log.Warn().Err(err).Msg("Skipping corrupt position row")
			continue
		}

		ts, err := time.Parse(time.RFC3339, openedAt)
		if err != nil {
			r.log.Warn().Err(err).Str("symbol", pos.Symbol).Msg("Corrupt opened_at, using zero time")
		}
		pos.OpenedAt = ts
		pos.Symbol = strings.ToUpper(strings.TrimSpace(pos.Symbol))
		positions = append(positions, pos)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating positions: %w", err)
	}

	return positions, nil
}

// Upsert inserts or updates a position
func (r *Repository) Upsert(pos Position) error {
	query := `
		INSERT OR REPLACE INTO positions (symbol, quantity, average_cost, opened_at)
		VALUES (?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		strings.ToUpper(strings.TrimSpace(pos.Symbol)),
		pos.Quantity,
		pos.AverageCost,
		pos.OpenedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert position: %w", err)
	}

	r.log.Debug().Str("symbol", pos.Symbol).Int64("quantity", pos.Quantity).Msg("Position upserted")
	return nil
}

// Delete removes a position
func (r *Repository) Delete(symbol string) error {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	_, err := r.db.Exec("DELETE FROM positions WHERE symbol = ?", symbol)
	if err != nil {
		return fmt.Errorf("failed to delete position: %w", err)
	}

	r.log.Debug().Str("symbol", symbol).Msg("Position deleted")
	return nil
}
