package analytics

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// dateLayout is the key format for history rows, one row per calendar day
const dateLayout = "2006-01-02"

// Repository persists daily portfolio value snapshots
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new history repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "analytics").Logger(),
	}
}

// UpsertPoint records the value snapshot for the point's day, replacing any
// earlier snapshot taken the same day.
func (r *Repository) UpsertPoint(p PerformancePoint) error {
	query := `
		INSERT OR REPLACE INTO performance_history (date, value, invested, gain_loss, gain_loss_pct)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		p.Date.Format(dateLayout),
		p.Value,
		p.Invested,
		p.GainLoss,
		p.GainLossPct,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert history point: %w", err)
	}

	return nil
}

// GetSince returns persisted points on or after the given day, oldest first.
// Corrupt rows are logged and skipped.
func (r *Repository) GetSince(from time.Time) ([]PerformancePoint, error) {
	rows, err := r.db.Query(`
		SELECT date, value, invested, gain_loss, gain_loss_pct
		FROM performance_history
		WHERE date >= ?
		ORDER BY date ASC
	`, from.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var out []PerformancePoint
	for rows.Next() {
		var p PerformancePoint
		var date string
		if err := rows.Scan(&date, &p.Value, &p.Invested, &p.GainLoss, &p.GainLossPct); err != nil {
			r.log.Warn().Err(err).Msg("Skipping corrupt history row")
			continue
		}

		ts, err := time.Parse(dateLayout, date)
		if err != nil {
			r.log.Warn().Err(err).Str("date", date).Msg("Skipping history row with corrupt date")
			continue
		}
		p.Date = ts

		out = append(out, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating history: %w", err)
	}

	return out, nil
}
