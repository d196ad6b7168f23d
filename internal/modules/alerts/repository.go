package alerts

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Repository handles alert database operations
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new alert repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "alerts").Logger(),
	}
}

// GetAll returns all persisted alerts. Corrupt rows are logged and skipped.
func (r *Repository) GetAll() ([]Alert, error) {
	rows, err := r.db.Query(`
		SELECT id, symbol, condition, target_price, status, created_at, triggered_at, price_at_trigger
		FROM alerts
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query alerts: %w", err)
	}
	defer rows.Close()

	var out []Alert
	for rows.Next() {
		var a Alert
		var createdAt string
		var triggeredAt sql.NullString
		if err := rows.Scan(&a.ID, &a.Symbol, &a.Condition, &a.TargetPrice, &a.Status,
			&createdAt, &triggeredAt, &a.PriceAtTrigger); err != nil {
			r.log.Warn().Err(err).Msg("Skipping corrupt alert row")
			continue
		}

		ts, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			r.log.Warn().Err(err).Str("id", a.ID).Msg("Corrupt created_at, using zero time")
		}
		a.CreatedAt = ts

		if triggeredAt.Valid {
			trig, err := time.Parse(time.RFC3339Nano, triggeredAt.String)
			if err == nil {
				a.TriggeredAt = &trig
			}
		}

		out = append(out, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating alerts: %w", err)
	}

	return out, nil
}

// Insert persists a new alert
func (r *Repository) Insert(a Alert) error {
	query := `
		INSERT INTO alerts (id, symbol, condition, target_price, status, created_at, triggered_at, price_at_trigger)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	var triggeredAt sql.NullString
	if a.TriggeredAt != nil {
		triggeredAt = sql.NullString{String: a.TriggeredAt.Format(time.RFC3339Nano), Valid: true}
	}

	_, err := r.db.Exec(query,
		a.ID,
		a.Symbol,
		string(a.Condition),
		a.TargetPrice,
		string(a.Status),
		a.CreatedAt.Format(time.RFC3339Nano),
		triggeredAt,
		a.PriceAtTrigger,
	)
	if err != nil {
		return fmt.Errorf("failed to insert alert: %w", err)
	}

	return nil
}

// UpdateStatus records a status change, with the trigger details when the
// alert fired.
func (r *Repository) UpdateStatus(a Alert) error {
	var triggeredAt sql.NullString
	if a.TriggeredAt != nil {
		triggeredAt = sql.NullString{String: a.TriggeredAt.Format(time.RFC3339Nano), Valid: true}
	}

	_, err := r.db.Exec(`
		UPDATE alerts SET status = ?, triggered_at = ?, price_at_trigger = ? WHERE id = ?
	`, string(a.Status), triggeredAt, a.PriceAtTrigger, a.ID)
	if err != nil {
		return fmt.Errorf("failed to update alert %s: %w", a.ID, err)
	}

	return nil
}

// Delete removes an alert
func (r *Repository) Delete(id string) error {
	_, err := r.db.Exec("DELETE FROM alerts WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete alert: %w", err)
	}
	return nil
}
