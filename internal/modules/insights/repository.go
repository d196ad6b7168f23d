package insights

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Repository handles insight database operations
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new insight repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "insights").Logger(),
	}
}

// GetAll returns all persisted insights. Corrupt rows are logged and
// skipped.
func (r *Repository) GetAll() ([]Insight, error) {
	rows, err := r.db.Query(`
		SELECT id, kind, priority, title, description, recommendation, related_symbols, created_at, is_read
		FROM insights
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query insights: %w", err)
	}
	defer rows.Close()

	var out []Insight
	for rows.Next() {
		var ins Insight
		var recommendation sql.NullString
		var relatedJSON, createdAt string
		if err := rows.Scan(&ins.ID, &ins.Kind, &ins.Priority, &ins.Title, &ins.Description,
			&recommendation, &relatedJSON, &createdAt, &ins.IsRead); err != nil {
			r.log.Warn().Err(err).Msg("Skipping corrupt insight row")
			continue
		}

		if recommendation.Valid {
			ins.Recommendation = recommendation.String
		}
		if err := json.Unmarshal([]byte(relatedJSON), &ins.RelatedSymbols); err != nil {
			r.log.Warn().Err(err).Str("id", ins.ID).Msg("Corrupt related_symbols, using empty list")
			ins.RelatedSymbols = []string{}
		}
		ts, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			r.log.Warn().Err(err).Str("id", ins.ID).Msg("Corrupt created_at, using zero time")
		}
		ins.CreatedAt = ts

		out = append(out, ins)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating insights: %w", err)
	}

	return out, nil
}

// Insert persists a new insight
func (r *Repository) Insert(ins Insight) error {
	relatedJSON, err := json.Marshal(ins.RelatedSymbols)
	if err != nil {
		return fmt.Errorf("failed to encode related symbols: %w", err)
	}

	query := `
		INSERT INTO insights (id, kind, priority, title, description, recommendation, related_symbols, created_at, is_read)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		ins.ID,
		string(ins.Kind),
		string(ins.Priority),
		ins.Title,
		ins.Description,
		nullString(ins.Recommendation),
		string(relatedJSON),
		ins.CreatedAt.Format(time.RFC3339Nano),
		ins.IsRead,
	)
	if err != nil {
		return fmt.Errorf("failed to insert insight: %w", err)
	}

	return nil
}

// MarkRead flags an insight as read
func (r *Repository) MarkRead(id string) error {
	_, err := r.db.Exec("UPDATE insights SET is_read = 1 WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to mark insight read: %w", err)
	}
	return nil
}

// Delete removes an insight
func (r *Repository) Delete(id string) error {
	_, err := r.db.Exec("DELETE FROM insights WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete insight: %w", err)
	}
	return nil
}

// DeleteAll removes every insight
func (r *Repository) DeleteAll() error {
	_, err := r.db.Exec("DELETE FROM insights")
	if err != nil {
		return fmt.Errorf("failed to delete insights: %w", err)
	}
	return nil
}

func nullString(val string) sql.NullString {
	if val == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: val, Valid: true}
}
