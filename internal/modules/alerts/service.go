package alerts

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/stockport/portfolio-engine/internal/domain"
	"github.com/stockport/portfolio-engine/internal/events"
)

// ErrNotFound is returned when an alert ID does not exist
var ErrNotFound = errors.New("alert not found")

// ErrInvalidCondition is returned for an unknown comparison
var ErrInvalidCondition = errors.New("invalid alert condition")

// Service owns the price alert collection. Like the ledger, memory is
// authoritative and sqlite is write-through and non-fatal. CheckAll runs on
// the refresh schedule against the latest quotes.
type Service struct {
	mu     sync.Mutex
	alerts []Alert
	repo   *Repository
	quotes domain.QuoteProvider
	events *events.Manager
	log    zerolog.Logger
}

// NewService creates the alert service and loads persisted alerts
func NewService(repo *Repository, quotes domain.QuoteProvider, ev *events.Manager, log zerolog.Logger) *Service {
	s := &Service{
		repo:   repo,
		quotes: quotes,
		events: ev,
		log:    log.With().Str("service", "alerts").Logger(),
	}

	loaded, err := repo.GetAll()
	if err != nil {
		s.log.Warn().Err(err).Msg("Failed to load alerts, starting empty")
		return s
	}
	s.alerts = loaded

	return s
}

// Create registers a new active alert
func (s *Service) Create(symbol string, condition Condition, targetPrice float64) (*Alert, error) {
	if !condition.Valid() {
		return nil, fmt.Errorf("create alert: %q: %w", condition, ErrInvalidCondition)
	}
	if targetPrice <= 0 {
		return nil, fmt.Errorf("create alert for %s: %w", symbol, domain.ErrInvalidPrice)
	}

	a := Alert{
		ID:          uuid.New().String(),
		Symbol:      strings.ToUpper(strings.TrimSpace(symbol)),
		Condition:   condition,
		TargetPrice: targetPrice,
		Status:      StatusActive,
		CreatedAt:   time.Now(),
	}

	s.mu.Lock()
	s.alerts = append(s.alerts, a)
	if err := s.repo.Insert(a); err != nil {
		s.log.Warn().Err(err).Str("symbol", a.Symbol).Msg("Failed to persist alert")
	}
	s.mu.Unlock()

	s.log.Info().
		Str("symbol", a.Symbol).
		Str("condition", string(condition)).
		Float64("target", targetPrice).
		Msg("Alert created")

	return &a, nil
}

// List returns all alerts, active first, then by creation time (newest
// first).
func (s *Service) List() []Alert {
	s.mu.Lock()
	out := make([]Alert, len(s.alerts))
	copy(out, s.alerts)
	s.mu.Unlock()

	sort.SliceStable(out, func(i, j int) bool {
		if (out[i].Status == StatusActive) != (out[j].Status == StatusActive) {
			return out[i].Status == StatusActive
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	return out
}

// Cancel marks an active alert cancelled
func (s *Service) Cancel(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.alerts {
		if s.alerts[i].ID == id {
			s.alerts[i].Status = StatusCancelled
			if err := s.repo.UpdateStatus(s.alerts[i]); err != nil {
				s.log.Warn().Err(err).Str("id", id).Msg("Failed to persist cancellation")
			}
			return nil
		}
	}
	return ErrNotFound
}

// Delete removes an alert entirely
func (s *Service) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.alerts {
		if s.alerts[i].ID == id {
			s.alerts = append(s.alerts[:i], s.alerts[i+1:]...)
			if err := s.repo.Delete(id); err != nil {
				s.log.Warn().Err(err).Str("id", id).Msg("Failed to persist alert removal")
			}
			return nil
		}
	}
	return ErrNotFound
}

// CheckAll evaluates every active alert against current quotes and fires the
// ones whose condition is met. Returns the alerts that fired this pass. A
// missing quote leaves the alert armed for the next pass.
func (s *Service) CheckAll() []Alert {
	quotes, err := s.quotes.GetAll()
	if err != nil {
		s.log.Warn().Err(err).Msg("Quote fetch failed, skipping alert check")
		return nil
	}

	prices := make(map[string]float64, len(quotes))
	for _, q := range quotes {
		prices[q.Symbol] = q.Price
	}

	var fired []Alert

	s.mu.Lock()
	for i := range s.alerts {
		if s.alerts[i].Status != StatusActive {
			continue
		}
		price, ok := prices[s.alerts[i].Symbol]
		if !ok {
			continue
		}
		if !s.alerts[i].ShouldTrigger(price) {
			continue
		}

		now := time.Now()
		s.alerts[i].Status = StatusTriggered
		s.alerts[i].TriggeredAt = &now
		s.alerts[i].PriceAtTrigger = price
		if err := s.repo.UpdateStatus(s.alerts[i]); err != nil {
			s.log.Warn().Err(err).Str("id", s.alerts[i].ID).Msg("Failed to persist trigger")
		}
		fired = append(fired, s.alerts[i])
	}
	s.mu.Unlock()

	for _, a := range fired {
		s.log.Info().
			Str("symbol", a.Symbol).
			Str("condition", string(a.Condition)).
			Float64("target", a.TargetPrice).
			Float64("price", a.PriceAtTrigger).
			Msg("Alert triggered")

		s.events.Emit(events.AlertTriggered, "alerts", map[string]interface{}{
			"symbol":    a.Symbol,
			"condition": string(a.Condition),
			"target":    a.TargetPrice,
			"price":     a.PriceAtTrigger,
		})
	}

	return fired
}
