package holdings

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/stockport/portfolio-engine/internal/domain"
	"github.com/stockport/portfolio-engine/internal/events"
)

// Service is the holdings ledger: the authoritative, in-memory set of
// positions. Mutations serialize on a single mutex so concurrent buys for
// the same symbol cannot race the weighted-average computation. Persistence
// is write-through but non-fatal; if a save fails, memory stays
// authoritative for the session.
type Service struct {
	mu        sync.Mutex
	positions map[string]Position
	repo      *Repository
	events    *events.Manager
	log       zerolog.Logger
}

// NewService creates the ledger and loads persisted positions. A corrupt or
// unreadable store logs a warning and starts empty rather than failing.
func NewService(repo *Repository, ev *events.Manager, log zerolog.Logger) *Service {
	s := &Service{
		positions: make(map[string]Position),
		repo:      repo,
		events:    ev,
		log:       log.With().Str("service", "holdings").Logger(),
	}

	loaded, err := repo.GetAll()
	if err != nil {
		s.log.Warn().Err(err).Msg("Failed to load positions, starting from empty ledger")
		return s
	}
	for _, pos := range loaded {
		s.positions[pos.Symbol] = pos
	}
	s.log.Info().Int("positions", len(loaded)).Msg("Ledger loaded")

	return s
}

// Buy applies a buy lot. A first buy opens the position at the lot price;
// subsequent buys recompute the weighted average cost:
//
//	newAvg = (oldQty*oldAvg + qty*price) / (oldQty + qty)
func (s *Service) Buy(symbol string, quantity int64, price float64) error {
	if quantity <= 0 {
		return fmt.Errorf("buy %s: %w", symbol, domain.ErrInvalidQuantity)
	}
	if price <= 0 {
		return fmt.Errorf("buy %s: %w", symbol, domain.ErrInvalidPrice)
	}
	symbol = normalizeSymbol(symbol)

	s.mu.Lock()
	existing, ok := s.positions[symbol]
	var pos Position
	if !ok {
		pos = Position{
			Symbol:      symbol,
			Quantity:    quantity,
			AverageCost: price,
			OpenedAt:    time.Now(),
		}
	} else {
		newQuantity := existing.Quantity + quantity
		newAverageCost := (float64(existing.Quantity)*existing.AverageCost + float64(quantity)*price) / float64(newQuantity)
		pos = Position{
			Symbol:      symbol,
			Quantity:    newQuantity,
			AverageCost: newAverageCost,
			OpenedAt:    existing.OpenedAt,
		}
	}
	s.positions[symbol] = pos
	s.persist(pos)
	s.mu.Unlock()

	s.log.Info().
		Str("symbol", symbol).
		Int64("quantity", quantity).
		Float64("price", price).
		Float64("average_cost", pos.AverageCost).
		Msg("Buy applied")

	s.events.Emit(events.LedgerChanged, "holdings", map[string]interface{}{
		"symbol": symbol,
		"side":   "BUY",
	})

	return nil
}

// Sell reduces a position. The average cost is intentionally left untouched;
// a sell only releases shares. Selling the full quantity removes the
// position.
func (s *Service) Sell(symbol string, quantity int64) error {
	if quantity <= 0 {
		return fmt.Errorf("sell %s: %w", symbol, domain.ErrInvalidQuantity)
	}
	symbol = normalizeSymbol(symbol)

	s.mu.Lock()
	existing, ok := s.positions[symbol]
	if !ok || existing.Quantity < quantity {
		held := existing.Quantity
		s.mu.Unlock()
		return fmt.Errorf("sell %d of %s (held %d): %w", quantity, symbol, held, domain.ErrInsufficientShares)
	}

	remaining := existing.Quantity - quantity
	if remaining == 0 {
		delete(s.positions, symbol)
		if err := s.repo.Delete(symbol); err != nil {
			s.log.Warn().Err(err).Str("symbol", symbol).Msg("Failed to persist position removal")
		}
	} else {
		pos := Position{
			Symbol:      symbol,
			Quantity:    remaining,
			AverageCost: existing.AverageCost,
			OpenedAt:    existing.OpenedAt,
		}
		s.positions[symbol] = pos
		s.persist(pos)
	}
	s.mu.Unlock()

	s.log.Info().
		Str("symbol", symbol).
		Int64("quantity", quantity).
		Int64("remaining", remaining).
		Msg("Sell applied")

	s.events.Emit(events.LedgerChanged, "holdings", map[string]interface{}{
		"symbol": symbol,
		"side":   "SELL",
	})

	return nil
}

// Snapshot returns a consistent copy of all positions, ordered by the time
// the position was opened. Callers can value it without holding any lock.
func (s *Service) Snapshot() []Position {
	s.mu.Lock()
	positions := make([]Position, 0, len(s.positions))
	for _, pos := range s.positions {
		positions = append(positions, pos)
	}
	s.mu.Unlock()

	sort.SliceStable(positions, func(i, j int) bool {
		if positions[i].OpenedAt.Equal(positions[j].OpenedAt) {
			return positions[i].Symbol < positions[j].Symbol
		}
		return positions[i].OpenedAt.Before(positions[j].OpenedAt)
	})

	return positions
}

// Quantity returns the held quantity for a symbol, 0 if not held
func (s *Service) Quantity(symbol string) int64 {
	symbol = normalizeSymbol(symbol)

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.positions[symbol].Quantity
}

// persist writes through to the repository. Called with the mutex held so
// writes hit the store in mutation order.
func (s *Service) persist(pos Position) {
	if err := s.repo.Upsert(pos); err != nil {
		s.log.Warn().Err(err).Str("symbol", pos.Symbol).Msg("Failed to persist position, in-memory state remains authoritative")
	}
}

func normalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
