package trading

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/stockport/portfolio-engine/internal/domain"
	"github.com/stockport/portfolio-engine/internal/events"
	"github.com/stockport/portfolio-engine/internal/modules/holdings"
)

// Service executes trades against the holdings ledger and records each fill
// in the transaction history. The ledger stays the source of truth for
// positions; history rows are append-only and never replayed.
type Service struct {
	ledger *holdings.Service
	repo   *Repository
	quotes domain.QuoteProvider
	events *events.Manager
	log    zerolog.Logger
}

// NewService creates a new trade execution service
func NewService(ledger *holdings.Service, repo *Repository, quotes domain.QuoteProvider, ev *events.Manager, log zerolog.Logger) *Service {
	return &Service{
		ledger: ledger,
		repo:   repo,
		quotes: quotes,
		events: ev,
		log:    log.With().Str("service", "trading").Logger(),
	}
}

// Buy executes a buy. A price of 0 or less fills at the current quote;
// an explicit positive price fills at that price (limit-style entry for
// importing past lots).
func (s *Service) Buy(symbol string, quantity int64, price float64) (*Transaction, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if price <= 0 {
		quoted, err := s.marketPrice(symbol)
		if err != nil {
			return nil, err
		}
		price = quoted
	}

	if err := s.ledger.Buy(symbol, quantity, price); err != nil {
		return nil, err
	}

	tx := s.record(symbol, SideBuy, quantity, price)
	return &tx, nil
}

// Sell executes a sell. The fill price is informational only; the ledger
// reduces quantity without touching average cost either way.
func (s *Service) Sell(symbol string, quantity int64, price float64) (*Transaction, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if price <= 0 {
		quoted, err := s.marketPrice(symbol)
		if err != nil {
			return nil, err
		}
		price = quoted
	}

	if err := s.ledger.Sell(symbol, quantity); err != nil {
		return nil, err
	}

	tx := s.record(symbol, SideSell, quantity, price)
	return &tx, nil
}

// History returns recent transactions, newest first
func (s *Service) History(limit int) ([]Transaction, error) {
	return s.repo.GetRecent(limit)
}

// HistoryForSymbol returns the transaction history for one symbol
func (s *Service) HistoryForSymbol(symbol string) ([]Transaction, error) {
	return s.repo.GetBySymbol(symbol)
}

func (s *Service) marketPrice(symbol string) (float64, error) {
	quote, err := s.quotes.GetBySymbol(symbol)
	if err != nil {
		return 0, fmt.Errorf("no fill price for %s: %w", symbol, domain.ErrQuoteUnavailable)
	}
	return quote.Price, nil
}

// record writes the history row and announces the fill. A failed history
// write is logged but does not unwind the ledger mutation.
func (s *Service) record(symbol string, side Side, quantity int64, price float64) Transaction {
	tx := Transaction{
		ID:         uuid.New().String(),
		Symbol:     symbol,
		Side:       side,
		Quantity:   quantity,
		Price:      price,
		ExecutedAt: time.Now(),
	}

	if err := s.repo.Insert(tx); err != nil {
		s.log.Warn().Err(err).Str("symbol", symbol).Msg("Failed to record transaction")
	}

	s.log.Info().
		Str("symbol", symbol).
		Str("side", string(side)).
		Int64("quantity", quantity).
		Float64("price", price).
		Msg("Trade executed")

	s.events.Emit(events.TradeExecuted, "trading", map[string]interface{}{
		"symbol":   symbol,
		"side":     string(side),
		"quantity": quantity,
		"price":    price,
	})

	return tx
}
