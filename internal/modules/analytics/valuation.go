package analytics

import (
	"github.com/stockport/portfolio-engine/internal/domain"
	"github.com/stockport/portfolio-engine/internal/modules/holdings"
)

// Value joins ledger positions with current quotes. A position whose quote
// is missing is valued at its average cost instead of being dropped, so the
// portfolio never silently shrinks when the market feed degrades. That case
// produces zero gain/loss, no volatility contribution, and an empty
// category, keeping degraded positions out of the diversification count.
func Value(positions []holdings.Position, quotes map[string]domain.Quote) []domain.ValuedPosition {
	valued := make([]domain.ValuedPosition, 0, len(positions))

	for _, pos := range positions {
		vp := domain.ValuedPosition{
			Symbol:      pos.Symbol,
			Name:        pos.Symbol,
			Quantity:    pos.Quantity,
			AverageCost: pos.AverageCost,
			CostBasis:   pos.CostBasis(),
		}

		if quote, ok := quotes[pos.Symbol]; ok {
			vp.HasQuote = true
			vp.CurrentPrice = quote.Price
			vp.DailyChangePct = quote.DailyChangePct()
			if quote.Name != "" {
				vp.Name = quote.Name
			}
			if quote.Category.Valid() {
				vp.Category = quote.Category
			}
		} else {
			// Fallback to cost, never an error
			vp.CurrentPrice = pos.AverageCost
		}

		vp.MarketValue = float64(pos.Quantity) * vp.CurrentPrice
		vp.GainLoss = vp.MarketValue - vp.CostBasis
		if vp.CostBasis > 0 {
			vp.GainLossPct = vp.GainLoss / vp.CostBasis * 100
		}

		valued = append(valued, vp)
	}

	return valued
}

// QuoteMap indexes quotes by symbol
func QuoteMap(quotes []domain.Quote) map[string]domain.Quote {
	m := make(map[string]domain.Quote, len(quotes))
	for _, q := range quotes {
		m[q.Symbol] = q
	}
	return m
}
