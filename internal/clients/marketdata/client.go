package marketdata

import (
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/stockport/portfolio-engine/internal/domain"
	"github.com/stockport/portfolio-engine/pkg/formulas"
)

const chartPointCount = 30

// Client is a simulated market data provider. It stands in for a real feed
// the way the mobile app's mock network layer did: a fixed catalog of
// symbols with deterministic, per-symbol price movement.
type Client struct {
	log zerolog.Logger
}

// NewClient creates a new simulated market data client
func NewClient(log zerolog.Logger) *Client {
	return &Client{
		log: log.With().Str("client", "marketdata").Logger(),
	}
}

var _ domain.QuoteProvider = (*Client)(nil)

// GetAll returns quotes for every symbol in the catalog
func (c *Client) GetAll() ([]domain.Quote, error) {
	quotes := make([]domain.Quote, 0, len(catalog))
	for _, l := range catalog {
		quotes = append(quotes, buildQuote(l))
	}

	c.log.Debug().Int("count", len(quotes)).Msg("Fetched quotes")
	return quotes, nil
}

// GetBySymbol returns the quote for a single symbol
func (c *Client) GetBySymbol(symbol string) (*domain.Quote, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	for _, l := range catalog {
		if l.Symbol == symbol {
			q := buildQuote(l)
			return &q, nil
		}
	}
	return nil, fmt.Errorf("symbol %s: %w", symbol, domain.ErrQuoteUnavailable)
}

// buildQuote derives a quote from a catalog listing. All randomness is
// seeded from the symbol so repeated calls agree.
func buildQuote(l listing) domain.Quote {
	gen := newSeededGenerator(l.Symbol)

	// Price sits within ±3% of the base, daily change within ±4% of price.
	price := l.Base * (1 + gen.rangeFloat(-0.03, 0.03))
	change := price * gen.rangeFloat(-0.04, 0.04)
	price = formulas.Round(price, 2)
	change = formulas.Round(change, 2)

	return domain.Quote{
		Symbol:      l.Symbol,
		Name:        l.Name,
		Price:       price,
		DailyChange: change,
		Category:    l.Category,
		ChartPoints: chartSeries(gen, price, change),
	}
}

// chartSeries builds an intraday-style series walking from the previous
// close to the current price, with fluctuation proportional to the day's
// move, then smooths it so the chart reads like real tick data.
func chartSeries(gen *seededGenerator, price, change float64) []float64 {
	volatility := change
	if volatility < 0 {
		volatility = -volatility
	}
	if volatility < 1.0 {
		volatility = 1.0
	}

	start := price - change
	points := make([]float64, chartPointCount)
	for i := range points {
		progress := float64(i) / float64(chartPointCount-1)
		base := start + change*progress
		fluctuation := gen.rangeFloat(-1, 1) * volatility * 0.3
		points[i] = formulas.Round(base+fluctuation, 2)
	}
	// Anchor the last point on the actual price
	points[chartPointCount-1] = price

	return formulas.Smooth(points, 3)
}

// seededGenerator is a linear congruential generator keyed on the symbol,
// matching the app's per-symbol chart generation so a symbol always renders
// the same series.
type seededGenerator struct {
	state uint64
}

func newSeededGenerator(symbol string) *seededGenerator {
	h := fnv.New64a()
	_, _ = h.Write([]byte(symbol))
	return &seededGenerator{state: h.Sum64()}
}

func (g *seededGenerator) next() uint64 {
	g.state = g.state*1103515245 + 12345
	return g.state
}

// rangeFloat returns a deterministic value in [min, max)
func (g *seededGenerator) rangeFloat(min, max float64) float64 {
	const denom = float64(1 << 53)
	frac := float64(g.next()>>11) / denom
	return min + frac*(max-min)
}
