package marketdata

import (
	"math"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockport/portfolio-engine/internal/domain"
)

func TestGetAllReturnsCatalog(t *testing.T) {
	client := NewClient(zerolog.Nop())

	quotes, err := client.GetAll()
	require.NoError(t, err)
	require.Len(t, quotes, len(catalog))

	for _, q := range quotes {
		assert.NotEmpty(t, q.Symbol)
		assert.NotEmpty(t, q.Name)
		assert.Greater(t, q.Price, 0.0)
		assert.True(t, q.Category.Valid(), "symbol %s has category %q", q.Symbol, q.Category)
		assert.Len(t, q.ChartPoints, chartPointCount)
	}
}

func TestQuotesAreDeterministic(t *testing.T) {
	client := NewClient(zerolog.Nop())

	first, err := client.GetAll()
	require.NoError(t, err)
	second, err := client.GetAll()
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGetBySymbol(t *testing.T) {
	client := NewClient(zerolog.Nop())

	quote, err := client.GetBySymbol("AAPL")
	require.NoError(t, err)
	assert.Equal(t, "AAPL", quote.Symbol)
	assert.Equal(t, domain.CategoryEquity, quote.Category)

	// Lookup normalizes case and whitespace
	same, err := client.GetBySymbol("  aapl ")
	require.NoError(t, err)
	assert.Equal(t, quote.Price, same.Price)
}

func TestGetBySymbolUnknown(t *testing.T) {
	client := NewClient(zerolog.Nop())

	_, err := client.GetBySymbol("NOPE")
	assert.ErrorIs(t, err, domain.ErrQuoteUnavailable)
}

func TestPriceStaysNearBase(t *testing.T) {
	client := NewClient(zerolog.Nop())

	quotes, err := client.GetAll()
	require.NoError(t, err)

	bases := make(map[string]float64, len(catalog))
	for _, l := range catalog {
		bases[l.Symbol] = l.Base
	}

	for _, q := range quotes {
		base := bases[q.Symbol]
		drift := math.Abs(q.Price-base) / base
		assert.LessOrEqual(t, drift, 0.031, "symbol %s drifted %.4f from base", q.Symbol, drift)
	}
}

func TestDailyChangeBounded(t *testing.T) {
	client := NewClient(zerolog.Nop())

	quotes, err := client.GetAll()
	require.NoError(t, err)

	for _, q := range quotes {
		assert.LessOrEqual(t, math.Abs(q.DailyChange), q.Price*0.041,
			"symbol %s change %.2f out of range for price %.2f", q.Symbol, q.DailyChange, q.Price)
	}
}

func TestDailyChangePct(t *testing.T) {
	q := domain.Quote{Price: 110, DailyChange: 10}
	// Change over the previous close, not the current price
	assert.InDelta(t, 10.0, q.DailyChangePct(), 1e-9)

	flat := domain.Quote{Price: 100, DailyChange: 0}
	assert.Zero(t, flat.DailyChangePct())
}

func TestChartAnchoredNearPrice(t *testing.T) {
	client := NewClient(zerolog.Nop())

	quote, err := client.GetBySymbol("MSFT")
	require.NoError(t, err)
	require.Len(t, quote.ChartPoints, chartPointCount)

	// Smoothing averages the tail, so the last point tracks the price
	// within the fluctuation band rather than matching it exactly
	last := quote.ChartPoints[len(quote.ChartPoints)-1]
	assert.InDelta(t, quote.Price, last, math.Abs(quote.DailyChange)*0.3+1.0)
}
