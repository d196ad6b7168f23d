package formulas

import (
	"github.com/markcheno/go-talib"
)

// Smooth applies a simple moving average to a price series and returns a
// series of the same length. Leading values that talib cannot compute are
// backfilled with the original prices so chart consumers never see zeros.
func Smooth(prices []float64, period int) []float64 {
	if period < 2 || len(prices) < period {
		return prices
	}

	sma := talib.Sma(prices, period)

	out := make([]float64, len(prices))
	copy(out, prices)
	for i := period - 1; i < len(sma); i++ {
		if !isNaN(sma[i]) && sma[i] != 0 {
			out[i] = sma[i]
		}
	}
	return out
}

// isNaN checks if a float64 is NaN
func isNaN(f float64) bool {
	return f != f
}
