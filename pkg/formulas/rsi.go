package formulas

import "github.com/markcheno/go-talib"

// RSI returns the current relative strength index (0-100) of a closing
// price series, or nil when the series is shorter than length+1.
func RSI(closes []float64, length int) *float64 {
	if length <= 0 || len(closes) < length+1 {
		return nil
	}

	series := talib.Rsi(closes, length)
	if len(series) == 0 {
		return nil
	}

	last := series[len(series)-1]
	if isNaN(last) {
		return nil
	}
	return &last
}
