package formulas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMean(t *testing.T) {
	assert.Zero(t, Mean(nil))
	assert.Equal(t, 5.0, Mean([]float64{5}))
	assert.Equal(t, 2.0, Mean([]float64{1, 2, 3}))
}

func TestStdDev(t *testing.T) {
	assert.Zero(t, StdDev(nil))
	assert.Zero(t, StdDev([]float64{7}))
	assert.InDelta(t, 1.0, StdDev([]float64{1, 2, 3}), 1e-9)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-5, 0, 4))
	assert.Equal(t, 4.0, Clamp(9, 0, 4))
	assert.Equal(t, 2.5, Clamp(2.5, 0, 4))
}

func TestRound(t *testing.T) {
	assert.Equal(t, 1.23, Round(1.2345, 2))
	assert.Equal(t, 1.24, Round(1.235, 2))
	assert.Equal(t, -1.23, Round(-1.2345, 2))
	assert.Equal(t, 100.0, Round(99.999, 1))
}

func TestSmoothShortSeriesUnchanged(t *testing.T) {
	prices := []float64{1, 2}
	assert.Equal(t, prices, Smooth(prices, 3))
}

func TestSmoothPreservesLength(t *testing.T) {
	prices := []float64{10, 12, 11, 13, 15, 14, 16, 18}
	out := Smooth(prices, 3)
	require.Len(t, out, len(prices))

	// Leading values stay raw, later values are averaged
	assert.Equal(t, prices[0], out[0])
	assert.Equal(t, prices[1], out[1])
	assert.InDelta(t, (10.0+12.0+11.0)/3.0, out[2], 1e-9)
}

func TestMaxDrawdown(t *testing.T) {
	assert.Nil(t, MaxDrawdown([]float64{100}))

	dd := MaxDrawdown([]float64{100, 120, 90, 110})
	require.NotNil(t, dd)
	assert.InDelta(t, 0.25, *dd, 1e-9)

	flat := MaxDrawdown([]float64{100, 100, 100})
	require.NotNil(t, flat)
	assert.Zero(t, *flat)
}

func TestSharpeRatio(t *testing.T) {
	assert.Nil(t, SharpeRatio([]float64{0.01}, 0.02, 252))
	assert.Nil(t, SharpeRatio([]float64{0.01, 0.01, 0.01}, 0.02, 252))

	sharpe := SharpeRatio([]float64{0.01, -0.005, 0.02, 0.003}, 0.0, 252)
	require.NotNil(t, sharpe)
	assert.Greater(t, *sharpe, 0.0)
}

func TestRSI(t *testing.T) {
	assert.Nil(t, RSI([]float64{1, 2, 3}, 14))

	rising := make([]float64, 20)
	for i := range rising {
		rising[i] = 100 + float64(i)
	}
	rsi := RSI(rising, 14)
	require.NotNil(t, rsi)
	assert.InDelta(t, 100.0, *rsi, 1e-6)

	falling := make([]float64, 20)
	for i := range falling {
		falling[i] = 100 - float64(i)
	}
	rsi = RSI(falling, 14)
	require.NotNil(t, rsi)
	assert.InDelta(t, 0.0, *rsi, 1e-6)
}
