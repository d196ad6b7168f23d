package formulas

import "math"

// SharpeRatio computes the annualized Sharpe ratio of a periodic return
// series.
//
//	sharpe = (mean return - periodic risk-free rate) / stddev of returns
//
// riskFreeRate is annual; periodsPerYear converts it to the series period
// (252 for daily, 12 for monthly) and drives the annualization factor.
// Returns nil when the series is too short or has zero variance.
func SharpeRatio(returns []float64, riskFreeRate float64, periodsPerYear int) *float64 {
	if len(returns) < 2 || periodsPerYear <= 0 {
		return nil
	}

	stdDev := StdDev(returns)
	if stdDev == 0 {
		return nil
	}

	periodicRiskFree := riskFreeRate / float64(periodsPerYear)
	sharpe := (Mean(returns) - periodicRiskFree) / stdDev * math.Sqrt(float64(periodsPerYear))

	return &sharpe
}
