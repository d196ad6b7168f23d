package formulas

// MaxDrawdown computes the largest peak-to-trough decline of a value series
// as a positive fraction (0.25 means a 25% fall from the peak). Returns nil
// when the series is too short.
func MaxDrawdown(values []float64) *float64 {
	if len(values) < 2 {
		return nil
	}

	maxDrawdown := 0.0
	peak := values[0]
	for _, v := range values {
		if v > peak {
			peak = v
		}
		if peak > 0 {
			drawdown := (peak - v) / peak
			if drawdown > maxDrawdown {
				maxDrawdown = drawdown
			}
		}
	}

	return &maxDrawdown
}
