package scoring

// RiskLevel maps a risk score onto its display band
func RiskLevel(score float64) string {
	switch {
	case score < 3:
		return "Low"
	case score < 6:
		return "Medium"
	case score < 8:
		return "High"
	default:
		return "Very High"
	}
}

// DiversificationLevel maps a diversification score onto its display band
func DiversificationLevel(score float64) string {
	switch {
	case score < 3:
		return "Poor"
	case score < 6:
		return "Fair"
	case score < 8:
		return "Good"
	default:
		return "Excellent"
	}
}

// HealthLevel shares the diversification bands
func HealthLevel(score float64) string {
	return DiversificationLevel(score)
}
