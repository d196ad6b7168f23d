// Package scoring derives the 0-10 risk and diversification scores from a
// valued portfolio. Every function here is a pure function of its input;
// nothing reads the ledger or the clock.
package scoring

import (
	"math"

	"github.com/stockport/portfolio-engine/internal/domain"
	"github.com/stockport/portfolio-engine/pkg/formulas"
)

const (
	// Concentration penalty: portfolios under five positions carry the
	// higher step.
	concentrationFew  = 8.0
	concentrationMany = 4.0
	fewPositionCutoff = 5
)

// RiskScore combines average volatility with a concentration step.
//
//	risk = min(10, mean(|dailyChangePct|) * 2 + concentration)
//
// Positions without a quote contribute nothing to the volatility term.
// An empty portfolio scores 0.
func RiskScore(valued []domain.ValuedPosition) float64 {
	if len(valued) == 0 {
		return 0
	}

	var volatilities []float64
	for _, vp := range valued {
		if vp.HasQuote {
			volatilities = append(volatilities, math.Abs(vp.DailyChangePct))
		}
	}
	averageVolatility := formulas.Mean(volatilities)

	concentration := concentrationMany
	if len(valued) < fewPositionCutoff {
		concentration = concentrationFew
	}

	return math.Min(10, averageVolatility*2+concentration)
}

// DiversificationScore rewards category spread (up to 6 points across the
// four defined categories) and position count (0.5 per position, capped at
// 4 points). An empty portfolio scores 0.
func DiversificationScore(valued []domain.ValuedPosition) float64 {
	if len(valued) == 0 {
		return 0
	}

	categoryScore := float64(UniqueCategories(valued)) / float64(len(domain.AllCategories)) * 6
	stockCountScore := math.Min(4, float64(len(valued))*0.5)

	return math.Min(10, categoryScore+stockCountScore)
}

// UniqueCategories counts distinct defined categories present in the
// portfolio. Positions without a known category are not counted.
func UniqueCategories(valued []domain.ValuedPosition) int {
	seen := make(map[domain.AssetCategory]bool)
	for _, vp := range valued {
		if vp.Category.Valid() {
			seen[vp.Category] = true
		}
	}
	return len(seen)
}

// HealthScore blends performance, risk, and diversification into a single
// 0-10 figure. Performance maps the -20%..+20% gain range onto 0..4; low
// risk and high diversification each contribute up to 4.
func HealthScore(totalGainLossPct, riskScore, diversificationScore float64) float64 {
	performance := formulas.Clamp((totalGainLossPct+20)/10, 0, 4)
	risk := math.Max(0, 4-riskScore/2.5)
	diversification := diversificationScore / 2.5

	return math.Min(10, performance+risk+diversification)
}
