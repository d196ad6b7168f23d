package insights

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/stockport/portfolio-engine/internal/domain"
	"github.com/stockport/portfolio-engine/internal/modules/scoring"
)

const (
	equityHeavyPct      = 80.0
	fewPositions        = 5
	singleStockPct      = 30.0
	strongGainPct       = 10.0
	underperformancePct = -10.0
	highVolatilityPct   = 5.0
	fewCategories       = 3
)

// Generate runs every insight rule against a valued portfolio and returns
// the findings. Each rule is independent; the scan holds no state between
// invocations and performs no deduplication (the service owns that).
func Generate(valued []domain.ValuedPosition) []Insight {
	var out []Insight
	out = append(out, analyzeDiversification(valued)...)
	out = append(out, analyzeConcentration(valued)...)
	out = append(out, analyzePerformance(valued)...)
	out = append(out, analyzeVolatility(valued)...)
	out = append(out, analyzeSectorSpread(valued)...)
	return out
}

// analyzeDiversification flags an equity-heavy portfolio
func analyzeDiversification(valued []domain.ValuedPosition) []Insight {
	totalValue := totalMarketValue(valued)
	if totalValue <= 0 {
		return nil
	}

	equityValue := 0.0
	var equitySymbols []string
	for _, vp := range valued {
		if vp.Category == domain.CategoryEquity {
			equityValue += vp.MarketValue
			equitySymbols = append(equitySymbols, vp.Symbol)
		}
	}

	equityPct := equityValue / totalValue * 100
	if equityPct <= equityHeavyPct {
		return nil
	}

	return []Insight{newInsight(
		KindRecommendation, PriorityMedium,
		"Diversification Opportunity",
		fmt.Sprintf("Your portfolio is %.1f%% invested in equity stocks. Consider diversifying into other asset classes.", equityPct),
		"Add bonds, REITs, or commodities to balance your portfolio and reduce risk.",
		equitySymbols,
	)}
}

// analyzeConcentration flags portfolios with too few positions and single
// positions that dominate the total value
func analyzeConcentration(valued []domain.ValuedPosition) []Insight {
	var out []Insight

	if len(valued) > 0 && len(valued) < fewPositions {
		out = append(out, newInsight(
			KindRisk, PriorityHigh,
			"Low Diversification",
			fmt.Sprintf("Your portfolio contains only %d stocks. This creates concentration risk.", len(valued)),
			"Consider adding more stocks from different sectors to improve diversification.",
			symbols(valued),
		))
	}

	totalValue := totalMarketValue(valued)
	if totalValue <= 0 {
		return out
	}

	for _, vp := range valued {
		pct := vp.MarketValue / totalValue * 100
		if pct > singleStockPct {
			out = append(out, newInsight(
				KindWarning, PriorityHigh,
				"High Concentration Risk",
				fmt.Sprintf("%s represents %.1f%% of your portfolio. This creates significant concentration risk.", vp.Symbol, pct),
				fmt.Sprintf("Consider reducing your position in %s and diversifying into other stocks.", vp.Symbol),
				[]string{vp.Symbol},
			))
		}
	}

	return out
}

// analyzePerformance flags strong gains and notable losses
func analyzePerformance(valued []domain.ValuedPosition) []Insight {
	totalInvested := 0.0
	currentValue := 0.0
	for _, vp := range valued {
		totalInvested += vp.CostBasis
		currentValue += vp.MarketValue
	}
	if totalInvested <= 0 {
		return nil
	}

	gainLossPct := (currentValue - totalInvested) / totalInvested * 100

	if gainLossPct > strongGainPct {
		return []Insight{newInsight(
			KindPerformance, PriorityLow,
			"Strong Performance",
			fmt.Sprintf("Your portfolio has gained %.1f%% since purchase. Excellent work!", gainLossPct),
			"Consider taking some profits and rebalancing your portfolio.",
			symbols(valued),
		)}
	}

	if gainLossPct < underperformancePct {
		return []Insight{newInsight(
			KindWarning, PriorityMedium,
			"Portfolio Underperformance",
			fmt.Sprintf("Your portfolio has declined %.1f%% since purchase. Review your holdings.", math.Abs(gainLossPct)),
			"Consider reviewing your investment strategy and potentially rebalancing your portfolio.",
			symbols(valued),
		)}
	}

	return nil
}

// analyzeVolatility flags positions moving more than the daily threshold
func analyzeVolatility(valued []domain.ValuedPosition) []Insight {
	var volatile []string
	for _, vp := range valued {
		if vp.HasQuote && math.Abs(vp.DailyChangePct) > highVolatilityPct {
			volatile = append(volatile, vp.Symbol)
		}
	}
	if len(volatile) == 0 {
		return nil
	}

	return []Insight{newInsight(
		KindRisk, PriorityMedium,
		"High Volatility Detected",
		"Some stocks in your portfolio are showing high volatility, which increases risk.",
		"Consider adding more stable assets or reducing position sizes in volatile stocks.",
		volatile,
	)}
}

// analyzeSectorSpread flags portfolios spanning too few categories
func analyzeSectorSpread(valued []domain.ValuedPosition) []Insight {
	if len(valued) == 0 {
		return nil
	}

	unique := scoring.UniqueCategories(valued)
	if unique >= fewCategories {
		return nil
	}

	return []Insight{newInsight(
		KindOpportunity, PriorityMedium,
		"Sector Diversification Opportunity",
		fmt.Sprintf("Your portfolio is concentrated in %d sectors. Consider diversifying across more sectors.", unique),
		"Research and add stocks from underrepresented sectors like healthcare, finance, or energy.",
		nil,
	)}
}

func newInsight(kind Kind, priority Priority, title, description, recommendation string, related []string) Insight {
	if related == nil {
		related = []string{}
	}
	return Insight{
		ID:             uuid.New().String(),
		Kind:           kind,
		Priority:       priority,
		Title:          title,
		Description:    description,
		Recommendation: recommendation,
		RelatedSymbols: related,
		CreatedAt:      time.Now(),
	}
}

func totalMarketValue(valued []domain.ValuedPosition) float64 {
	total := 0.0
	for _, vp := range valued {
		total += vp.MarketValue
	}
	return total
}

func symbols(valued []domain.ValuedPosition) []string {
	out := make([]string, 0, len(valued))
	for _, vp := range valued {
		out = append(out, vp.Symbol)
	}
	return out
}
