package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stockport/portfolio-engine/internal/domain"
)

func equityPosition(symbol string, dailyChangePct float64) domain.ValuedPosition {
	return domain.ValuedPosition{
		Symbol:         symbol,
		Quantity:       1,
		MarketValue:    100,
		DailyChangePct: dailyChangePct,
		Category:       domain.CategoryEquity,
		HasQuote:       true,
	}
}

func TestRiskScoreEmptyPortfolio(t *testing.T) {
	assert.Zero(t, RiskScore(nil))
}

func TestRiskScoreConcentrationStep(t *testing.T) {
	tests := []struct {
		name      string
		positions int
		want      float64
	}{
		{"single position", 1, 8.0},
		{"four positions", 4, 8.0},
		{"five positions", 5, 4.0},
		{"many positions", 12, 4.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var valued []domain.ValuedPosition
			for i := 0; i < tt.positions; i++ {
				valued = append(valued, equityPosition("SYM", 0))
			}
			assert.InDelta(t, tt.want, RiskScore(valued), 1e-9)
		})
	}
}

func TestRiskScoreVolatilityTerm(t *testing.T) {
	valued := []domain.ValuedPosition{
		equityPosition("A", 2.0),
		equityPosition("B", -4.0), // absolute value counts
	}

	// mean(|2|, |4|) = 3, times 2, plus the small-portfolio step
	assert.InDelta(t, 10.0, RiskScore(valued), 1e-9)
}

func TestRiskScoreCappedAtTen(t *testing.T) {
	valued := []domain.ValuedPosition{
		equityPosition("A", 50.0),
	}
	assert.Equal(t, 10.0, RiskScore(valued))
}

func TestRiskScoreIgnoresUnquotedPositions(t *testing.T) {
	valued := []domain.ValuedPosition{
		equityPosition("A", 2.0),
		{Symbol: "B", Category: domain.CategoryEquity, HasQuote: false},
		{Symbol: "C", Category: domain.CategoryEquity, HasQuote: false},
		{Symbol: "D", Category: domain.CategoryEquity, HasQuote: false},
		{Symbol: "E", Category: domain.CategoryEquity, HasQuote: false},
	}

	// Only A contributes volatility: mean over quoted positions is 2, so
	// the score is 2*2 + 4, not 0.4*2 + 4
	assert.InDelta(t, 8.0, RiskScore(valued), 1e-9)
}

func TestDiversificationScore(t *testing.T) {
	tests := []struct {
		name       string
		categories []domain.AssetCategory
		want       float64
	}{
		{
			name:       "empty",
			categories: nil,
			want:       0,
		},
		{
			name:       "single equity",
			categories: []domain.AssetCategory{domain.CategoryEquity},
			want:       1.5 + 0.5,
		},
		{
			name: "two categories",
			categories: []domain.AssetCategory{
				domain.CategoryEquity, domain.CategoryDebt,
			},
			want: 3.0 + 1.0,
		},
		{
			name: "all four categories",
			categories: []domain.AssetCategory{
				domain.CategoryEquity, domain.CategoryDebt,
				domain.CategoryHybrid, domain.CategoryOther,
			},
			want: 6.0 + 2.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var valued []domain.ValuedPosition
			for _, cat := range tt.categories {
				valued = append(valued, domain.ValuedPosition{Category: cat, HasQuote: true})
			}
			assert.InDelta(t, tt.want, DiversificationScore(valued), 1e-9)
		})
	}
}

func TestDiversificationPositionCountCapped(t *testing.T) {
	var valued []domain.ValuedPosition
	for i := 0; i < 20; i++ {
		valued = append(valued, domain.ValuedPosition{Category: domain.CategoryEquity, HasQuote: true})
	}

	// 20 positions cap the count term at 4
	assert.InDelta(t, 1.5+4.0, DiversificationScore(valued), 1e-9)
}

func TestUniqueCategories(t *testing.T) {
	valued := []domain.ValuedPosition{
		{Category: domain.CategoryEquity},
		{Category: domain.CategoryEquity},
		{Category: domain.CategoryDebt},
		{Category: domain.AssetCategory("bogus")},
	}
	assert.Equal(t, 2, UniqueCategories(valued))
}

func TestHealthScore(t *testing.T) {
	tests := []struct {
		name            string
		gainLossPct     float64
		risk            float64
		diversification float64
		want            float64
	}{
		{"neutral portfolio", 0, 4, 2.5, 2.0 + 2.4 + 1.0},
		{"strong gain low risk", 20, 0, 10, 4.0 + 4.0 + 4.0 - 2.0}, // capped at 10
		{"deep loss high risk", -20, 10, 0, 0},
		{"performance clamped", 50, 4, 2.5, 4.0 + 2.4 + 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HealthScore(tt.gainLossPct, tt.risk, tt.diversification)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestLevels(t *testing.T) {
	assert.Equal(t, "Low", RiskLevel(2.9))
	assert.Equal(t, "Medium", RiskLevel(3))
	assert.Equal(t, "High", RiskLevel(6))
	assert.Equal(t, "Very High", RiskLevel(8))

	assert.Equal(t, "Poor", DiversificationLevel(0))
	assert.Equal(t, "Fair", DiversificationLevel(3))
	assert.Equal(t, "Good", DiversificationLevel(7.9))
	assert.Equal(t, "Excellent", DiversificationLevel(8))
}
