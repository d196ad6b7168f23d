package allocation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockport/portfolio-engine/internal/domain"
)

func position(symbol string, category domain.AssetCategory, value float64) domain.ValuedPosition {
	return domain.ValuedPosition{
		Symbol:      symbol,
		Category:    category,
		MarketValue: value,
	}
}

func TestDistributeEmptyPortfolio(t *testing.T) {
	buckets := Distribute(nil)
	require.NotNil(t, buckets)
	assert.Empty(t, buckets)
}

func TestDistributeSingleCategory(t *testing.T) {
	valued := []domain.ValuedPosition{
		position("AAPL", domain.CategoryEquity, 348.52),
		position("TSLA", domain.CategoryEquity, 258.14),
	}

	buckets := Distribute(valued)
	require.Len(t, buckets, 1)
	assert.Equal(t, domain.CategoryEquity, buckets[0].Category)
	assert.InDelta(t, 606.66, buckets[0].Value, 1e-9)
	assert.InDelta(t, 100.0, buckets[0].PercentageOfTotal, 1e-9)
	assert.Equal(t, 2, buckets[0].PositionCount)
}

func TestDistributeOrderedByValueDesc(t *testing.T) {
	valued := []domain.ValuedPosition{
		position("BND", domain.CategoryDebt, 100),
		position("AAPL", domain.CategoryEquity, 500),
		position("VBAL", domain.CategoryHybrid, 250),
	}

	buckets := Distribute(valued)
	require.Len(t, buckets, 3)
	assert.Equal(t, domain.CategoryEquity, buckets[0].Category)
	assert.Equal(t, domain.CategoryHybrid, buckets[1].Category)
	assert.Equal(t, domain.CategoryDebt, buckets[2].Category)
}

func TestDistributePercentagesSumToHundred(t *testing.T) {
	valued := []domain.ValuedPosition{
		position("AAPL", domain.CategoryEquity, 333.33),
		position("BND", domain.CategoryDebt, 166.67),
		position("GLD", domain.CategoryOther, 250.00),
		position("VBAL", domain.CategoryHybrid, 250.00),
	}

	buckets := Distribute(valued)
	sum := 0.0
	for _, b := range buckets {
		sum += b.PercentageOfTotal
	}
	assert.InDelta(t, 100.0, sum, 1e-9)
}

func TestDistributeUnknownCategoryFallsToOther(t *testing.T) {
	valued := []domain.ValuedPosition{
		position("MYSTERY", domain.AssetCategory(""), 100),
		position("GLD", domain.CategoryOther, 50),
	}

	buckets := Distribute(valued)
	require.Len(t, buckets, 1)
	assert.Equal(t, domain.CategoryOther, buckets[0].Category)
	assert.InDelta(t, 150.0, buckets[0].Value, 1e-9)
	assert.Equal(t, 2, buckets[0].PositionCount)
}

func TestDistributeTiesKeepEncounterOrder(t *testing.T) {
	valued := []domain.ValuedPosition{
		position("BND", domain.CategoryDebt, 100),
		position("AAPL", domain.CategoryEquity, 100),
	}

	buckets := Distribute(valued)
	require.Len(t, buckets, 2)
	assert.Equal(t, domain.CategoryDebt, buckets[0].Category)
	assert.Equal(t, domain.CategoryEquity, buckets[1].Category)
}

func TestDistributeZeroTotalValue(t *testing.T) {
	valued := []domain.ValuedPosition{
		position("AAPL", domain.CategoryEquity, 0),
	}

	buckets := Distribute(valued)
	require.Len(t, buckets, 1)
	assert.Zero(t, buckets[0].PercentageOfTotal)
}
