// Package allocation buckets a valued portfolio by asset category.
package allocation

import (
	"sort"

	"github.com/stockport/portfolio-engine/internal/domain"
)

// Distribute groups valued positions by category, summing market value and
// counting positions per bucket. Percentages are taken against the grand
// total. Positions without a known category land in "other". Buckets are
// ordered by value descending; ties keep first-encounter order. An empty
// portfolio yields an empty slice, which is distinct from a portfolio whose
// whole value sits in a single bucket.
func Distribute(valued []domain.ValuedPosition) []CategoryBucket {
	if len(valued) == 0 {
		return []CategoryBucket{}
	}

	totalValue := 0.0
	for _, vp := range valued {
		totalValue += vp.MarketValue
	}

	byCategory := make(map[domain.AssetCategory]*CategoryBucket)
	var order []domain.AssetCategory
	for _, vp := range valued {
		category := vp.Category
		if !category.Valid() {
			category = domain.CategoryOther
		}

		bucket, ok := byCategory[category]
		if !ok {
			bucket = &CategoryBucket{Category: category}
			byCategory[category] = bucket
			order = append(order, category)
		}
		bucket.Value += vp.MarketValue
		bucket.PositionCount++
	}

	buckets := make([]CategoryBucket, 0, len(order))
	for _, category := range order {
		bucket := *byCategory[category]
		if totalValue > 0 {
			bucket.PercentageOfTotal = bucket.Value / totalValue * 100
		}
		buckets = append(buckets, bucket)
	}

	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].Value > buckets[j].Value
	})

	return buckets
}
