package allocation

import "github.com/stockport/portfolio-engine/internal/domain"

// CategoryBucket aggregates the positions of one asset category
type CategoryBucket struct {
	Category          domain.AssetCategory `json:"category"`
	Value             float64              `json:"value"`
	PercentageOfTotal float64              `json:"percentage_of_total"`
	PositionCount     int                  `json:"position_count"`
}
