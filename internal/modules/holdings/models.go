package holdings

import "time"

// Position is one holding: a quantity of a symbol carried at the weighted
// average cost of every buy lot. Sells reduce quantity but never touch the
// average cost; realized gain accounting is out of scope.
type Position struct {
	Symbol      string    `json:"symbol"`
	Quantity    int64     `json:"quantity"`
	AverageCost float64   `json:"average_cost"`
	OpenedAt    time.Time `json:"opened_at"`
}

// CostBasis returns quantity x average cost
func (p Position) CostBasis() float64 {
	return float64(p.Quantity) * p.AverageCost
}
