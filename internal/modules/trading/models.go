package trading

import "time"

// Side is the direction of a trade
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// Transaction is one executed trade, recorded for history. Records are
// append-only; the holdings ledger is the source of truth for positions.
type Transaction struct {
	ID         string    `json:"id"`
	Symbol     string    `json:"symbol"`
	Side       Side      `json:"side"`
	Quantity   int64     `json:"quantity"`
	Price      float64   `json:"price"`
	ExecutedAt time.Time `json:"executed_at"`
}

// TotalValue returns quantity x price
func (t Transaction) TotalValue() float64 {
	return float64(t.Quantity) * t.Price
}
