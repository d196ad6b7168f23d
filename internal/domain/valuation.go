package domain

// ValuedPosition is a position joined with a current quote. It is derived
// fresh for every analytics cycle and never persisted.
type ValuedPosition struct {
	Symbol         string        `json:"symbol"`
	Name           string        `json:"name"`
	Quantity       int64         `json:"quantity"`
	AverageCost    float64       `json:"average_cost"`
	CurrentPrice   float64       `json:"current_price"`
	CostBasis      float64       `json:"cost_basis"`
	MarketValue    float64       `json:"market_value"`
	GainLoss       float64       `json:"gain_loss"`
	GainLossPct    float64       `json:"gain_loss_pct"`
	DailyChangePct float64       `json:"daily_change_pct"`
	Category       AssetCategory `json:"category"`
	HasQuote       bool          `json:"has_quote"`
}
