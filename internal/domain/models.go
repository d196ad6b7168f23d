package domain

// AssetCategory classifies a security for diversification purposes
type AssetCategory string

const (
	CategoryEquity AssetCategory = "equity"
	CategoryDebt   AssetCategory = "debt"
	CategoryHybrid AssetCategory = "hybrid"
	CategoryOther  AssetCategory = "other"
)

// AllCategories lists every defined asset category
var AllCategories = []AssetCategory{
	CategoryEquity,
	CategoryDebt,
	CategoryHybrid,
	CategoryOther,
}

// Valid reports whether the category is one of the defined values
func (c AssetCategory) Valid() bool {
	switch c {
	case CategoryEquity, CategoryDebt, CategoryHybrid, CategoryOther:
		return true
	}
	return false
}

// Quote is a read-only market snapshot for one symbol
type Quote struct {
	Symbol      string        `json:"symbol"`
	Name        string        `json:"name"`
	Price       float64       `json:"price"`
	DailyChange float64       `json:"daily_change"`
	Category    AssetCategory `json:"category,omitempty"`
	ChartPoints []float64     `json:"chart_points,omitempty"`
}

// DailyChangePct returns the daily change as a percentage of the previous close.
// The previous close is reconstructed as price - dailyChange.
func (q Quote) DailyChangePct() float64 {
	if q.Price <= 0 {
		return 0
	}
	prev := q.Price - q.DailyChange
	if prev == 0 {
		return 0
	}
	return (q.DailyChange / prev) * 100
}

// QuoteProvider supplies current market quotes. Implementations may return
// stale data or fail entirely; callers degrade to cost-basis valuation.
type QuoteProvider interface {
	GetAll() ([]Quote, error)
	GetBySymbol(symbol string) (*Quote, error)
}
