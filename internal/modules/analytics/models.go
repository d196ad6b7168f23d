package analytics

import "time"

// PortfolioMetrics is the aggregate valuation snapshot exposed to callers
type PortfolioMetrics struct {
	TotalInvested        float64 `json:"total_invested"`
	CurrentValue         float64 `json:"current_value"`
	TotalGainLoss        float64 `json:"total_gain_loss"`
	TotalGainLossPct     float64 `json:"total_gain_loss_pct"`
	RiskScore            float64 `json:"risk_score"`
	RiskLevel            string  `json:"risk_level"`
	DiversificationScore float64 `json:"diversification_score"`
	DiversificationLevel string  `json:"diversification_level"`
	PositionCount        int     `json:"position_count"`
}

// HealthReport is the composite portfolio health score with its inputs
type HealthReport struct {
	Score                float64 `json:"score"`
	Level                string  `json:"level"`
	TotalGainLossPct     float64 `json:"total_gain_loss_pct"`
	RiskScore            float64 `json:"risk_score"`
	DiversificationScore float64 `json:"diversification_score"`
}

// PerformancePoint is one day of portfolio performance history
type PerformancePoint struct {
	Date        time.Time `json:"date"`
	Value       float64   `json:"value"`
	Invested    float64   `json:"invested"`
	GainLoss    float64   `json:"gain_loss"`
	GainLossPct float64   `json:"gain_loss_pct"`
}

// PerformanceReport summarizes the daily history series. SharpeRatio and
// MaxDrawdownPct are nil when the series is too short or flat.
type PerformanceReport struct {
	Days            int      `json:"days"`
	PeriodReturnPct float64  `json:"period_return_pct"`
	MaxDrawdownPct  *float64 `json:"max_drawdown_pct"`
	SharpeRatio     *float64 `json:"sharpe_ratio"`
}

// IndicatorReport carries per-symbol technical indicators derived from the
// intraday chart series.
type IndicatorReport struct {
	Symbol         string   `json:"symbol"`
	Price          float64  `json:"price"`
	DailyChangePct float64  `json:"daily_change_pct"`
	RSI            *float64 `json:"rsi"`
}
