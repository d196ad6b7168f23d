package analytics

import (
	"hash/fnv"
	"time"

	"github.com/rs/zerolog"

	"github.com/stockport/portfolio-engine/internal/domain"
	"github.com/stockport/portfolio-engine/internal/modules/allocation"
	"github.com/stockport/portfolio-engine/internal/modules/holdings"
	"github.com/stockport/portfolio-engine/internal/modules/scoring"
	"github.com/stockport/portfolio-engine/pkg/formulas"
)

const (
	riskFreeRate       = 0.02
	tradingDaysPerYear = 252
	rsiPeriod          = 14
)

// Service orchestrates the analytics pipeline: ledger snapshot + quotes in,
// metrics/distribution/health out. Every computation downstream of the
// snapshot is a pure function, so the service itself carries no state beyond
// its collaborators.
type Service struct {
	ledger       *holdings.Service
	quotes       domain.QuoteProvider
	history      *Repository
	quoteTimeout time.Duration
	log          zerolog.Logger
}

// NewService creates a new analytics service
func NewService(ledger *holdings.Service, quotes domain.QuoteProvider, history *Repository, quoteTimeout time.Duration, log zerolog.Logger) *Service {
	return &Service{
		ledger:       ledger,
		quotes:       quotes,
		history:      history,
		quoteTimeout: quoteTimeout,
		log:          log.With().Str("service", "analytics").Logger(),
	}
}

// ValuedSnapshot values the current ledger against best-effort quotes
func (s *Service) ValuedSnapshot() []domain.ValuedPosition {
	positions := s.ledger.Snapshot()
	return Value(positions, s.fetchQuotes())
}

// Metrics computes the aggregate portfolio snapshot
func (s *Service) Metrics() PortfolioMetrics {
	return s.metricsFor(s.ValuedSnapshot())
}

// Distribution buckets the current portfolio by asset category
func (s *Service) Distribution() []allocation.CategoryBucket {
	return allocation.Distribute(s.ValuedSnapshot())
}

// Health computes the composite 0-10 health score
func (s *Service) Health() HealthReport {
	metrics := s.metricsFor(s.ValuedSnapshot())

	score := scoring.HealthScore(metrics.TotalGainLossPct, metrics.RiskScore, metrics.DiversificationScore)
	return HealthReport{
		Score:                formulas.Round(score, 2),
		Level:                scoring.HealthLevel(score),
		TotalGainLossPct:     metrics.TotalGainLossPct,
		RiskScore:            metrics.RiskScore,
		DiversificationScore: metrics.DiversificationScore,
	}
}

// History returns the daily performance series for the last N days, oldest
// first. Days covered by a persisted snapshot row use the recorded values;
// days without one are filled with a simulated point derived from current
// metrics, seeded per day so repeated requests return the same series.
func (s *Service) History(days int) []PerformancePoint {
	if days <= 0 {
		days = 30
	}

	today := time.Now().Truncate(24 * time.Hour)
	from := today.AddDate(0, 0, -(days - 1))

	recorded := make(map[string]PerformancePoint)
	if s.history != nil {
		rows, err := s.history.GetSince(from)
		if err != nil {
			s.log.Warn().Err(err).Msg("Failed to load history rows, using simulated series")
		}
		for _, p := range rows {
			recorded[p.Date.Format(dateLayout)] = p
		}
	}

	metrics := s.Metrics()

	points := make([]PerformancePoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		date := today.AddDate(0, 0, -i)

		if p, ok := recorded[date.Format(dateLayout)]; ok {
			p.Date = date
			points = append(points, p)
			continue
		}

		points = append(points, simulatedPoint(date, metrics))
	}

	return points
}

// Performance summarizes the history series: period return, maximum
// drawdown, and an annualized Sharpe ratio over the daily returns.
func (s *Service) Performance(days int) PerformanceReport {
	points := s.History(days)

	report := PerformanceReport{Days: len(points)}
	if len(points) < 2 {
		return report
	}

	values := make([]float64, len(points))
	for i, p := range points {
		values[i] = p.Value
	}

	first, last := values[0], values[len(values)-1]
	if first > 0 {
		report.PeriodReturnPct = formulas.Round((last-first)/first*100, 2)
	}

	returns := make([]float64, 0, len(values)-1)
	for i := 1; i < len(values); i++ {
		if values[i-1] > 0 {
			returns = append(returns, (values[i]-values[i-1])/values[i-1])
		}
	}

	if dd := formulas.MaxDrawdown(values); dd != nil {
		pct := formulas.Round(*dd*100, 2)
		report.MaxDrawdownPct = &pct
	}
	report.SharpeRatio = formulas.SharpeRatio(returns, riskFreeRate, tradingDaysPerYear)

	return report
}

// Indicators derives technical indicators for one symbol from its chart
// series.
func (s *Service) Indicators(symbol string) (*IndicatorReport, error) {
	quote, err := s.quotes.GetBySymbol(symbol)
	if err != nil {
		return nil, err
	}

	return &IndicatorReport{
		Symbol:         quote.Symbol,
		Price:          quote.Price,
		DailyChangePct: formulas.Round(quote.DailyChangePct(), 2),
		RSI:            formulas.RSI(quote.ChartPoints, rsiPeriod),
	}, nil
}

// RecordSnapshot persists today's portfolio value as a history row. Called
// by the daily snapshot job; safe to call repeatedly, later calls replace
// the day's row.
func (s *Service) RecordSnapshot() error {
	if s.history == nil {
		return nil
	}

	metrics := s.Metrics()
	point := PerformancePoint{
		Date:        time.Now().Truncate(24 * time.Hour),
		Value:       formulas.Round(metrics.CurrentValue, 2),
		Invested:    formulas.Round(metrics.TotalInvested, 2),
		GainLoss:    formulas.Round(metrics.TotalGainLoss, 2),
		GainLossPct: formulas.Round(metrics.TotalGainLossPct, 2),
	}

	if err := s.history.UpsertPoint(point); err != nil {
		return err
	}

	s.log.Info().
		Float64("value", point.Value).
		Float64("invested", point.Invested).
		Msg("Daily snapshot recorded")

	return nil
}

// simulatedPoint derives a plausible historical point from current metrics
// with a deterministic per-day variation.
func simulatedPoint(date time.Time, metrics PortfolioMetrics) PerformancePoint {
	variation := dailyVariation(date)
	value := metrics.CurrentValue * (1 + variation)
	invested := metrics.TotalInvested * (1 + variation*0.1)
	gainLoss := value - invested
	gainLossPct := 0.0
	if invested > 0 {
		gainLossPct = gainLoss / invested * 100
	}

	return PerformancePoint{
		Date:        date,
		Value:       formulas.Round(value, 2),
		Invested:    formulas.Round(invested, 2),
		GainLoss:    formulas.Round(gainLoss, 2),
		GainLossPct: formulas.Round(gainLossPct, 2),
	}
}

// metricsFor aggregates a valued snapshot. The gain/loss is computed as the
// difference of the two sums so the totals always reconcile exactly.
func (s *Service) metricsFor(valued []domain.ValuedPosition) PortfolioMetrics {
	totalInvested := 0.0
	currentValue := 0.0
	for _, vp := range valued {
		totalInvested += vp.CostBasis
		currentValue += vp.MarketValue
	}

	totalGainLoss := currentValue - totalInvested
	totalGainLossPct := 0.0
	if totalInvested > 0 {
		totalGainLossPct = totalGainLoss / totalInvested * 100
	}

	riskScore := scoring.RiskScore(valued)
	diversificationScore := scoring.DiversificationScore(valued)

	return PortfolioMetrics{
		TotalInvested:        totalInvested,
		CurrentValue:         currentValue,
		TotalGainLoss:        totalGainLoss,
		TotalGainLossPct:     totalGainLossPct,
		RiskScore:            riskScore,
		RiskLevel:            scoring.RiskLevel(riskScore),
		DiversificationScore: diversificationScore,
		DiversificationLevel: scoring.DiversificationLevel(diversificationScore),
		PositionCount:        len(valued),
	}
}

// fetchQuotes pulls quotes with a caller-level timeout. A failed or slow
// fetch degrades to an empty map; valuation then falls back to cost basis.
func (s *Service) fetchQuotes() map[string]domain.Quote {
	type result struct {
		quotes []domain.Quote
		err    error
	}

	ch := make(chan result, 1)
	go func() {
		quotes, err := s.quotes.GetAll()
		ch <- result{quotes: quotes, err: err}
	}()

	timeout := s.quoteTimeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}

	select {
	case res := <-ch:
		if res.err != nil {
			s.log.Warn().Err(res.err).Msg("Quote fetch failed, valuing at cost basis")
			return map[string]domain.Quote{}
		}
		return QuoteMap(res.quotes)
	case <-time.After(timeout):
		s.log.Warn().Dur("timeout", timeout).Msg("Quote fetch timed out, valuing at cost basis")
		return map[string]domain.Quote{}
	}
}

// dailyVariation produces a deterministic variation in [-0.05, 0.05] for a
// given date.
func dailyVariation(date time.Time) float64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(date.Format("2006-01-02")))
	state := h.Sum64()*1103515245 + 12345
	frac := float64(state>>11) / float64(1<<53)
	return -0.05 + frac*0.10
}
