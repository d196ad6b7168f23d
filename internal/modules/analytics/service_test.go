package analytics

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockport/portfolio-engine/internal/database"
	"github.com/stockport/portfolio-engine/internal/domain"
	"github.com/stockport/portfolio-engine/internal/events"
	"github.com/stockport/portfolio-engine/internal/modules/holdings"
)

// stubProvider serves a fixed quote set, or fails on demand
type stubProvider struct {
	quotes []domain.Quote
	err    error
}

func (p *stubProvider) GetAll() ([]domain.Quote, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.quotes, nil
}

func (p *stubProvider) GetBySymbol(symbol string) (*domain.Quote, error) {
	if p.err != nil {
		return nil, p.err
	}
	for _, q := range p.quotes {
		if q.Symbol == symbol {
			quote := q
			return &quote, nil
		}
	}
	return nil, domain.ErrQuoteUnavailable
}

func setupAnalytics(t *testing.T, provider domain.QuoteProvider) (*Service, *holdings.Service) {
	t.Helper()

	db, err := database.NewInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, holdings.InitSchema(db.Conn()))
	require.NoError(t, InitSchema(db.Conn()))

	log := zerolog.Nop()
	ledger := holdings.NewService(holdings.NewRepository(db.Conn(), log), events.NewManager(log), log)
	history := NewRepository(db.Conn(), log)
	svc := NewService(ledger, provider, history, time.Second, log)

	return svc, ledger
}

func TestMetricsTwoPositions(t *testing.T) {
	provider := &stubProvider{quotes: []domain.Quote{
		{Symbol: "AAPL", Name: "Apple Inc.", Price: 174.26, Category: domain.CategoryEquity},
		{Symbol: "TSLA", Name: "Tesla Inc.", Price: 258.14, Category: domain.CategoryEquity},
	}}
	svc, ledger := setupAnalytics(t, provider)

	require.NoError(t, ledger.Buy("AAPL", 2, 150.0))
	require.NoError(t, ledger.Buy("TSLA", 1, 200.0))

	metrics := svc.Metrics()
	assert.InDelta(t, 500.0, metrics.TotalInvested, 1e-9)
	assert.InDelta(t, 606.66, metrics.CurrentValue, 1e-9)
	assert.InDelta(t, 106.66, metrics.TotalGainLoss, 1e-9)
	assert.InDelta(t, 21.332, metrics.TotalGainLossPct, 1e-3)
	assert.Equal(t, 2, metrics.PositionCount)

	// Two flat-quoted positions: risk is the small-portfolio step alone
	assert.InDelta(t, 8.0, metrics.RiskScore, 1e-9)
	assert.Equal(t, "Very High", metrics.RiskLevel)

	// One category of four (1.5) plus two positions (1.0)
	assert.InDelta(t, 2.5, metrics.DiversificationScore, 1e-9)
	assert.Equal(t, "Poor", metrics.DiversificationLevel)
}

func TestMetricsEmptyPortfolio(t *testing.T) {
	svc, _ := setupAnalytics(t, &stubProvider{})

	metrics := svc.Metrics()
	assert.Zero(t, metrics.TotalInvested)
	assert.Zero(t, metrics.CurrentValue)
	assert.Zero(t, metrics.TotalGainLossPct)
	assert.Zero(t, metrics.RiskScore)
	assert.Zero(t, metrics.DiversificationScore)
	assert.Equal(t, 0, metrics.PositionCount)
}

func TestMetricsDegradeOnProviderFailure(t *testing.T) {
	provider := &stubProvider{err: errors.New("feed down")}
	svc, ledger := setupAnalytics(t, provider)

	require.NoError(t, ledger.Buy("AAPL", 2, 150.0))

	// Provider failure degrades to cost-basis valuation, never an error
	metrics := svc.Metrics()
	assert.InDelta(t, 300.0, metrics.TotalInvested, 1e-9)
	assert.InDelta(t, 300.0, metrics.CurrentValue, 1e-9)
	assert.Zero(t, metrics.TotalGainLoss)

	// No quotes means no categories: only the position count term scores
	assert.InDelta(t, 0.5, metrics.DiversificationScore, 1e-9)
}

func TestHealthReport(t *testing.T) {
	provider := &stubProvider{quotes: []domain.Quote{
		{Symbol: "AAPL", Price: 174.26, Category: domain.CategoryEquity},
		{Symbol: "TSLA", Price: 258.14, Category: domain.CategoryEquity},
	}}
	svc, ledger := setupAnalytics(t, provider)

	require.NoError(t, ledger.Buy("AAPL", 2, 150.0))
	require.NoError(t, ledger.Buy("TSLA", 1, 200.0))

	report := svc.Health()
	// performance 4.0 (gain above +20%), risk term 0.8, diversification 1.0
	assert.InDelta(t, 5.8, report.Score, 1e-9)
	assert.Equal(t, "Fair", report.Level)
}

func TestHistorySimulatedSeries(t *testing.T) {
	provider := &stubProvider{quotes: []domain.Quote{
		{Symbol: "AAPL", Price: 174.26, Category: domain.CategoryEquity},
	}}
	svc, ledger := setupAnalytics(t, provider)

	require.NoError(t, ledger.Buy("AAPL", 2, 150.0))

	series := svc.History(30)
	require.Len(t, series, 30)

	// Oldest first, one point per day
	for i := 1; i < len(series); i++ {
		assert.True(t, series[i].Date.After(series[i-1].Date))
	}

	// Deterministic per day
	again := svc.History(30)
	assert.Equal(t, series, again)
}

func TestHistoryDefaultsDays(t *testing.T) {
	svc, _ := setupAnalytics(t, &stubProvider{})

	assert.Len(t, svc.History(0), 30)
	assert.Len(t, svc.History(-3), 30)
	assert.Len(t, svc.History(7), 7)
}

func TestHistoryPrefersRecordedSnapshots(t *testing.T) {
	provider := &stubProvider{quotes: []domain.Quote{
		{Symbol: "AAPL", Price: 174.26, Category: domain.CategoryEquity},
	}}
	svc, ledger := setupAnalytics(t, provider)

	require.NoError(t, ledger.Buy("AAPL", 2, 150.0))
	require.NoError(t, svc.RecordSnapshot())

	series := svc.History(5)
	require.Len(t, series, 5)

	// Today is the last point and carries the recorded value
	last := series[len(series)-1]
	assert.InDelta(t, 348.52, last.Value, 1e-9)
	assert.InDelta(t, 300.0, last.Invested, 1e-9)
	assert.InDelta(t, 48.52, last.GainLoss, 1e-9)
}

func TestPerformanceReport(t *testing.T) {
	provider := &stubProvider{quotes: []domain.Quote{
		{Symbol: "AAPL", Price: 174.26, Category: domain.CategoryEquity},
	}}
	svc, ledger := setupAnalytics(t, provider)

	require.NoError(t, ledger.Buy("AAPL", 2, 150.0))

	report := svc.Performance(30)
	assert.Equal(t, 30, report.Days)
	require.NotNil(t, report.MaxDrawdownPct)
	assert.GreaterOrEqual(t, *report.MaxDrawdownPct, 0.0)
	// The simulated series varies day to day, so the ratio is defined
	assert.NotNil(t, report.SharpeRatio)
}

func TestPerformanceReportEmptyPortfolio(t *testing.T) {
	svc, _ := setupAnalytics(t, &stubProvider{})

	report := svc.Performance(30)
	assert.Equal(t, 30, report.Days)
	assert.Zero(t, report.PeriodReturnPct)
	assert.Nil(t, report.SharpeRatio)
}

func TestIndicators(t *testing.T) {
	chart := make([]float64, 20)
	for i := range chart {
		chart[i] = 100 + float64(i)
	}
	provider := &stubProvider{quotes: []domain.Quote{
		{Symbol: "AAPL", Price: 119, DailyChange: 9, ChartPoints: chart, Category: domain.CategoryEquity},
	}}
	svc, _ := setupAnalytics(t, provider)

	report, err := svc.Indicators("AAPL")
	require.NoError(t, err)
	assert.Equal(t, "AAPL", report.Symbol)
	assert.Equal(t, 119.0, report.Price)
	assert.InDelta(t, 8.18, report.DailyChangePct, 1e-9)
	require.NotNil(t, report.RSI)
	// A strictly rising series pins the index at the top
	assert.InDelta(t, 100.0, *report.RSI, 1e-6)
}

func TestIndicatorsUnknownSymbol(t *testing.T) {
	svc, _ := setupAnalytics(t, &stubProvider{})

	_, err := svc.Indicators("NOPE")
	assert.ErrorIs(t, err, domain.ErrQuoteUnavailable)
}

func TestRecordSnapshotReplacesSameDay(t *testing.T) {
	provider := &stubProvider{quotes: []domain.Quote{
		{Symbol: "AAPL", Price: 174.26, Category: domain.CategoryEquity},
	}}
	svc, ledger := setupAnalytics(t, provider)

	require.NoError(t, ledger.Buy("AAPL", 1, 150.0))
	require.NoError(t, svc.RecordSnapshot())

	require.NoError(t, ledger.Buy("AAPL", 1, 150.0))
	require.NoError(t, svc.RecordSnapshot())

	series := svc.History(1)
	require.Len(t, series, 1)
	assert.InDelta(t, 348.52, series[0].Value, 1e-9)
}
