package scheduler

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/stockport/portfolio-engine/internal/domain"
	"github.com/stockport/portfolio-engine/internal/events"
	"github.com/stockport/portfolio-engine/internal/modules/alerts"
)

// RefreshCycleJob pulls fresh quotes and evaluates price alerts against
// them. Runs on the refresh schedule from config.
type RefreshCycleJob struct {
	quotes domain.QuoteProvider
	alerts *alerts.Service
	events *events.Manager
	log    zerolog.Logger
}

// NewRefreshCycleJob creates a new refresh cycle job
func NewRefreshCycleJob(quotes domain.QuoteProvider, alertSvc *alerts.Service, ev *events.Manager, log zerolog.Logger) *RefreshCycleJob {
	return &RefreshCycleJob{
		quotes: quotes,
		alerts: alertSvc,
		events: ev,
		log:    log.With().Str("job", "refresh_cycle").Logger(),
	}
}

// Name returns the job name
func (j *RefreshCycleJob) Name() string {
	return "refresh_cycle"
}

// Run executes one refresh pass. A quote failure is returned so the
// scheduler logs it; the alert check still runs on whatever the alert
// service can fetch.
func (j *RefreshCycleJob) Run() error {
	start := time.Now()

	quotes, err := j.quotes.GetAll()
	if err != nil {
		return fmt.Errorf("quote refresh failed: %w", err)
	}

	j.events.Emit(events.QuotesRefreshed, "scheduler", map[string]interface{}{
		"count": len(quotes),
	})

	fired := j.alerts.CheckAll()

	j.log.Debug().
		Int("quotes", len(quotes)).
		Int("alerts_fired", len(fired)).
		Dur("duration", time.Since(start)).
		Msg("Refresh cycle completed")

	return nil
}
