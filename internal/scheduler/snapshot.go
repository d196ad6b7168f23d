package scheduler

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/stockport/portfolio-engine/internal/modules/analytics"
)

// SnapshotJob records the portfolio's end-of-day value into the performance
// history. One row per day; rerunning replaces the day's row, so a restart
// mid-day is harmless.
type SnapshotJob struct {
	analytics *analytics.Service
	log       zerolog.Logger
}

// NewSnapshotJob creates a new snapshot job
func NewSnapshotJob(analyticsSvc *analytics.Service, log zerolog.Logger) *SnapshotJob {
	return &SnapshotJob{
		analytics: analyticsSvc,
		log:       log.With().Str("job", "snapshot").Logger(),
	}
}

// Name returns the job name
func (j *SnapshotJob) Name() string {
	return "snapshot"
}

// Run persists today's portfolio value
func (j *SnapshotJob) Run() error {
	if err := j.analytics.RecordSnapshot(); err != nil {
		return fmt.Errorf("snapshot failed: %w", err)
	}
	return nil
}
