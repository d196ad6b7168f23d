// Package scheduler runs the engine's background cycles: the quote
// refresh / alert check loop and the daily performance snapshot.
package scheduler

import (
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Job is a named unit of background work. Run is invoked on the cron
// goroutine; failures are logged, never fatal.
type Job interface {
	Run() error
	Name() string
}

// Scheduler wraps a seconds-resolution cron runner
type Scheduler struct {
	cron *cron.Cron
	log  zerolog.Logger
}

// New creates an idle scheduler; call Start after registering jobs
func New(log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithSeconds()),
		log:  log.With().Str("component", "scheduler").Logger(),
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info().Msg("Scheduler started")
}

// Stop halts scheduling and waits for any running job to finish
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info().Msg("Scheduler stopped")
}

// AddJob registers a job against a six-field cron schedule.
// Schedule examples:
//   - "@every 30s"     - refresh cycle default (REFRESH_SCHEDULE)
//   - "0 5 0 * * *"    - daily snapshot, five seconds past midnight
func (s *Scheduler) AddJob(schedule string, job Job) error {
	_, err := s.cron.AddFunc(schedule, func() {
		s.log.Debug().Str("job", job.Name()).Msg("Running job")

		if err := job.Run(); err != nil {
			s.log.Error().
				Err(err).
				Str("job", job.Name()).
				Msg("Job failed")
			return
		}
		s.log.Debug().Str("job", job.Name()).Msg("Job completed")
	})
	if err != nil {
		return err
	}

	s.log.Info().
		Str("schedule", schedule).
		Str("job", job.Name()).
		Msg("Job registered")

	return nil
}
