package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// DefaultReportSpec runs the report daily at 21:00 UTC.
const DefaultReportSpec = "0 21 * * *"

// Scheduler runs the periodic usage report.
type Scheduler struct {
	cron       *cron.Cron
	ctx        context.Context
	cancel     context.CancelFunc
	reportFunc func(ctx context.Context) error
}

func New() *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron:   cron.New(cron.WithLocation(time.UTC)),
		ctx:    ctx,
		cancel: cancel,
	}
}

func (s *Scheduler) SetReportFunction(f func(ctx context.Context) error) {
	s.reportFunc = f
}

// Start registers the report job under spec (standard 5-field cron syntax)
// and starts the cron loop.
func (s *Scheduler) Start(spec string) error {
	if s.reportFunc == nil {
		return errors.New("report function not set")
	}
	if spec == "" {
		spec = DefaultReportSpec
	}
	if _, err := s.cron.AddFunc(spec, s.runReport); err != nil {
		return err
	}
	s.cron.Start()
	log.Info().Str("spec", spec).Msg("report scheduler started")
	return nil
}

func (s *Scheduler) runReport() {
	log.Info().Msg("generating usage report")
	if err := s.reportFunc(s.ctx); err != nil {
		log.Error().Err(err).Msg("usage report failed")
	}
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
	if s.cancel != nil {
		s.cancel()
	}
	log.Info().Msg("report scheduler stopped")
}

func (s *Scheduler) IsRunning() bool {
	return s.cron != nil && len(s.cron.Entries()) > 0
}
