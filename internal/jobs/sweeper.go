package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"transportmarket/internal/logx"
)

// purger hard-deletes archived orders older than the cutoff and returns how
// many were purged.
type purger interface {
	PurgeArchivedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// counter abstracts a metrics counter with a delta.
type counter interface {
	Add(float64)
}

// Sweeper runs the scheduled retention sweep: archived orders stay
// recoverable for the configured window and are hard-deleted afterwards.
type Sweeper struct {
	repo          purger
	retention     time.Duration
	schedule      string
	cron          *cron.Cron
	logger        logx.Logger
	purgedCounter counter
	now           func() time.Time
}

// NewSweeper creates a sweeper purging records archived longer ago than
// retentionDays, on the given cron schedule.
func NewSweeper(repo purger, retentionDays int, schedule string, logger logx.Logger, purged counter) *Sweeper {
	if retentionDays <= 0 {
		retentionDays = 30
	}
	return &Sweeper{
		repo:          repo,
		retention:     time.Duration(retentionDays) * 24 * time.Hour,
		schedule:      schedule,
		cron:          cron.New(),
		logger:        logger.With(logx.String("component", "retention_sweeper")),
		purgedCounter: purged,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// Start schedules the sweep.
func (s *Sweeper) Start() error {
	_, err := s.cron.AddFunc(s.schedule, func() {
		if err := s.SweepOnce(context.Background()); err != nil {
			s.logger.Error("retention sweep failed", logx.Any("err", err))
		}
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Info("retention sweeper started",
		logx.String("schedule", s.schedule),
		logx.Duration("retention", s.retention),
	)
	return nil
}

// Stop stops the scheduler and waits for a running sweep to finish.
func (s *Sweeper) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("retention sweeper stopped")
}

// SweepOnce purges everything archived before now minus the retention window.
func (s *Sweeper) SweepOnce(ctx context.Context) error {
	cutoff := s.now().Add(-s.retention)
	n, err := s.repo.PurgeArchivedBefore(ctx, cutoff)
	if err != nil {
		return err
	}
	if n > 0 {
		if s.purgedCounter != nil {
			s.purgedCounter.Add(float64(n))
		}
		s.logger.Info("archived orders purged",
			logx.Int("count", int(n)),
			logx.Time("cutoff", cutoff),
		)
	}
	return nil
}
