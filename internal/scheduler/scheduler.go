// Package scheduler runs the membership reconciler on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"volunteerhub/internal/services"
)

// DefaultRunTimeout bounds a single reconciliation pass.
const DefaultRunTimeout = 5 * time.Minute

// Reconciler is the job the scheduler runs.
type Reconciler interface {
	Run(ctx context.Context) (services.ReconcileReport, error)
}

// Scheduler periodically repairs users' attending sets from event rosters.
type Scheduler struct {
	cron       *cron.Cron
	reconciler Reconciler
	logger     *slog.Logger
	runTimeout time.Duration
}

// New creates a scheduler. Overlapping runs are skipped, never queued.
func New(reconciler Reconciler, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		cron:       cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		reconciler: reconciler,
		logger:     logger.With("component", "scheduler"),
		runTimeout: DefaultRunTimeout,
	}
}

// ParseSchedule validates a five-field cron spec or a descriptor such as "@hourly".
func ParseSchedule(spec string) error {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	if _, err := parser.Parse(spec); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", spec, err)
	}
	return nil
}

// Start registers the reconcile job on spec and starts the cron loop.
func (s *Scheduler) Start(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.RunOnce); err != nil {
		return fmt.Errorf("schedule reconcile job: %w", err)
	}
	s.cron.Start()
	s.logger.Info("scheduler started", "schedule", spec, "jobs", len(s.cron.Entries()))
	return nil
}

// RunOnce performs one reconciliation pass and logs its outcome.
func (s *Scheduler) RunOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), s.runTimeout)
	defer cancel()
	start := time.Now()
	report, err := s.reconciler.Run(ctx)
	if err != nil {
		s.logger.Error("reconcile run failed", "err", err, "duration_ms", time.Since(start).Milliseconds())
		return
	}
	if report.Added > 0 || report.Removed > 0 || report.Uncredited > 0 {
		s.logger.Warn("reconcile repaired memberships",
			"added", report.Added, "removed", report.Removed, "uncredited", report.Uncredited)
	}
}

// Stop waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}
