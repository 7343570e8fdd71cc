package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mrlokans/library/internal/tasks"
)

var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// ValidateCronSchedule checks a standard five-field cron expression.
func ValidateCronSchedule(schedule string) error {
	_, err := cronParser.Parse(schedule)
	return err
}

// CleanupEnqueuer hands a retention sweep to the task queue.
type CleanupEnqueuer interface {
	EnqueueAuditCleanup() (string, error)
}

// AuditCleanupConfig wires the retention sweep. With Enqueuer set the sweep
// runs on the task queue; otherwise it runs inline against Cleaner.
type AuditCleanupConfig struct {
	Schedule      string
	RetentionDays int
	Enqueuer      CleanupEnqueuer
	Cleaner       tasks.AuditEventCleaner
	Logger        *zap.Logger
}

// AuditCleanupScheduler periodically prunes the change journal.
type AuditCleanupScheduler struct {
	cfg AuditCleanupConfig
	log *zap.Logger

	cron      *cron.Cron
	entryID   cron.EntryID
	mu        sync.RWMutex
	isRunning bool
}

func NewAuditCleanupScheduler(cfg AuditCleanupConfig) *AuditCleanupScheduler {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &AuditCleanupScheduler{
		cfg:  cfg,
		log:  log.Named("audit_cleanup"),
		cron: cron.New(cron.WithParser(cronParser)),
	}
}

// Start registers the sweep and starts the cron loop. The scheduler stops
// on its own when ctx is cancelled.
func (s *AuditCleanupScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}
	if s.cfg.Schedule == "" {
		s.log.Info("audit cleanup scheduler disabled")
		return nil
	}
	if err := ValidateCronSchedule(s.cfg.Schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.cfg.Schedule, err)
	}

	entryID, err := s.cron.AddFunc(s.cfg.Schedule, func() {
		s.run(context.Background())
	})
	if err != nil {
		return fmt.Errorf("failed to schedule audit cleanup: %w", err)
	}
	s.entryID = entryID

	s.cron.Start()
	s.isRunning = true
	s.log.Info("audit cleanup scheduler started",
		zap.String("schedule", s.cfg.Schedule),
		zap.Time("next_run", s.cron.Entry(entryID).Next))

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler
func (s *AuditCleanupScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	// Stop accepting new jobs and wait for running jobs to complete
	done := s.cron.Stop()
	<-done.Done()

	s.cron.Remove(s.entryID)
	s.isRunning = false
	s.log.Info("audit cleanup scheduler stopped")
}

// RunNow triggers a sweep immediately.
func (s *AuditCleanupScheduler) RunNow(ctx context.Context) {
	s.run(ctx)
}

func (s *AuditCleanupScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRun returns when the next sweep will occur.
func (s *AuditCleanupScheduler) NextRun() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}
	next := s.cron.Entry(s.entryID).Next
	return &next
}

func (s *AuditCleanupScheduler) run(ctx context.Context) {
	if s.cfg.Enqueuer != nil {
		taskID, err := s.cfg.Enqueuer.EnqueueAuditCleanup()
		if err == nil {
			s.log.Info("audit cleanup enqueued", zap.String("task_id", taskID))
			return
		}
		s.log.Warn("enqueue audit cleanup failed, running inline", zap.Error(err))
	}

	if _, err := tasks.CleanupAuditEvents(ctx, s.cfg.Cleaner, s.cfg.RetentionDays); err != nil {
		s.log.Error("audit cleanup failed", zap.Error(err))
	}
}
