package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEnqueuer struct {
	calls int
	err   error
}

func (f *fakeEnqueuer) EnqueueAuditCleanup() (string, error) {
	f.calls++
	return "task-1", f.err
}

type fakeCleaner struct {
	retentions []time.Duration
}

func (f *fakeCleaner) DeleteOldEvents(retention time.Duration) (int64, error) {
	f.retentions = append(f.retentions, retention)
	return 0, nil
}

func TestValidateCronSchedule(t *testing.T) {
	assert.NoError(t, ValidateCronSchedule("0 3 * * *"))
	assert.NoError(t, ValidateCronSchedule("*/15 * * * *"))
	assert.Error(t, ValidateCronSchedule("every day"))
	assert.Error(t, ValidateCronSchedule("0 0 3 * * *"))
}

func TestStart_InvalidSchedule(t *testing.T) {
	s := NewAuditCleanupScheduler(AuditCleanupConfig{Schedule: "nope"})

	assert.Error(t, s.Start(context.Background()))
	assert.False(t, s.IsRunning())
}

func TestStart_EmptyScheduleDisables(t *testing.T) {
	s := NewAuditCleanupScheduler(AuditCleanupConfig{})

	require.NoError(t, s.Start(context.Background()))
	assert.False(t, s.IsRunning())
	assert.Nil(t, s.NextRun())
}

func TestStartStop(t *testing.T) {
	s := NewAuditCleanupScheduler(AuditCleanupConfig{Schedule: "0 3 * * *", Cleaner: &fakeCleaner{}})

	require.NoError(t, s.Start(context.Background()))
	assert.True(t, s.IsRunning())

	next := s.NextRun()
	require.NotNil(t, next)
	assert.Equal(t, 3, next.Hour())
	assert.Equal(t, 0, next.Minute())

	s.Stop()
	assert.False(t, s.IsRunning())
	s.Stop()
}

func TestStop_OnContextCancel(t *testing.T) {
	s := NewAuditCleanupScheduler(AuditCleanupConfig{Schedule: "0 3 * * *", Cleaner: &fakeCleaner{}})
	ctx, cancel := context.WithCancel(context.Background())

	require.NoError(t, s.Start(ctx))
	cancel()

	assert.Eventually(t, func() bool { return !s.IsRunning() }, time.Second, 10*time.Millisecond)
}

func TestRunNow_PrefersQueue(t *testing.T) {
	enqueuer := &fakeEnqueuer{}
	cleaner := &fakeCleaner{}
	s := NewAuditCleanupScheduler(AuditCleanupConfig{Enqueuer: enqueuer, Cleaner: cleaner, RetentionDays: 10})

	s.RunNow(context.Background())

	assert.Equal(t, 1, enqueuer.calls)
	assert.Empty(t, cleaner.retentions)
}

func TestRunNow_FallsBackInline(t *testing.T) {
	enqueuer := &fakeEnqueuer{err: errors.New("queue closed")}
	cleaner := &fakeCleaner{}
	s := NewAuditCleanupScheduler(AuditCleanupConfig{Enqueuer: enqueuer, Cleaner: cleaner, RetentionDays: 10})

	s.RunNow(context.Background())

	require.Len(t, cleaner.retentions, 1)
	assert.Equal(t, 10*24*time.Hour, cleaner.retentions[0])
}

func TestRunNow_WithoutQueue(t *testing.T) {
	cleaner := &fakeCleaner{}
	s := NewAuditCleanupScheduler(AuditCleanupConfig{Cleaner: cleaner})

	s.RunNow(context.Background())

	assert.Len(t, cleaner.retentions, 1)
}
