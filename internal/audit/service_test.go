package audit

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/library/internal/database"
	auditRepo "github.com/mrlokans/library/internal/database/audit"
	"github.com/mrlokans/library/internal/entities"
	applog "github.com/mrlokans/library/internal/logger"
)

type fakeQueue struct {
	events []*entities.AuditEvent
	err    error
}

func (q *fakeQueue) EnqueueAuditEvent(event *entities.AuditEvent) error {
	if q.err != nil {
		return q.err
	}
	q.events = append(q.events, event)
	return nil
}

func setupTestService(t *testing.T, queue EventQueue) (*Service, *gorm.DB) {
	t.Helper()
	db, err := database.NewDatabaseWithOptions(filepath.Join(t.TempDir(), "audit.db"), database.Options{LogLevel: logger.Silent})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewService(auditRepo.NewRepository(db.DB), queue), db.DB
}

func newEvent(action string) *entities.AuditEvent {
	return &entities.AuditEvent{
		EventType:   entities.AuditEventCreate,
		Action:      action,
		EntityType:  "book",
		Description: "Created book",
		Status:      entities.AuditStatusSuccess,
	}
}

func TestService_RecordWritesSynchronouslyWithoutQueue(t *testing.T) {
	svc, db := setupTestService(t, nil)
	ctx := applog.NewRequestIDContext(context.Background(), "req-1")

	svc.Record(ctx, newEvent("book_create"))

	var saved entities.AuditEvent
	require.NoError(t, db.Where("action = ?", "book_create").First(&saved).Error)
	assert.Equal(t, "req-1", saved.RequestID)
	assert.False(t, saved.CreatedAt.IsZero())
}

func TestService_RecordUsesQueue(t *testing.T) {
	queue := &fakeQueue{}
	svc, db := setupTestService(t, queue)

	svc.Record(context.Background(), newEvent("book_create"))

	require.Len(t, queue.events, 1)
	assert.Equal(t, "book_create", queue.events[0].Action)

	var count int64
	require.NoError(t, db.Model(&entities.AuditEvent{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestService_RecordFallsBackWhenQueueFails(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	ctx := applog.NewContext(context.Background(), zap.New(core))
	svc, db := setupTestService(t, &fakeQueue{err: errors.New("queue closed")})

	svc.Record(ctx, newEvent("book_delete"))

	var count int64
	require.NoError(t, db.Model(&entities.AuditEvent{}).Where("action = ?", "book_delete").Count(&count).Error)
	assert.Equal(t, int64(1), count)
	assert.Equal(t, 1, logs.FilterMessageSnippet("enqueue audit event failed").Len())
}

func TestService_RecordTruncatesDescription(t *testing.T) {
	queue := &fakeQueue{}
	svc, _ := setupTestService(t, queue)

	event := newEvent("book_update")
	event.Description = strings.Repeat("x", 600)
	svc.Record(context.Background(), event)

	require.Len(t, queue.events, 1)
	assert.Len(t, queue.events[0].Description, maxDescriptionLen)
	assert.True(t, strings.HasSuffix(queue.events[0].Description, "..."))
}

func TestService_GetEventsAndRetention(t *testing.T) {
	svc, _ := setupTestService(t, nil)
	ctx := context.Background()

	old := newEvent("old")
	old.CreatedAt = time.Now().AddDate(0, 0, -45)
	svc.Record(ctx, old)
	svc.Record(ctx, newEvent("fresh"))

	events, total, err := svc.GetEvents(ctx, auditRepo.EventFilter{}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, "fresh", events[0].Action)

	deleted, err := svc.DeleteOldEvents(30 * 24 * time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
}
