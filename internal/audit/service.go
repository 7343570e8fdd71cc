// Package audit records the catalog change journal. Events go through the
// task queue when one is configured and straight to the store otherwise.
package audit

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/mrlokans/library/internal/database/audit"
	"github.com/mrlokans/library/internal/entities"
	"github.com/mrlokans/library/internal/logger"
)

const maxDescriptionLen = 500

// EventQueue hands an event to background delivery.
type EventQueue interface {
	EnqueueAuditEvent(event *entities.AuditEvent) error
}

// Service provides high-level audit logging functionality.
type Service struct {
	repo  *audit.Repository
	queue EventQueue
}

// NewService creates a new audit service. queue may be nil, in which case
// events are written synchronously.
func NewService(repo *audit.Repository, queue EventQueue) *Service {
	return &Service{repo: repo, queue: queue}
}

// Record journals event. Failures are logged and never returned, so a
// journal problem cannot fail the change it describes.
func (s *Service) Record(ctx context.Context, event *entities.AuditEvent) {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	if event.RequestID == "" {
		if id, ok := logger.GetRequestID(ctx); ok {
			event.RequestID = id
		}
	}
	event.Description = truncate(event.Description, maxDescriptionLen)

	log := logger.FromContext(ctx)
	if s.queue != nil {
		err := s.queue.EnqueueAuditEvent(event)
		if err == nil {
			return
		}
		log.Warn("enqueue audit event failed, writing directly", zap.String("action", event.Action), zap.Error(err))
	}

	if err := s.repo.LogEvent(event); err != nil {
		log.Error("failed to log audit event", zap.String("action", event.Action), zap.Error(err))
	}
}

// GetEvents retrieves paginated audit events, newest first.
func (s *Service) GetEvents(ctx context.Context, filter audit.EventFilter, limit, offset int) ([]entities.AuditEvent, int64, error) {
	return s.repo.GetEvents(ctx, filter, limit, offset)
}

// DeleteOldEvents removes events older than the specified duration.
func (s *Service) DeleteOldEvents(retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)
	return s.repo.DeleteOldEvents(cutoff)
}

// truncate shortens a string to max length.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
