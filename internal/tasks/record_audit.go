package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/library/internal/entities"
)

// AuditEventWriter persists journal entries.
type AuditEventWriter interface {
	LogEvent(event *entities.AuditEvent) error
}

// RecordAuditEventTask carries one journal entry to the store.
type RecordAuditEventTask struct {
	Event entities.AuditEvent `json:"event"`
}

// Config returns the queue configuration for journal writes.
func (t RecordAuditEventTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "record_audit_event",
		MaxAttempts: 5,
		Backoff:     10 * time.Second,
		Timeout:     30 * time.Second,
		Retention: &backlite.Retention{
			Duration:   time.Hour,
			OnlyFailed: true,
		},
	}
}

// RecordAuditEventProcessor creates a processor function for RecordAuditEventTask.
func RecordAuditEventProcessor(writer AuditEventWriter) backlite.QueueProcessor[RecordAuditEventTask] {
	return func(ctx context.Context, task RecordAuditEventTask) error {
		if writer == nil {
			return fmt.Errorf("audit event writer not configured")
		}
		event := task.Event
		event.ID = 0
		if err := writer.LogEvent(&event); err != nil {
			return fmt.Errorf("record audit event %s: %w", event.Action, err)
		}
		return nil
	}
}

// NewRecordAuditEventQueue creates a backlite queue for journal writes.
func NewRecordAuditEventQueue(writer AuditEventWriter) backlite.Queue {
	return backlite.NewQueue(RecordAuditEventProcessor(writer))
}
