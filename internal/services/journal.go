package services

import (
	"context"
	"fmt"

	"github.com/mrlokans/library/internal/entities"
)

type nopJournal struct{}

func (nopJournal) Record(context.Context, *entities.AuditEvent) {}

func journalOrNop(j Journal) Journal {
	if j == nil {
		return nopJournal{}
	}
	return j
}

func recordChange(ctx context.Context, j Journal, eventType entities.AuditEventType, entityType string, id uint, format string, args ...any) {
	j.Record(ctx, &entities.AuditEvent{
		EventType:   eventType,
		Action:      entityType + "_" + string(eventType),
		EntityType:  entityType,
		EntityID:    &id,
		Description: fmt.Sprintf(format, args...),
		Status:      entities.AuditStatusSuccess,
	})
}
