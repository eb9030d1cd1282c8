package event

import (
	"context"

	"github.com/buildcore/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// AuditSubscriber logs every domain event as a structured audit record.
// It subscribes as a wildcard handler and never fails the publisher.
type AuditSubscriber struct {
	logger *zap.Logger
}

// NewAuditSubscriber creates an audit subscriber
func NewAuditSubscriber(logger *zap.Logger) *AuditSubscriber {
	return &AuditSubscriber{
		logger: logger.Named("audit"),
	}
}

// Handle logs the event
func (s *AuditSubscriber) Handle(ctx context.Context, event shared.DomainEvent) error {
	s.logger.Info("domain event",
		zap.String("event_type", event.EventType()),
		zap.String("event_id", event.EventID().String()),
		zap.String("aggregate_type", event.AggregateType()),
		zap.String("aggregate_id", event.AggregateID().String()),
		zap.Time("occurred_at", event.OccurredAt()),
	)
	return nil
}

// EventTypes returns an empty slice so the subscriber receives all events
func (s *AuditSubscriber) EventTypes() []string {
	return nil
}

var _ shared.EventHandler = (*AuditSubscriber)(nil)
