package event

import (
	"context"

	"go.uber.org/zap"

	"github.com/venuecore/backend/internal/domain/shared"
)

// ActivityLogger is a wildcard event handler that writes one structured log
// line per domain event. It is the default subscriber wired at startup, so
// every lifecycle change is visible in the logs even with no other
// integrations configured.
type ActivityLogger struct {
	logger *zap.Logger
}

// NewActivityLogger creates a new activity logger
func NewActivityLogger(logger *zap.Logger) *ActivityLogger {
	return &ActivityLogger{logger: logger}
}

// Handle logs the event
func (h *ActivityLogger) Handle(_ context.Context, event shared.DomainEvent) error {
	h.logger.Info("domain event",
		zap.String("event_type", event.EventType()),
		zap.String("event_id", event.EventID().String()),
		zap.String("aggregate_type", event.AggregateType()),
		zap.String("aggregate_id", event.AggregateID().String()),
		zap.String("hotel_id", event.TenantID().String()),
		zap.Time("occurred_at", event.OccurredAt()),
	)
	return nil
}

// EventTypes returns an empty slice so the logger receives all events
func (h *ActivityLogger) EventTypes() []string {
	return nil
}

var _ shared.EventHandler = (*ActivityLogger)(nil)
