package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/allisson/storefront/internal/metrics"
	"github.com/allisson/storefront/internal/outbox/domain"
)

// LoggingEventProcessor publishes events to the structured log and counts them
// as "outbox" business operations labelled by event type.
type LoggingEventProcessor struct {
	logger  *slog.Logger
	metrics metrics.BusinessMetrics
}

// NewLoggingEventProcessor creates a new LoggingEventProcessor
func NewLoggingEventProcessor(logger *slog.Logger, businessMetrics metrics.BusinessMetrics) *LoggingEventProcessor {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if businessMetrics == nil {
		businessMetrics = metrics.NewNoOpBusinessMetrics()
	}
	return &LoggingEventProcessor{
		logger:  logger,
		metrics: businessMetrics,
	}
}

// Process decodes the payload and logs it. Unknown event types are logged and acknowledged.
func (p *LoggingEventProcessor) Process(ctx context.Context, event *domain.OutboxEvent) error {
	var payload map[string]any
	if err := json.Unmarshal([]byte(event.Payload), &payload); err != nil {
		p.metrics.RecordOperation(ctx, "outbox", event.EventType, metrics.StatusError)
		return fmt.Errorf("failed to decode %s payload: %w", event.EventType, err)
	}

	switch event.EventType {
	case domain.EventUserRegistered,
		domain.EventProductCreated,
		domain.EventProductUpdated,
		domain.EventProductDeleted:
		p.logger.InfoContext(ctx, "outbox event published",
			slog.String("event_id", event.ID.String()),
			slog.String("event_type", event.EventType),
			slog.Any("payload", payload),
		)
	default:
		p.logger.WarnContext(ctx, "unknown event type", slog.String("event_type", event.EventType))
	}

	p.metrics.RecordOperation(ctx, "outbox", event.EventType, metrics.StatusSuccess)
	return nil
}
