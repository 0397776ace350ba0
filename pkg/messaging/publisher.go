// Package messaging defines the event publishing contract used by the services.
package messaging

import (
	"context"
	"log/slog"
)

const (
	OrdersSubjects             = "orders.>"
	OrdersCreatedSubject       = "orders.created"
	OrdersStatusChangedSubject = "orders.status_changed"
)

type Event interface {
	Subject() string
	Payload() ([]byte, error)
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// LogPublisher only logs events. It stands in when no broker is configured.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger.With("component", "publisher")}
}

func (p *LogPublisher) Publish(ctx context.Context, event Event) error {
	p.logger.DebugContext(ctx, "Event not published, broker disabled", "subject", event.Subject())
	return nil
}
