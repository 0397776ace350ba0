package nats

import (
	"context"
	"fmt"

	"github.com/abgdnv/shopfront/pkg/messaging"
	"github.com/nats-io/nats.go/jetstream"
)

type NatsPublisher struct {
	js jetstream.JetStream
}

var _ messaging.Publisher = (*NatsPublisher)(nil)

func NewNatsPublisher(js jetstream.JetStream) *NatsPublisher {
	return &NatsPublisher{js: js}
}

// Publish sends the event and waits for the JetStream ack.
func (p *NatsPublisher) Publish(ctx context.Context, event messaging.Event) error {
	data, err := event.Payload()
	if err != nil {
		return fmt.Errorf("failed to get event payload: %w", err)
	}
	if _, err = p.js.Publish(ctx, event.Subject(), data); err != nil {
		return fmt.Errorf("failed to publish %s: %w", event.Subject(), err)
	}
	return nil
}
