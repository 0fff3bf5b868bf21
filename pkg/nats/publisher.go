package nats

import (
	"context"
	"fmt"

	"github.com/abgdnv/gocatalog/pkg/messaging"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

type NatsPublisher struct {
	js jetstream.JetStream
}

func NewNatsPublisher(js jetstream.JetStream) *NatsPublisher {
	return &NatsPublisher{js: js}
}

// Publish sends the event payload to the event subject. Keyed events carry their key
// in the Product-Id header.
func (p *NatsPublisher) Publish(ctx context.Context, event messaging.Event) error {
	data, err := event.Payload()
	if err != nil {
		return fmt.Errorf("failed to get event payload: %w", err)
	}
	msg := nats.NewMsg(event.Subject())
	msg.Data = data
	if keyed, ok := event.(messaging.KeyedEvent); ok {
		msg.Header.Set("Product-Id", keyed.Key())
	}
	if _, err = p.js.PublishMsg(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", event.Subject(), err)
	}
	return nil
}
