// Package messaging defines the transport-neutral event publishing contract.
package messaging

import (
	"context"
)

type Event interface {
	Subject() string
	Payload() ([]byte, error)
}

// KeyedEvent is implemented by events that carry a partitioning key.
type KeyedEvent interface {
	Event
	Key() string
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// NopPublisher drops every event. It is used when event publishing is disabled.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
