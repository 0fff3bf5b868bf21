package kafka

import (
	"context"
	"errors"
	"testing"

	"github.com/abgdnv/gocatalog/pkg/messaging/events"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockWriter struct {
	messages []kafka.Message
	error    error
	closed   bool
}

func (m *mockWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if m.error != nil {
		return m.error
	}
	m.messages = append(m.messages, msgs...)
	return nil
}

func (m *mockWriter) Close() error {
	m.closed = true
	return nil
}

func Test_Publisher_Publish(t *testing.T) {
	event := events.ProductChangedEvent{
		EventID: "evt-1",
		Type:    events.ProductCreated,
		Product: events.ProductSnapshot{ID: "p-1", Name: "Laptop", Price: 10},
	}

	t.Run("message is keyed by product", func(t *testing.T) {
		// given
		writer := &mockWriter{}
		publisher := NewPublisher(writer)
		// when
		err := publisher.Publish(context.Background(), event)
		// then
		require.NoError(t, err)
		require.Len(t, writer.messages, 1)
		assert.Equal(t, "p-1", string(writer.messages[0].Key))
		assert.Equal(t, "subject", writer.messages[0].Headers[0].Key)
		assert.Equal(t, "products.created", string(writer.messages[0].Headers[0].Value))
		payload, _ := event.Payload()
		assert.JSONEq(t, string(payload), string(writer.messages[0].Value))
	})

	t.Run("writer error is wrapped", func(t *testing.T) {
		// given
		errBroker := errors.New("broker down")
		publisher := NewPublisher(&mockWriter{error: errBroker})
		// when
		err := publisher.Publish(context.Background(), event)
		// then
		assert.ErrorIs(t, err, errBroker)
	})

	t.Run("close closes writer", func(t *testing.T) {
		writer := &mockWriter{}
		require.NoError(t, NewPublisher(writer).Close())
		assert.True(t, writer.closed)
	})
}
