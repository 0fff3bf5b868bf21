package config

import (
	"fmt"
	"strings"
)

// Supported event publisher drivers.
const (
	EventsDriverNone  = "none"
	EventsDriverNATS  = "nats"
	EventsDriverKafka = "kafka"
)

// EventsConfig selects where product change events are published.
type EventsConfig struct {
	Driver string      `koanf:"driver"`
	NATS   NATSConfig  `koanf:"nats"`
	Kafka  KafkaConfig `koanf:"kafka"`
}

// String returns a string representation of the events configuration.
func (c *EventsConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Events ---\n")
	b.WriteString(fmt.Sprintf("  driver: %s\n", c.Driver))
	switch c.Driver {
	case EventsDriverNATS:
		b.WriteString(c.NATS.String())
	case EventsDriverKafka:
		b.WriteString(c.Kafka.String())
	}
	return b.String()
}

func (c *EventsConfig) Validate() error {
	if c.Driver == "" {
		c.Driver = EventsDriverNone
	}
	switch c.Driver {
	case EventsDriverNone:
		return nil
	case EventsDriverNATS:
		return c.NATS.Validate()
	case EventsDriverKafka:
		return c.Kafka.Validate()
	default:
		return fmt.Errorf("unsupported events driver: %q", c.Driver)
	}
}
