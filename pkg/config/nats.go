package config

import (
	"fmt"
	"strings"
	"time"
)

// NATSConfig configures the JetStream publisher. Stream is created on startup when missing
// and captures every products.> subject.
type NATSConfig struct {
	Url     string        `koanf:"url"`
	Timeout time.Duration `koanf:"timeout"`
	Stream  string        `koanf:"stream"`
}

// String returns a string representation of the NATS configuration.
func (c *NATSConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- NATS ---\n")
	b.WriteString(fmt.Sprintf("  url: %s\n", maskURL(c.Url)))
	b.WriteString(fmt.Sprintf("  timeout: %s\n", c.Timeout))
	b.WriteString(fmt.Sprintf("  stream: %s\n", c.Stream))
	return b.String()
}

func (c *NATSConfig) Validate() error {
	if c.Url == "" {
		return fmt.Errorf("NATS URL is not configured")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("nats dial timeout is not configured")
	}
	if c.Stream == "" {
		return fmt.Errorf("nats stream is not configured")
	}
	// JetStream rejects stream names that could be read as subjects or paths
	if strings.ContainsAny(c.Stream, " .*>/\\\t") {
		return fmt.Errorf("invalid nats stream name: %q", c.Stream)
	}
	return nil
}
