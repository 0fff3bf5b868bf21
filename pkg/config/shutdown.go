package config

import (
	"fmt"
	"time"
)

// DefaultShutdownTimeout applies when shutdown.timeout is not set.
const DefaultShutdownTimeout = 10 * time.Second

// ShutdownConfig bounds the graceful stop of each server, including the drain of the event publisher.
type ShutdownConfig struct {
	Timeout time.Duration `koanf:"timeout"`
}

func (c *ShutdownConfig) String() string {
	return fmt.Sprintf("\n--- Shutdown ---\n  timeout: %s\n", c.Timeout)
}

func (c *ShutdownConfig) Validate() error {
	switch {
	case c.Timeout < 0:
		return fmt.Errorf("invalid shutdown timeout: %v", c.Timeout)
	case c.Timeout == 0:
		c.Timeout = DefaultShutdownTimeout
	}
	return nil
}
