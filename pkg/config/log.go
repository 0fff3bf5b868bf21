package config

import (
	"fmt"
	"slices"
)

// LogLevels lists the accepted log levels. Empty means info.
var LogLevels = []string{"debug", "info", "warn", "error"}

type LogConfig struct {
	Level string `koanf:"level"`
}

func (c *LogConfig) String() string {
	level := c.Level
	if level == "" {
		level = "info (default)"
	}
	return fmt.Sprintf("\n--- Log ---\n  level: %s\n", level)
}

func (c *LogConfig) Validate() error {
	if c.Level != "" && !slices.Contains(LogLevels, c.Level) {
		return fmt.Errorf("unsupported log level: %q, expected one of %v", c.Level, LogLevels)
	}
	return nil
}
