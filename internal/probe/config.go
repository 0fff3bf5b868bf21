package probe

import (
	"fmt"
	"strings"
	"time"

	"github.com/abgdnv/gocatalog/pkg/config"
	"github.com/abgdnv/gocatalog/pkg/config/configloader"
)

var _ configloader.Validator = (*Config)(nil)

// Config is the part of the service configuration read by the probe.
type Config struct {
	Log   config.LogConfig `koanf:"log"`
	Probe Settings         `koanf:"probe"`
}

// Settings configures the probe client.
// Interval 0 checks once, a positive Interval keeps checking until the process is stopped.
type Settings struct {
	Target     string                  `koanf:"target"`
	Service    string                  `koanf:"service"`
	Interval   time.Duration           `koanf:"interval"`
	Resilience config.ResilienceConfig `koanf:"resilience"`
}

func (c *Config) String() string {
	var b strings.Builder
	b.WriteString(c.Log.String())
	b.WriteString("\n--- Probe ---\n")
	b.WriteString(fmt.Sprintf("  target: %s\n", c.Probe.Target))
	b.WriteString(fmt.Sprintf("  service: %s\n", c.Probe.Service))
	b.WriteString(fmt.Sprintf("  interval: %v\n", c.Probe.Interval))
	b.WriteString(c.Probe.Resilience.String())
	return b.String()
}

func (c *Config) Validate() error {
	if err := c.Log.Validate(); err != nil {
		return err
	}
	if c.Probe.Target == "" {
		return fmt.Errorf("probe target is not configured")
	}
	if c.Probe.Interval < 0 {
		return fmt.Errorf("invalid probe interval: %v", c.Probe.Interval)
	}
	if err := c.Probe.Resilience.Validate(); err != nil {
		return fmt.Errorf("probe resilience: %w", err)
	}
	return nil
}
