// Package config holds the configuration of the product service.
package config

import (
	"fmt"
	"strings"

	"github.com/abgdnv/gocatalog/pkg/config"
	"github.com/abgdnv/gocatalog/pkg/config/configloader"
)

var _ configloader.Validator = (*Config)(nil)

type Config struct {
	HTTPServer config.HTTPConfig       `koanf:"server"`
	Store      config.StoreConfig      `koanf:"store"`
	Log        config.LogConfig        `koanf:"log"`
	PProf      config.PProfConfig      `koanf:"pprof"`
	GRPC       config.GrpcServerConfig `koanf:"grpc"`
	Shutdown   config.ShutdownConfig   `koanf:"shutdown"`
	Events     config.EventsConfig     `koanf:"events"`
	Telemetry  config.TelemetryConfig  `koanf:"telemetry"`
	API        APIConfig               `koanf:"api"`
}

// APIConfig tunes the REST API.
// NormalizeStatus answers 200 for single product reads and updates instead of 302 and 201.
type APIConfig struct {
	NormalizeStatus bool `koanf:"normalizestatus"`
}

func (c *Config) String() string {
	var b strings.Builder
	b.WriteString(c.HTTPServer.String())
	b.WriteString(c.Store.String())
	b.WriteString(c.GRPC.String())
	b.WriteString(c.Events.String())
	b.WriteString(c.Log.String())
	b.WriteString(c.PProf.String())
	b.WriteString(c.Telemetry.String())
	b.WriteString(c.Shutdown.String())
	b.WriteString("\n--- API ---\n")
	b.WriteString(fmt.Sprintf("  normalizestatus: %t\n", c.API.NormalizeStatus))
	return b.String()
}

// Validate checks if the configuration values are valid
func (c *Config) Validate() error {
	validators := []configloader.Validator{
		&c.HTTPServer,
		&c.Store,
		&c.Log,
		&c.PProf,
		&c.Shutdown,
		&c.GRPC,
		&c.Events,
		&c.Telemetry,
	}
	for _, v := range validators {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	return nil
}
