package config

import (
	"fmt"
	"strings"
	"time"
)

// MongoConfig configures the MongoDB backend of the record store.
type MongoConfig struct {
	URI        string        `koanf:"uri"`
	Database   string        `koanf:"database"`
	Collection string        `koanf:"collection"`
	Timeout    time.Duration `koanf:"timeout"`
}

func (c *MongoConfig) Validate() error {
	if c.URI == "" {
		return fmt.Errorf("mongo URI is not configured")
	}
	if !strings.HasPrefix(c.URI, "mongodb://") && !strings.HasPrefix(c.URI, "mongodb+srv://") {
		return fmt.Errorf("mongo URI must start with 'mongodb://': %s", maskURL(c.URI))
	}
	if c.Database == "" {
		return fmt.Errorf("mongo database is not configured")
	}
	if c.Collection == "" {
		c.Collection = "products"
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("invalid mongo connect timeout: %v", c.Timeout)
	}
	return nil
}
