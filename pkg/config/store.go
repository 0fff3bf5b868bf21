package config

import (
	"fmt"
	"strings"
)

// Supported record store drivers.
const (
	StoreDriverMemory   = "memory"
	StoreDriverPostgres = "postgres"
	StoreDriverMongo    = "mongo"
	StoreDriverRedis    = "redis"
)

// StoreConfig selects the record store backend and holds the settings of every backend.
// Only the section of the selected driver is validated.
type StoreConfig struct {
	Driver   string         `koanf:"driver"`
	Postgres PostgresConfig `koanf:"postgres"`
	Mongo    MongoConfig    `koanf:"mongo"`
	Redis    RedisConfig    `koanf:"redis"`
}

// String returns a string representation of the store configuration.
func (c *StoreConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Store ---\n")
	b.WriteString(fmt.Sprintf("  driver: %s\n", c.Driver))
	switch c.Driver {
	case StoreDriverPostgres:
		b.WriteString(fmt.Sprintf("  postgres.url: %s\n", maskURL(c.Postgres.URL)))
		b.WriteString(fmt.Sprintf("  postgres.timeout: %s\n", c.Postgres.Timeout))
		b.WriteString(fmt.Sprintf("  postgres.migrate: %t\n", c.Postgres.Migrate))
	case StoreDriverMongo:
		b.WriteString(fmt.Sprintf("  mongo.uri: %s\n", maskURL(c.Mongo.URI)))
		b.WriteString(fmt.Sprintf("  mongo.database: %s\n", c.Mongo.Database))
		b.WriteString(fmt.Sprintf("  mongo.collection: %s\n", c.Mongo.Collection))
		b.WriteString(fmt.Sprintf("  mongo.timeout: %s\n", c.Mongo.Timeout))
	case StoreDriverRedis:
		b.WriteString(fmt.Sprintf("  redis.addr: %s\n", c.Redis.Addr))
		b.WriteString(fmt.Sprintf("  redis.db: %d\n", c.Redis.DB))
		b.WriteString(fmt.Sprintf("  redis.keyprefix: %s\n", c.Redis.KeyPrefix))
	}
	return b.String()
}

func (c *StoreConfig) Validate() error {
	if c.Driver == "" {
		c.Driver = StoreDriverMemory
	}
	switch c.Driver {
	case StoreDriverMemory:
		return nil
	case StoreDriverPostgres:
		return c.Postgres.Validate()
	case StoreDriverMongo:
		return c.Mongo.Validate()
	case StoreDriverRedis:
		return c.Redis.Validate()
	default:
		return fmt.Errorf("unsupported store driver: %q", c.Driver)
	}
}

// maskURL hides the scheme and credentials part of a connection URL. URLs without credentials are returned as is.
func maskURL(url string) string {
	if url == "" {
		return "<not configured>"
	}
	if at := strings.LastIndex(url, "@"); at >= 0 {
		return "****" + url[at:]
	}
	return url
}
