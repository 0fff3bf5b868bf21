package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// PostgresConfig configures the PostgreSQL backend of the record store.
// With Migrate set the embedded schema migrations run before the pool is opened.
type PostgresConfig struct {
	URL     string        `koanf:"url"`
	Timeout time.Duration `koanf:"timeout"`
	Migrate bool          `koanf:"migrate"`
}

func (c *PostgresConfig) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("postgres URL is not configured")
	}
	u, err := url.Parse(c.URL)
	if err != nil || (u.Scheme != "postgres" && u.Scheme != "postgresql") {
		return fmt.Errorf("postgres URL must start with 'postgres://': %s", maskURL(c.URL))
	}
	if u.Host == "" {
		return fmt.Errorf("postgres URL has no host: %s", maskURL(c.URL))
	}
	if strings.Trim(u.Path, "/") == "" {
		return fmt.Errorf("postgres URL has no database name: %s", maskURL(c.URL))
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("invalid postgres connect timeout: %v", c.Timeout)
	}
	return nil
}
