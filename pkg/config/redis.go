package config

import (
	"fmt"
	"time"
)

// RedisConfig configures the Redis backend of the record store.
type RedisConfig struct {
	Addr        string        `koanf:"addr"`
	User        string        `koanf:"user"`
	Password    string        `koanf:"password"`
	DB          int           `koanf:"db"`
	MaxRetries  int           `koanf:"maxretries"`
	DialTimeout time.Duration `koanf:"dialtimeout"`
	Timeout     time.Duration `koanf:"timeout"`
	KeyPrefix   string        `koanf:"keyprefix"`
}

func (c *RedisConfig) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("redis address is not configured")
	}
	if c.DB < 0 {
		return fmt.Errorf("invalid redis db: %d", c.DB)
	}
	if c.DialTimeout <= 0 {
		return fmt.Errorf("invalid redis dial timeout: %v", c.DialTimeout)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("invalid redis timeout: %v", c.Timeout)
	}
	if c.KeyPrefix == "" {
		c.KeyPrefix = "products"
	}
	return nil
}
