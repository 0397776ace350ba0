package config

import (
	"fmt"
	"strings"
	"time"
)

type DatabaseConfig struct {
	URL     string        `koanf:"url"`
	Timeout time.Duration `koanf:"timeout"`
	// Migrate applies the embedded schema migrations on startup.
	Migrate bool `koanf:"migrate"`
}

func (c *DatabaseConfig) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("database URL is not configured")
	}
	if !isValidPostgresURL(c.URL) {
		return fmt.Errorf("database URL must start with 'postgres://' or 'postgresql://'")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("database connect timeout is not configured")
	}
	return nil
}

func isValidPostgresURL(url string) bool {
	return strings.HasPrefix(url, "postgres://") ||
		strings.HasPrefix(url, "postgresql://")
}
