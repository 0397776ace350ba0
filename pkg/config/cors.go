package config

import (
	"fmt"
	"strings"
	"time"
)

type CORSConfig struct {
	AllowedOrigins []string      `koanf:"allowedorigins"`
	MaxAge         time.Duration `koanf:"maxage"`
}

// String returns a string representation of the CORS configuration.
func (c *CORSConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- CORS ---\n")
	b.WriteString(fmt.Sprintf("  cors.allowedorigins: %s\n", strings.Join(c.AllowedOrigins, ",")))
	b.WriteString(fmt.Sprintf("  cors.maxage: %s\n", c.MaxAge))
	return b.String()
}

func (c *CORSConfig) Validate() error {
	if len(c.AllowedOrigins) == 0 {
		c.AllowedOrigins = []string{"*"}
	}
	if c.MaxAge < 0 {
		return fmt.Errorf("cors max age cannot be negative")
	}
	return nil
}
