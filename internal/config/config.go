// Package config holds the shop service configuration.
package config

import (
	"fmt"
	"strings"

	"github.com/abgdnv/shopfront/pkg/config"
	"github.com/abgdnv/shopfront/pkg/config/configloader"
)

var _ configloader.Validator = (*Config)(nil)

type Config struct {
	HTTPServer config.HTTPConfig          `koanf:"server"`
	Database   config.DatabaseConfig      `koanf:"database"`
	Log        config.LogConfig           `koanf:"log"`
	PProf      config.PProfConfig         `koanf:"pprof"`
	Nats       config.NATSConfig          `koanf:"nats"`
	Shutdown   config.ShutdownConfig      `koanf:"shutdown"`
	IdP        config.IdP                 `koanf:"idp"`
	Storage    config.ObjectStorageConfig `koanf:"storage"`
	Telemetry  config.TelemetryConfig     `koanf:"telemetry"`
	CORS       config.CORSConfig          `koanf:"cors"`
}

func (c *Config) String() string {
	var b strings.Builder

	b.WriteString(c.HTTPServer.String())

	b.WriteString("\n--- Database Configuration ---\n")
	b.WriteString(fmt.Sprintf("  database.url: %s\n", maskURL(c.Database.URL)))
	b.WriteString(fmt.Sprintf("  database.timeout: %s\n", c.Database.Timeout))
	b.WriteString(fmt.Sprintf("  database.migrate: %t\n", c.Database.Migrate))

	b.WriteString(c.Nats.String())
	b.WriteString(c.IdP.String())
	if c.IdP.Enabled() {
		b.WriteString(c.Storage.String())
	}
	b.WriteString(c.CORS.String())
	b.WriteString(c.Telemetry.String())
	b.WriteString(c.Log.String())
	b.WriteString(c.PProf.String())
	b.WriteString(c.Shutdown.String())

	return b.String()
}

func maskURL(url string) string {
	if url == "" {
		return "<not configured>"
	}
	// keep only the host part
	parts := strings.Split(url, "@")
	if len(parts) == 2 {
		return "****@" + parts[1]
	}
	return "****"
}

// Validate checks the configuration. Object storage is only required when shop writes are enabled.
func (c *Config) Validate() error {
	validators := []configloader.Validator{
		&c.HTTPServer,
		&c.Database,
		&c.Log,
		&c.PProf,
		&c.Nats,
		&c.Shutdown,
		&c.IdP,
		&c.Telemetry,
		&c.CORS,
	}
	if c.IdP.Enabled() {
		validators = append(validators, &c.Storage)
	}
	for _, v := range validators {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	return nil
}
