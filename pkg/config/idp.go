package config

import (
	"fmt"
	"strings"
	"time"
)

// IdP describes the token issuer used to authenticate shop owners.
// An empty JwksURL disables the authenticated routes.
type IdP struct {
	JwksURL     string        `koanf:"jwksurl"`
	Issuer      string        `koanf:"issuer"`
	MinInterval time.Duration `koanf:"mininterval"`
}

// Enabled reports whether token verification is configured.
func (c *IdP) Enabled() bool {
	return c.JwksURL != ""
}

// String returns a string representation of the IdP configuration.
func (c *IdP) String() string {
	var b strings.Builder
	b.WriteString("\n--- Identity Provider ---\n")
	b.WriteString(fmt.Sprintf("  idp.jwksurl: %s\n", c.JwksURL))
	b.WriteString(fmt.Sprintf("  idp.issuer: %s\n", c.Issuer))
	b.WriteString(fmt.Sprintf("  idp.mininterval: %s\n", c.MinInterval))
	return b.String()
}

func (c *IdP) Validate() error {
	if !c.Enabled() {
		return nil
	}
	if c.Issuer == "" {
		return fmt.Errorf("IdP issuer cannot be empty")
	}
	if c.MinInterval <= 0 {
		return fmt.Errorf("IdP minimum interval must be greater than zero")
	}
	return nil
}
