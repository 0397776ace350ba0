package config

import (
	"fmt"
	"strings"
)

// ObjectStorageConfig points at the S3 bucket holding shop images.
type ObjectStorageConfig struct {
	Bucket string `koanf:"bucket"`
	Region string `koanf:"region"`
	// Folder is the key prefix for uploaded images.
	Folder string `koanf:"folder"`
}

const defaultImageFolder = "shops"

// String returns a string representation of the object storage configuration.
func (c *ObjectStorageConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Object Storage ---\n")
	b.WriteString(fmt.Sprintf("  storage.bucket: %s\n", c.Bucket))
	b.WriteString(fmt.Sprintf("  storage.region: %s\n", c.Region))
	b.WriteString(fmt.Sprintf("  storage.folder: %s\n", c.Folder))
	return b.String()
}

func (c *ObjectStorageConfig) Validate() error {
	if c.Bucket == "" {
		return fmt.Errorf("storage bucket is not configured")
	}
	if c.Region == "" {
		return fmt.Errorf("storage region is not configured")
	}
	if c.Folder == "" {
		c.Folder = defaultImageFolder
	}
	return nil
}
