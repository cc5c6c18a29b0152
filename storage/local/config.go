package local

import (
	"strings"

	"github.com/kbukum/fobstore/validation"
)

// Config holds local filesystem storage configuration.
type Config struct {
	// BasePath is the root directory holding the items. It is read from
	// fob.storage (FOB_STORAGE) so existing deployments keep working.
	// There is no default: an unset root fails construction.
	BasePath string `mapstructure:"storage" json:"storage" validate:"required"`
}

// ApplyDefaults normalizes the configured values.
func (c *Config) ApplyDefaults() {
	c.BasePath = strings.TrimSpace(c.BasePath)
}

// Validate checks that the local configuration is valid.
func (c *Config) Validate() error {
	return validation.Validate(c)
}

// GetBasePath returns the root directory.
func (c *Config) GetBasePath() string { return c.BasePath }
