package storage

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/kbukum/fobstore/errors"
	"github.com/kbukum/fobstore/validation"
)

// Storage modes.
const (
	ModeFile   = "FILE"
	ModeObject = "OBJECT"
)

// Provider constants for supported storage backends.
const (
	ProviderLocal = "local"
	ProviderS3    = "s3"
	ProviderMinIO = "minio"
)

// Default configuration values.
const (
	DefaultMode           = ModeFile
	DefaultObjectProvider = ProviderS3
	DefaultCodec          = "utf-8"
	DefaultRetryBackoff   = 200 * time.Millisecond
)

// Config selects the storage substrate.
type Config struct {
	// Mode is FILE (local directory) or OBJECT (remote bucket).
	Mode string `mapstructure:"mode" json:"mode" validate:"required,oneof=FILE OBJECT"`

	// Provider picks the driver. FILE always uses "local"; OBJECT uses "s3"
	// unless "minio" is named.
	Provider string `mapstructure:"provider" json:"provider" validate:"required,oneof=local s3 minio"`

	// Codec is the default text codec for UploadText/DownloadText.
	Codec string `mapstructure:"codec" json:"codec"`

	// Retry re-attempts transient backend failures.
	Retry RetryConfig `mapstructure:"retry" json:"retry"`
}

// RetryConfig bounds retries of a single backend call. Attempts of 0 or 1
// disable retrying.
type RetryConfig struct {
	Attempts int           `mapstructure:"attempts" json:"attempts" validate:"min=0,max=10"`
	Backoff  time.Duration `mapstructure:"backoff" json:"backoff"`
}

// ApplyDefaults fills in zero-valued fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	c.Mode = strings.ToUpper(strings.TrimSpace(c.Mode))
	if c.Mode == "" {
		c.Mode = DefaultMode
	}
	c.Provider = strings.ToLower(strings.TrimSpace(c.Provider))
	switch {
	case c.Mode == ModeFile:
		c.Provider = ProviderLocal
	case c.Provider == "":
		c.Provider = DefaultObjectProvider
	}
	if c.Codec == "" {
		c.Codec = DefaultCodec
	}
	if c.Retry.Attempts > 1 && c.Retry.Backoff <= 0 {
		c.Retry.Backoff = DefaultRetryBackoff
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	if c.Mode == ModeObject && c.Provider == ProviderLocal {
		return apperrors.Validation(fmt.Sprintf("storage: provider %q cannot serve mode %s", c.Provider, c.Mode))
	}
	if _, err := lookupEncoding(c.Codec); err != nil {
		return err
	}
	return nil
}
