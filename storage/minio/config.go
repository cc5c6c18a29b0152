package minio

import "github.com/kbukum/fobstore/validation"

// Defaults for a MinIO deployment.
const (
	DefaultBucket = "legi-info"
	DefaultRegion = "us-east-1"
)

// Config holds MinIO configuration, read from the "minio" key (MINIO_*).
type Config struct {
	// Endpoint is host[:port] without a scheme.
	Endpoint string `mapstructure:"endpoint" json:"endpoint" validate:"required,hostname_port|hostname"`

	AccessKey string `mapstructure:"access_key" json:"access_key" validate:"required"`
	SecretKey string `mapstructure:"secret_key" json:"-" validate:"required"`

	// UseSSL selects https.
	UseSSL bool `mapstructure:"use_ssl" json:"use_ssl"`

	Bucket string `mapstructure:"bucket" json:"bucket" validate:"required,bucketname"`

	// Region is sent with bucket creation and skips the location lookup.
	Region string `mapstructure:"region" json:"region" validate:"required"`
}

// ApplyDefaults fills in zero-valued fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Bucket == "" {
		c.Bucket = DefaultBucket
	}
	if c.Region == "" {
		c.Region = DefaultRegion
	}
}

// Validate checks that the MinIO configuration is valid.
func (c *Config) Validate() error {
	return validation.Validate(c)
}

// GetBucket returns the bucket name.
func (c *Config) GetBucket() string { return c.Bucket }
