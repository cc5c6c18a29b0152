package s3

import "github.com/kbukum/fobstore/validation"

// Defaults for IBM Cloud Object Storage deployments.
const (
	DefaultBucket      = "legi-info"
	DefaultRegion      = "us-east-1"
	DefaultMaxAttempts = 3
)

// Config holds S3-compatible object storage configuration. Keys live under
// "cos" so the COS_* environment variables bind directly.
type Config struct {
	// EndpointURL is the service endpoint (COS_ENDPOINT_URL).
	EndpointURL string `mapstructure:"endpoint_url" json:"endpoint_url" validate:"required,url"`

	// APIKeyID is the HMAC access key id (COS_API_KEY_ID).
	APIKeyID string `mapstructure:"api_key_id" json:"api_key_id" validate:"required"`

	// SecretKey is the HMAC secret access key (COS_SECRET_KEY).
	SecretKey string `mapstructure:"secret_key" json:"-" validate:"required"`

	// Instance is the service instance id sent as ibm-service-instance-id
	// (COS_INSTANCE).
	Instance string `mapstructure:"instance" json:"instance" validate:"required"`

	// Bucket is the bucket holding every item.
	Bucket string `mapstructure:"bucket" json:"bucket" validate:"required,bucketname"`

	// Region is the signing region.
	Region string `mapstructure:"region" json:"region" validate:"required"`

	// MaxAttempts bounds SDK retries per request.
	MaxAttempts int `mapstructure:"max_attempts" json:"max_attempts" validate:"min=0,max=10"`
}

// ApplyDefaults fills in zero-valued fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Bucket == "" {
		c.Bucket = DefaultBucket
	}
	if c.Region == "" {
		c.Region = DefaultRegion
	}
	if c.MaxAttempts == 0 {
		c.MaxAttempts = DefaultMaxAttempts
	}
}

// Validate checks that the S3 configuration is valid.
func (c *Config) Validate() error {
	return validation.Validate(c)
}

// GetBucket returns the bucket name.
func (c *Config) GetBucket() string { return c.Bucket }
