package storage

import (
	"context"
	"fmt"
	"strings"

	apperrors "github.com/kbukum/fobstore/errors"
	"github.com/kbukum/fobstore/logger"
)

// BackendFactory creates a Backend from core config and provider-specific
// configuration. Each provider type-asserts providerCfg to its own config type.
type BackendFactory func(ctx context.Context, cfg Config, providerCfg any, log *logger.Logger) (Backend, error)

var factories = make(map[string]BackendFactory)

// RegisterFactory registers a backend factory for the given provider name.
// Implementation packages call this from an init function to make
// themselves available to New.
func RegisterFactory(name string, f BackendFactory) {
	factories[name] = f
}

// New creates a FOB for the configured mode. providerCfg carries
// provider-specific settings (e.g. *local.Config, *s3.Config). Ensure the
// desired provider package has been imported (e.g.
// _ "github.com/kbukum/fobstore/storage/local") so its factory is registered.
//
// A remote backend that cannot reach or create its bucket is not an error
// here: the FOB is returned inert and every later call reports the backend
// unavailable.
func New(ctx context.Context, cfg Config, providerCfg any, log *logger.Logger) (*FOB, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	l := log.WithComponent("storage")

	f, ok := factories[cfg.Provider]
	if !ok {
		return nil, apperrors.Validation(fmt.Sprintf("storage: unsupported provider %q (not registered)", cfg.Provider))
	}

	l.Info("initializing storage", map[string]interface{}{"mode": cfg.Mode, "provider": cfg.Provider})
	b, err := f(ctx, cfg, providerCfg, l)
	if err != nil {
		return nil, fmt.Errorf("storage: %s backend: %w", cfg.Provider, err)
	}
	return newFOB(cfg, withRetry(b, cfg.Retry, l), l), nil
}

// NewWithBackend wraps an already constructed backend, such as an in-memory
// one in tests. An empty Mode is derived from the backend kind.
func NewWithBackend(cfg Config, b Backend, log *logger.Logger) (*FOB, error) {
	cfg.Mode = strings.ToUpper(strings.TrimSpace(cfg.Mode))
	if cfg.Mode == "" {
		cfg.Mode = ModeObject
		if b.Name() == ProviderLocal {
			cfg.Mode = ModeFile
		}
	}
	if cfg.Codec == "" {
		cfg.Codec = DefaultCodec
	}
	if _, err := lookupEncoding(cfg.Codec); err != nil {
		return nil, err
	}
	cfg.Provider = b.Name()
	l := log.WithComponent("storage")
	return newFOB(cfg, withRetry(b, cfg.Retry, l), l), nil
}
