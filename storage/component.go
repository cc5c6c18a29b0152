package storage

import (
	"context"
	"fmt"

	"github.com/kbukum/fobstore/component"
	"github.com/kbukum/fobstore/logger"
)

// Component wraps a FOB and implements component.Component for lifecycle management.
type Component struct {
	fob         *FOB
	cfg         Config
	providerCfg any
	log         *logger.Logger
}

// NewComponent creates a storage component for use with the component registry.
func NewComponent(cfg Config, providerCfg any, log *logger.Logger) *Component {
	return &Component{
		cfg:         cfg,
		providerCfg: providerCfg,
		log:         log,
	}
}

// FOB returns the underlying FOB, or nil if not started.
func (c *Component) FOB() *FOB {
	return c.fob
}

// ensure Component satisfies component.Component.
var _ component.Component = (*Component)(nil)

// Name returns the component name.
func (c *Component) Name() string { return "storage" }

// Start builds the configured backend.
func (c *Component) Start(ctx context.Context) error {
	f, err := New(ctx, c.cfg, c.providerCfg, c.log)
	if err != nil {
		return fmt.Errorf("storage start: %w", err)
	}
	c.fob = f
	c.cfg = f.cfg
	return nil
}

// Stop releases the FOB.
func (c *Component) Stop(_ context.Context) error {
	c.fob = nil
	return nil
}

// Health reports unhealthy before Start and degraded for an inert backend.
func (c *Component) Health(_ context.Context) component.Health {
	if c.fob == nil {
		return component.Health{
			Name:    c.Name(),
			Status:  component.StatusUnhealthy,
			Message: "storage not initialized",
		}
	}

	if !c.fob.Available() {
		return component.Health{
			Name:    c.Name(),
			Status:  component.StatusDegraded,
			Message: fmt.Sprintf("%s backend unavailable", c.fob.Provider()),
		}
	}

	return component.Health{
		Name:   c.Name(),
		Status: component.StatusHealthy,
	}
}

// Describe returns infrastructure summary info for the startup display.
func (c *Component) Describe() component.Description {
	details := fmt.Sprintf("mode=%s provider=%s", c.cfg.Mode, c.cfg.Provider)

	if bp, ok := c.providerCfg.(BucketDescriber); ok {
		if b := bp.GetBucket(); b != "" {
			details += fmt.Sprintf(" bucket=%s", b)
		}
	}
	if rp, ok := c.providerCfg.(interface{ GetBasePath() string }); ok {
		if p := rp.GetBasePath(); p != "" {
			details += fmt.Sprintf(" root=%s", p)
		}
	}

	return component.Description{
		Name:    "Storage",
		Type:    "storage",
		Details: details,
	}
}
