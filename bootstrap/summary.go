package bootstrap

import (
	"context"
	"time"

	"github.com/kbukum/fobstore/component"
	"github.com/kbukum/fobstore/logger"
	"github.com/kbukum/fobstore/version"
)

// Summary reports what was started and how long it took.
type Summary struct {
	serviceName     string
	startupDuration time.Duration
}

// NewSummary creates a summary for the named service.
func NewSummary(serviceName string) *Summary {
	return &Summary{serviceName: serviceName}
}

// SetStartupDuration records the total startup time.
func (s *Summary) SetStartupDuration(d time.Duration) {
	s.startupDuration = d
}

// StartupDuration returns the recorded startup time.
func (s *Summary) StartupDuration() time.Duration { return s.startupDuration }

// Display logs one line per component with its description and health.
func (s *Summary) Display(ctx context.Context, reg *component.Registry, log *logger.Logger) {
	health := make(map[string]component.Health)
	for _, h := range reg.HealthAll(ctx) {
		health[h.Name] = h
	}

	for _, d := range reg.Descriptions() {
		fields := map[string]interface{}{
			component.FieldName: d.Name,
			"type":              d.Type,
			"details":           d.Details,
		}
		h, ok := health[d.Name]
		if !ok {
			h, ok = health[d.Type]
		}
		if ok {
			fields["status"] = string(h.Status)
			if h.Message != "" {
				fields["message"] = h.Message
			}
		}
		log.Info("component", fields)
	}

	log.Info("startup complete", map[string]interface{}{
		"name":     s.serviceName,
		"version":  version.Short(),
		"duration": s.startupDuration.String(),
	})
}
