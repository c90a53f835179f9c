package usecase

import (
	"context"
	"log/slog"

	"jokeapi/src/core/ports"
)

// HealthService reports the status of the in-memory stores.
type HealthService struct {
	log        *slog.Logger
	components map[string]ports.ExternalService
}

// NewHealthService creates a new HealthService checking the given components.
func NewHealthService(log *slog.Logger, components map[string]ports.ExternalService) *HealthService {
	return &HealthService{
		log:        log,
		components: components,
	}
}

// HealthStatus represents the health of the application.
type HealthStatus struct {
	Status     string                     `json:"status"`
	Components map[string]ComponentHealth `json:"components,omitempty"`
}

// ComponentHealth represents the health of a single component.
type ComponentHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Records *int   `json:"records,omitempty"`
}

// counter is implemented by stores that can report their size.
type counter interface {
	Count(ctx context.Context) (int, error)
}

// Check performs a health check of all application components.
// Any unhealthy component degrades the overall status.
func (s *HealthService) Check(ctx context.Context) *HealthStatus {
	status := &HealthStatus{
		Status:     "ok",
		Components: make(map[string]ComponentHealth, len(s.components)),
	}

	for name, c := range s.components {
		if err := c.Health(ctx); err != nil {
			status.Status = "degraded"
			status.Components[name] = ComponentHealth{
				Status:  "unhealthy",
				Message: err.Error(),
			}
			s.log.Warn("component unhealthy", "component", name, "error", err)
			continue
		}
		health := ComponentHealth{Status: "healthy"}
		if cnt, ok := c.(counter); ok {
			if n, err := cnt.Count(ctx); err == nil {
				health.Records = &n
			}
		}
		status.Components[name] = health
	}

	return status
}
