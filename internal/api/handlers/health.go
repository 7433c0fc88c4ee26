package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/bargainhunt/backend/internal/api/response"
)

// Pinger reports whether a dependency is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// HealthChecker checks the backing stores
type HealthChecker struct {
	checks map[string]Pinger
}

// NewHealthChecker creates a health checker over the named dependencies
func NewHealthChecker(checks map[string]Pinger) *HealthChecker {
	return &HealthChecker{checks: checks}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Services  map[string]string `json:"services"`
}

func (h *HealthChecker) check(ctx context.Context) (map[string]string, bool) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	services := make(map[string]string, len(h.checks))
	healthy := true
	for name, p := range h.checks {
		if err := p.Ping(ctx); err != nil {
			services[name] = "unhealthy"
			healthy = false
			continue
		}
		services[name] = "healthy"
	}
	return services, healthy
}

// Health handles GET /health
func (h *HealthChecker) Health(w http.ResponseWriter, r *http.Request) {
	services, healthy := h.check(r.Context())

	resp := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Services:  services,
	}
	status := http.StatusOK
	if !healthy {
		resp.Status = "degraded"
		status = http.StatusServiceUnavailable
	}
	response.JSON(w, status, resp)
}

// LivenessProbe handles GET /health/live
func LivenessProbe(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]string{"status": "alive"})
}

// ReadinessProbe handles GET /health/ready
func (h *HealthChecker) ReadinessProbe(w http.ResponseWriter, r *http.Request) {
	if _, healthy := h.check(r.Context()); !healthy {
		response.Error(w, http.StatusServiceUnavailable, "Service not ready")
		return
	}
	response.OK(w, map[string]string{"status": "ready"})
}
