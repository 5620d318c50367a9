package api

import (
	"context"
	"net/http"
	"time"
)

// healthCheckTimeout bounds each dependency probe.
const healthCheckTimeout = 2 * time.Second

// connectionReporter is implemented by optional clients that track their own
// connection state (MQTT, InfluxDB).
type connectionReporter interface {
	IsConnected() bool
}

// handleHealth reports the server status and its dependencies.
// Returns 503 when the database does not answer.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	components := map[string]string{
		"database": "ok",
		"mqtt":     connectionState(s.publisher),
		"influxdb": connectionState(s.prices),
	}

	status := http.StatusOK
	overall := "ok"
	if s.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
		defer cancel()
		if err := s.db.HealthCheck(ctx); err != nil {
			s.logger.Warn("health check failed", "component", "database", "error", err)
			components["database"] = "unavailable"
			status = http.StatusServiceUnavailable
			overall = "unhealthy"
		}
	}

	writeJSON(w, status, map[string]any{
		"status":     overall,
		"version":    s.version,
		"components": components,
	})
}

// connectionState describes an optional dependency for the health response.
func connectionState(dep any) string {
	if dep == nil {
		return "disabled"
	}
	if c, ok := dep.(connectionReporter); ok && !c.IsConnected() {
		return "disconnected"
	}
	return "ok"
}
