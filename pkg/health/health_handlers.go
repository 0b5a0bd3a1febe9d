package health

import (
	"encoding/json"
	"net/http"
)

// HTTPStatus maps a report to a response code. The full health scope
// answers 200 while degraded; readiness and liveness only when healthy.
func (r Report) HTTPStatus() int {
	switch {
	case r.Status == StatusHealthy:
		return http.StatusOK
	case r.Status == StatusDegraded && r.Scope == ScopeHealth:
		return http.StatusOK
	default:
		return http.StatusServiceUnavailable
	}
}

// Handler serves scope as a JSON report.
func (c *Checker) Handler(scope Scope) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report := c.Run(r.Context(), scope)
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(report.HTTPStatus())
		_ = json.NewEncoder(w).Encode(report)
	}
}
