package health

import (
	"context"
	"sync"
	"time"
)

// Status is the outcome of one check or of a whole scope.
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusDegraded  Status = "degraded"
	StatusUnhealthy Status = "unhealthy"
)

// Scope selects the endpoints a check contributes to. Scopes combine with |.
type Scope uint8

const (
	// ScopeHealth is the full report; degraded still serves traffic.
	ScopeHealth Scope = 1 << iota
	// ScopeReady decides whether the instance should receive new sessions.
	ScopeReady
	// ScopeLive decides whether the process should be restarted.
	ScopeLive
)

// Check is the result of one named check.
type Check struct {
	Name        string         `json:"name"`
	Status      Status         `json:"status"`
	Message     string         `json:"message,omitempty"`
	Details     map[string]any `json:"details,omitempty"`
	LastChecked time.Time      `json:"last_checked"`
	Duration    time.Duration  `json:"duration_ns"`
}

// CheckFunc runs one check. It should return soon after ctx is done; the
// checker stops waiting at the deadline either way.
type CheckFunc func(ctx context.Context) Check

type registration struct {
	name   string
	scopes Scope
	fn     CheckFunc
}

// Checker runs the checks registered for a scope and folds them into one
// status, worst wins.
type Checker struct {
	mu      sync.RWMutex
	checks  []registration
	timeout time.Duration
	started time.Time
}

// Report is the aggregated result of one scope. Checks keep registration
// order.
type Report struct {
	Scope     Scope         `json:"scope"`
	Status    Status        `json:"status"`
	Timestamp time.Time     `json:"timestamp"`
	Uptime    time.Duration `json:"uptime_ns"`
	Checks    []Check       `json:"checks"`
}
