package health

import "context"

// Status values reported by the health API.
const (
	StatusHealthy  = "healthy"
	StatusReady    = "ready"
	StatusNotReady = "not_ready"

	CheckUp   = "up"
	CheckDown = "down"
)

// Checker is a dependency checked by the readiness endpoint.
type Checker interface {
	// Name identifies the dependency in the readiness report
	Name() string

	// Check returns nil when the dependency is usable
	Check(ctx context.Context) error
}

// CheckResult is the outcome of a single dependency check.
type CheckResult struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// ReadinessResponse represents the readiness check response structure.
type ReadinessResponse struct {
	// Status is "ready" when every check passed, "not_ready" otherwise
	Status string `json:"status"`

	// Version is the API version
	Version string `json:"version"`

	// Checks holds one result per registered dependency
	Checks map[string]CheckResult `json:"checks"`
}
