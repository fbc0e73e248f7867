package common

// TimestampLayout is the ISO-8601 layout used for response timestamps:
// UTC, microsecond precision, no zone designator.
const TimestampLayout = "2006-01-02T15:04:05.000000"

// MessageResponse is returned by the root endpoint.
type MessageResponse struct {
	// Message is the welcome text
	Message string `json:"message"`

	// Version is the API version
	Version string `json:"version"`

	// Timestamp is the time the response was built, in TimestampLayout
	Timestamp string `json:"timestamp"`
}

// HealthResponse represents the liveness check response structure.
type HealthResponse struct {
	// Status is always "healthy" while the process serves requests
	Status string `json:"status"`

	// Version is the API version
	Version string `json:"version"`

	// Uptime is the number of seconds elapsed since process start
	Uptime float64 `json:"uptime"`
}

// DetailResponse wraps arbitrary details under a single "detail" key.
// It is the envelope of every error response.
type DetailResponse struct {
	Detail map[string]any `json:"detail"`
}
