package types

// Status enumerates the operational states a component can report.
type Status string

const (
	// StatusHealthy means the component is serving requests normally.
	StatusHealthy Status = "healthy"

	// StatusDegraded means the component still serves requests but with
	// reduced quality, for example a slow embedding provider or a vector
	// store falling back to linear scans.
	StatusDegraded Status = "degraded"

	// StatusUnhealthy means the component cannot serve requests.
	StatusUnhealthy Status = "unhealthy"
)

// HealthStatus is the result of a component health check. Graph tools return
// one from their Health hook; stores and workers report theirs the same way.
type HealthStatus struct {
	// Status is the overall state.
	Status Status `json:"status"`

	// Message is a short human-readable explanation of the state.
	Message string `json:"message,omitempty"`

	// Details carries diagnostic context for degraded and unhealthy
	// states: dependency status, error text, latency figures.
	Details map[string]any `json:"details,omitempty"`
}

// IsHealthy reports whether the component is fully operational.
func (h HealthStatus) IsHealthy() bool {
	return h.Status == StatusHealthy
}

// IsDegraded reports whether the component is operating with reduced quality.
func (h HealthStatus) IsDegraded() bool {
	return h.Status == StatusDegraded
}

// IsUnhealthy reports whether the component cannot serve requests.
func (h HealthStatus) IsUnhealthy() bool {
	return h.Status == StatusUnhealthy
}

// NewHealthyStatus builds a healthy status with an optional message.
func NewHealthyStatus(message string) HealthStatus {
	return HealthStatus{Status: StatusHealthy, Message: message}
}

// NewDegradedStatus builds a degraded status. Details may be nil.
func NewDegradedStatus(message string, details map[string]any) HealthStatus {
	return HealthStatus{Status: StatusDegraded, Message: message, Details: details}
}

// NewUnhealthyStatus builds an unhealthy status. Details may be nil.
func NewUnhealthyStatus(message string, details map[string]any) HealthStatus {
	return HealthStatus{Status: StatusUnhealthy, Message: message, Details: details}
}
