// Package types provides core type definitions shared across the SDK.
//
// # Health Types
//
// Health types represent the operational status of components such as tools,
// stores, and workers:
//
//	status := types.NewHealthyStatus("all systems operational")
//	if status.IsHealthy() {
//	    // Component is fully operational
//	}
//
//	degraded := types.NewDegradedStatus("high latency", map[string]any{
//	    "latency_ms": 500,
//	})
//
// Components report degraded when they can still serve requests with reduced
// quality, and unhealthy when they cannot serve requests at all.
package types
