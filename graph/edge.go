package graph

import "fmt"

// Edge represents a directed edge between two nodes with a weight in [0, 1].
// Edges are directional in storage; undirected semantics are expressed by
// creating two directed edges with equal weight.
type Edge struct {
	// From is the source node ID.
	From string `json:"from"`

	// To is the target node ID.
	To string `json:"to"`

	// Weight is the edge weight in [0, 1].
	Weight float64 `json:"weight"`
}

// NewEdge creates a new Edge between the given endpoints.
func NewEdge(from, to string, weight float64) *Edge {
	return &Edge{From: from, To: to, Weight: weight}
}

// EdgeID returns the storage key for a directed edge, "<from>-><to>".
func EdgeID(from, to string) string {
	return from + "->" + to
}

// ID returns the storage key for this edge.
func (e *Edge) ID() string {
	return EdgeID(e.From, e.To)
}

// Validate checks the edge's endpoints and weight.
// Returns ErrInvalidEdge if an endpoint is blank, the endpoints are equal,
// or the weight is outside [0, 1].
func (e *Edge) Validate() error {
	if e == nil || e.From == "" || e.To == "" {
		return fmt.Errorf("%w: both endpoints are required", ErrInvalidEdge)
	}
	if e.From == e.To {
		return fmt.Errorf("%w: self-edge %q", ErrInvalidEdge, e.From)
	}
	if e.Weight < 0 || e.Weight > 1 {
		return fmt.Errorf("%w: weight %f outside [0, 1]", ErrInvalidEdge, e.Weight)
	}
	return nil
}

// Clone creates a copy of the edge.
func (e *Edge) Clone() *Edge {
	clone := *e
	return &clone
}
