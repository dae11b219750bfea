package graph

import "fmt"

// Graph holds the nodes and edges of a single namespace.
//
// Invariant: every edge endpoint references an existing node.
type Graph struct {
	// Nodes maps node ID to node.
	Nodes map[string]*Node `json:"nodes"`

	// Edges maps edge ID ("<from>-><to>") to edge.
	Edges map[string]*Edge `json:"edges"`
}

// New creates an empty Graph with initialized maps.
func New() *Graph {
	return &Graph{
		Nodes: make(map[string]*Node),
		Edges: make(map[string]*Edge),
	}
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int {
	return len(g.Nodes)
}

// EdgeCount returns the number of directed edges in the graph.
func (g *Graph) EdgeCount() int {
	return len(g.Edges)
}

// Clone creates a deep copy of the graph.
func (g *Graph) Clone() *Graph {
	clone := &Graph{
		Nodes: make(map[string]*Node, len(g.Nodes)),
		Edges: make(map[string]*Edge, len(g.Edges)),
	}
	for id, n := range g.Nodes {
		clone.Nodes[id] = n.Clone()
	}
	for id, e := range g.Edges {
		clone.Edges[id] = e.Clone()
	}
	return clone
}

// Validate checks the structural invariants of the graph: every node passes
// its own validation and every edge endpoint references an existing node.
func (g *Graph) Validate() error {
	if g == nil {
		return fmt.Errorf("%w: graph is nil", ErrInvalidNode)
	}
	for id, n := range g.Nodes {
		if n == nil {
			return fmt.Errorf("%w: nil node under key %q", ErrInvalidNode, id)
		}
		if n.ID != id {
			return fmt.Errorf("%w: node keyed %q has ID %q", ErrInvalidNode, id, n.ID)
		}
		if err := n.Validate(); err != nil {
			return err
		}
	}
	for id, e := range g.Edges {
		if e == nil {
			return fmt.Errorf("%w: nil edge under key %q", ErrInvalidEdge, id)
		}
		if err := e.Validate(); err != nil {
			return err
		}
		if e.ID() != id {
			return fmt.Errorf("%w: edge keyed %q has ID %q", ErrInvalidEdge, id, e.ID())
		}
		if _, ok := g.Nodes[e.From]; !ok {
			return fmt.Errorf("%w: edge %q references missing node %q", ErrInvalidEdge, id, e.From)
		}
		if _, ok := g.Nodes[e.To]; !ok {
			return fmt.Errorf("%w: edge %q references missing node %q", ErrInvalidEdge, id, e.To)
		}
	}
	return nil
}
