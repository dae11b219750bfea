package graph

import (
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
)

// DefaultNamespace is used when an operation does not specify a namespace.
const DefaultNamespace = "default"

// Store is the process-wide, namespace-partitioned graph store.
//
// Each namespace owns an independent Graph, created lazily on first write.
// Graphs live for the lifetime of the process; there is no persistence unless
// a namespace is explicitly exported.
//
// Thread-safety: all methods are safe for concurrent use. Each namespace is
// guarded by its own mutex so that multi-step mutations (such as the cascade
// performed by RemoveNode) are atomic relative to other writers on the same
// namespace.
type Store struct {
	mu     sync.RWMutex
	graphs map[string]*namespaceGraph
	logger *slog.Logger
}

type namespaceGraph struct {
	mu sync.Mutex
	g  *Graph
}

// NewStore creates an empty Store. A nil logger disables store logging.
func NewStore(logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Store{
		graphs: make(map[string]*namespaceGraph),
		logger: logger,
	}
}

func resolveNamespace(ns string) string {
	if ns == "" {
		return DefaultNamespace
	}
	return ns
}

// namespace returns the graph for ns, creating it when create is true.
// The caller must hold the returned namespaceGraph's mutex for mutation.
func (s *Store) namespace(ns string, create bool) (*namespaceGraph, bool) {
	ns = resolveNamespace(ns)

	s.mu.RLock()
	g, ok := s.graphs[ns]
	s.mu.RUnlock()
	if ok {
		return g, true
	}
	if !create {
		return nil, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if g, ok := s.graphs[ns]; ok {
		return g, true
	}
	g = &namespaceGraph{g: New()}
	s.graphs[ns] = g
	s.logger.Debug("namespace created", "namespace", ns)
	return g, true
}

// AddNode adds a node to the namespace, creating the namespace if needed.
// Returns ErrInvalidNode if the node is nil or has no ID, and
// ErrDuplicateNode if a node with the same ID already exists.
func (s *Store) AddNode(ns string, n *Node) error {
	if n == nil || n.ID == "" {
		return fmt.Errorf("%w: node ID is required", ErrInvalidNode)
	}
	if err := n.Validate(); err != nil {
		return err
	}

	nsg, _ := s.namespace(ns, true)
	nsg.mu.Lock()
	defer nsg.mu.Unlock()

	if _, exists := nsg.g.Nodes[n.ID]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateNode, n.ID)
	}
	nsg.g.Nodes[n.ID] = n.Clone()
	return nil
}

// RemoveNode removes a node, all incident edges, and scrubs the node's ID
// from every other node's adjacency. Returns ErrNotFound if the node does
// not exist.
func (s *Store) RemoveNode(ns, id string) error {
	nsg, ok := s.namespace(ns, false)
	if !ok {
		return fmt.Errorf("%w: %q", ErrNamespaceNotFound, resolveNamespace(ns))
	}
	nsg.mu.Lock()
	defer nsg.mu.Unlock()

	if _, exists := nsg.g.Nodes[id]; !exists {
		return fmt.Errorf("%w: node %q", ErrNotFound, id)
	}

	delete(nsg.g.Nodes, id)
	for edgeID, e := range nsg.g.Edges {
		if e.From == id || e.To == id {
			delete(nsg.g.Edges, edgeID)
		}
	}
	for _, other := range nsg.g.Nodes {
		other.Disconnect(id)
	}
	return nil
}

// AddEdge inserts a single directed edge and records it in the source node's
// adjacency. The caller decides whether to also add the reverse edge.
//
// Returns ErrInvalidEdge if an endpoint is blank or the weight is invalid,
// ErrNotFound if either endpoint node does not exist, and ErrDuplicateEdge
// if the directed edge already exists.
func (s *Store) AddEdge(ns, from, to string, weight float64) error {
	e := NewEdge(from, to, weight)
	if err := e.Validate(); err != nil {
		return err
	}

	nsg, _ := s.namespace(ns, true)
	nsg.mu.Lock()
	defer nsg.mu.Unlock()

	fromNode, ok := nsg.g.Nodes[from]
	if !ok {
		return fmt.Errorf("%w: node %q", ErrNotFound, from)
	}
	if _, ok := nsg.g.Nodes[to]; !ok {
		return fmt.Errorf("%w: node %q", ErrNotFound, to)
	}
	if _, exists := nsg.g.Edges[e.ID()]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateEdge, e.ID())
	}

	nsg.g.Edges[e.ID()] = e
	fromNode.Connect(to, weight)
	return nil
}

// RemoveEdge removes a directed edge and scrubs the target from the source
// node's adjacency. Returns ErrNotFound if the edge does not exist.
func (s *Store) RemoveEdge(ns, from, to string) error {
	nsg, ok := s.namespace(ns, false)
	if !ok {
		return fmt.Errorf("%w: %q", ErrNamespaceNotFound, resolveNamespace(ns))
	}
	nsg.mu.Lock()
	defer nsg.mu.Unlock()

	edgeID := EdgeID(from, to)
	if _, exists := nsg.g.Edges[edgeID]; !exists {
		return fmt.Errorf("%w: edge %q", ErrNotFound, edgeID)
	}
	delete(nsg.g.Edges, edgeID)
	if fromNode, ok := nsg.g.Nodes[from]; ok {
		fromNode.Disconnect(to)
	}
	return nil
}

// UpdateWeight changes the weight of an existing directed edge and keeps the
// source node's adjacency weight in sync. Returns ErrNotFound if the edge
// does not exist and ErrInvalidEdge if the weight is outside [0, 1].
func (s *Store) UpdateWeight(ns, from, to string, weight float64) error {
	if weight < 0 || weight > 1 {
		return fmt.Errorf("%w: weight %f outside [0, 1]", ErrInvalidEdge, weight)
	}

	nsg, ok := s.namespace(ns, false)
	if !ok {
		return fmt.Errorf("%w: %q", ErrNamespaceNotFound, resolveNamespace(ns))
	}
	nsg.mu.Lock()
	defer nsg.mu.Unlock()

	edgeID := EdgeID(from, to)
	e, exists := nsg.g.Edges[edgeID]
	if !exists {
		return fmt.Errorf("%w: edge %q", ErrNotFound, edgeID)
	}
	e.Weight = weight
	if fromNode, ok := nsg.g.Nodes[from]; ok {
		if _, connected := fromNode.Connected(to); connected {
			fromNode.Connect(to, weight)
		}
	}
	return nil
}

// GetNode returns a deep copy of the node with the given ID.
// Returns ErrNotFound if the node or namespace does not exist.
func (s *Store) GetNode(ns, id string) (*Node, error) {
	nsg, ok := s.namespace(ns, false)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNamespaceNotFound, resolveNamespace(ns))
	}
	nsg.mu.Lock()
	defer nsg.mu.Unlock()

	n, exists := nsg.g.Nodes[id]
	if !exists {
		return nil, fmt.Errorf("%w: node %q", ErrNotFound, id)
	}
	return n.Clone(), nil
}

// GetNodes returns deep copies of the nodes with the given IDs, skipping
// IDs that do not exist. A missing namespace yields an empty slice.
func (s *Store) GetNodes(ns string, ids []string) []*Node {
	nsg, ok := s.namespace(ns, false)
	if !ok {
		return nil
	}
	nsg.mu.Lock()
	defer nsg.mu.Unlock()

	nodes := make([]*Node, 0, len(ids))
	for _, id := range ids {
		if n, exists := nsg.g.Nodes[id]; exists {
			nodes = append(nodes, n.Clone())
		}
	}
	return nodes
}

// Snapshot returns a deep copy of the namespace's graph.
// Returns ErrNamespaceNotFound if the namespace has no graph.
func (s *Store) Snapshot(ns string) (*Graph, error) {
	nsg, ok := s.namespace(ns, false)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNamespaceNotFound, resolveNamespace(ns))
	}
	nsg.mu.Lock()
	defer nsg.mu.Unlock()
	return nsg.g.Clone(), nil
}

// Replace swaps the namespace's graph wholesale with the given graph.
// There are no merge semantics; the previous graph is discarded. The graph
// is validated before the swap.
func (s *Store) Replace(ns string, g *Graph) error {
	if g == nil {
		g = New()
	}
	if err := g.Validate(); err != nil {
		return err
	}

	nsg, _ := s.namespace(ns, true)
	nsg.mu.Lock()
	defer nsg.mu.Unlock()
	nsg.g = g.Clone()
	s.logger.Debug("namespace replaced",
		"namespace", resolveNamespace(ns),
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
	)
	return nil
}

// Counts returns the node and edge counts for a namespace.
// A missing namespace reports zero counts.
func (s *Store) Counts(ns string) (nodes, edges int) {
	nsg, ok := s.namespace(ns, false)
	if !ok {
		return 0, 0
	}
	nsg.mu.Lock()
	defer nsg.mu.Unlock()
	return nsg.g.NodeCount(), nsg.g.EdgeCount()
}

// HasNamespace reports whether the namespace has been created.
func (s *Store) HasNamespace(ns string) bool {
	_, ok := s.namespace(ns, false)
	return ok
}

// Namespaces returns the sorted list of namespaces with a graph.
func (s *Store) Namespaces() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.graphs))
	for ns := range s.graphs {
		names = append(names, ns)
	}
	sort.Strings(names)
	return names
}
