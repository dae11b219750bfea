package graph

import (
	"fmt"
	"time"
)

// Node represents a document node in the knowledge graph. It carries the
// document content, arbitrary metadata, and its adjacency: Connections holds
// neighbor IDs in insertion order, and ConnectionWeights maps each neighbor
// ID to the edge weight in [0, 1].
//
// Invariant: every ID in Connections has an entry in ConnectionWeights and
// vice versa, and a node never references itself.
type Node struct {
	// ID is the unique node identifier within its namespace.
	ID string `json:"id"`

	// Content is the text content of the document.
	Content string `json:"content"`

	// Metadata contains arbitrary key-value metadata for the node.
	Metadata map[string]any `json:"metadata,omitempty"`

	// Connections lists neighbor node IDs in insertion order.
	Connections []string `json:"connections"`

	// ConnectionWeights maps neighbor IDs to edge weights in [0, 1].
	ConnectionWeights map[string]float64 `json:"connection_weights"`

	// CreatedAt is the timestamp when the node was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the timestamp when the node was last updated.
	UpdatedAt time.Time `json:"updated_at"`
}

// NewNode creates a new Node with the given ID and sensible defaults.
// The timestamps are set to the current time and the maps are initialized.
func NewNode(id string) *Node {
	now := time.Now()
	return &Node{
		ID:                id,
		Metadata:          make(map[string]any),
		Connections:       make([]string, 0),
		ConnectionWeights: make(map[string]float64),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// WithContent sets the content field and returns the node for method chaining.
func (n *Node) WithContent(content string) *Node {
	n.Content = content
	return n
}

// WithMetadata sets a single metadata entry and returns the node for chaining.
// If the Metadata map is nil, it will be initialized.
func (n *Node) WithMetadata(key string, value any) *Node {
	if n.Metadata == nil {
		n.Metadata = make(map[string]any)
	}
	n.Metadata[key] = value
	return n
}

// WithMetadataMap replaces the entire Metadata map and returns the node for chaining.
func (n *Node) WithMetadataMap(meta map[string]any) *Node {
	n.Metadata = meta
	return n
}

// Connect records an adjacency to the given neighbor with the given weight.
// If the neighbor is already connected only the weight is updated, preserving
// insertion order. Connecting a node to itself is a no-op.
func (n *Node) Connect(neighborID string, weight float64) {
	if neighborID == "" || neighborID == n.ID {
		return
	}
	if n.ConnectionWeights == nil {
		n.ConnectionWeights = make(map[string]float64)
	}
	if _, ok := n.ConnectionWeights[neighborID]; !ok {
		n.Connections = append(n.Connections, neighborID)
	}
	n.ConnectionWeights[neighborID] = weight
	n.UpdatedAt = time.Now()
}

// Disconnect removes the adjacency to the given neighbor, if present.
func (n *Node) Disconnect(neighborID string) {
	if _, ok := n.ConnectionWeights[neighborID]; !ok {
		return
	}
	delete(n.ConnectionWeights, neighborID)
	for i, id := range n.Connections {
		if id == neighborID {
			n.Connections = append(n.Connections[:i], n.Connections[i+1:]...)
			break
		}
	}
	n.UpdatedAt = time.Now()
}

// Connected reports whether the node has an adjacency to the given neighbor,
// along with the recorded weight.
func (n *Node) Connected(neighborID string) (float64, bool) {
	w, ok := n.ConnectionWeights[neighborID]
	return w, ok
}

// Validate checks the node's required fields and adjacency invariant.
// Returns ErrInvalidNode if the ID is empty, the node references itself,
// or Connections and ConnectionWeights disagree.
func (n *Node) Validate() error {
	if n == nil || n.ID == "" {
		return fmt.Errorf("%w: node ID is required", ErrInvalidNode)
	}
	if len(n.Connections) != len(n.ConnectionWeights) {
		return fmt.Errorf("%w: connections and weights out of sync for node %q", ErrInvalidNode, n.ID)
	}
	for _, id := range n.Connections {
		if id == n.ID {
			return fmt.Errorf("%w: node %q references itself", ErrInvalidNode, n.ID)
		}
		if _, ok := n.ConnectionWeights[id]; !ok {
			return fmt.Errorf("%w: connection %q of node %q has no weight", ErrInvalidNode, id, n.ID)
		}
	}
	return nil
}

// Clone creates a deep copy of the node.
func (n *Node) Clone() *Node {
	clone := &Node{
		ID:                n.ID,
		Content:           n.Content,
		Connections:       append([]string(nil), n.Connections...),
		ConnectionWeights: make(map[string]float64, len(n.ConnectionWeights)),
		CreatedAt:         n.CreatedAt,
		UpdatedAt:         n.UpdatedAt,
	}
	for k, v := range n.ConnectionWeights {
		clone.ConnectionWeights[k] = v
	}
	if n.Metadata != nil {
		clone.Metadata = make(map[string]any, len(n.Metadata))
		for k, v := range n.Metadata {
			clone.Metadata[k] = v
		}
	}
	return clone
}
