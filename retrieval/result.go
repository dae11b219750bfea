package retrieval

// Result is a single ranked retrieval result.
type Result struct {
	// ID is the node identifier.
	ID string `json:"id"`

	// Content is the node's document text.
	Content string `json:"content"`

	// Metadata is the node's metadata.
	Metadata map[string]any `json:"metadata,omitempty"`

	// Score is the relevance score. Initial candidates carry their vector
	// similarity; nodes discovered by traversal carry the parent's score
	// decayed by the connecting edge weight.
	Score float64 `json:"score"`

	// HopDistance is the number of edge traversals from the closest initial
	// candidate that reached this node. Initial candidates have distance 0.
	HopDistance int `json:"hop_distance"`
}
