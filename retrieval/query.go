package retrieval

import (
	"errors"
	"fmt"

	"github.com/graphmind-ai/sdk/graph"
)

// ErrInvalidQuery indicates that query validation failed.
// Always call Validate() before executing a query.
var ErrInvalidQuery = errors.New("retrieval: invalid query")

// Query describes a retrieval request with fluent builder methods.
//
// Default values:
//   - TopK: 3 (initial candidate count)
//   - MaxHops: 2
//   - MinScore: 0.6
//   - Namespace: "default"
//   - BestScoreWins: false (first visitation wins)
type Query struct {
	// Text is the natural language query to embed.
	Text string `json:"text"`

	// TopK is the number of initial candidates requested from vector search.
	TopK int `json:"top_k"`

	// MaxHops is the maximum graph traversal depth from any initial candidate.
	// Zero disables expansion entirely.
	MaxHops int `json:"max_hops"`

	// MinScore is the minimum vector similarity for initial candidates.
	MinScore float64 `json:"min_score"`

	// Namespace selects the graph to traverse.
	Namespace string `json:"namespace,omitempty"`

	// BestScoreWins re-scores a node when a later path reaches it with a
	// strictly higher score. When false, the score and hop distance of the
	// first visitation are kept regardless of later, better paths.
	BestScoreWins bool `json:"best_score_wins,omitempty"`
}

// NewQuery creates a Query with the given text and default parameters.
func NewQuery(text string) *Query {
	return &Query{
		Text:      text,
		TopK:      3,
		MaxHops:   2,
		MinScore:  0.6,
		Namespace: graph.DefaultNamespace,
	}
}

// WithTopK sets the initial candidate count and returns the query for chaining.
func (q *Query) WithTopK(k int) *Query {
	q.TopK = k
	return q
}

// WithMaxHops sets the maximum traversal depth and returns the query for chaining.
func (q *Query) WithMaxHops(hops int) *Query {
	q.MaxHops = hops
	return q
}

// WithMinScore sets the minimum similarity threshold and returns the query for chaining.
func (q *Query) WithMinScore(score float64) *Query {
	q.MinScore = score
	return q
}

// WithNamespace sets the namespace and returns the query for chaining.
func (q *Query) WithNamespace(ns string) *Query {
	q.Namespace = ns
	return q
}

// WithBestScoreWins toggles best-score re-visitation and returns the query
// for chaining.
func (q *Query) WithBestScoreWins(enabled bool) *Query {
	q.BestScoreWins = enabled
	return q
}

// Validate ensures the query is properly configured.
func (q *Query) Validate() error {
	if q.Text == "" {
		return fmt.Errorf("%w: query text is required", ErrInvalidQuery)
	}
	if q.TopK <= 0 {
		return fmt.Errorf("%w: TopK must be greater than 0, got %d", ErrInvalidQuery, q.TopK)
	}
	if q.MaxHops < 0 {
		return fmt.Errorf("%w: MaxHops must be non-negative, got %d", ErrInvalidQuery, q.MaxHops)
	}
	if q.MinScore < 0 || q.MinScore > 1 {
		return fmt.Errorf("%w: MinScore must be between 0.0 and 1.0, got %f", ErrInvalidQuery, q.MinScore)
	}
	return nil
}
