// Package embedding defines the embedding collaborator interface and the
// OpenAI-backed implementation used to turn document text into vectors.
//
// The embedder is an injected dependency everywhere it is consumed: the
// relationship builder and the retrieval engine both accept an Embedder so
// tests can substitute a deterministic fake.
package embedding

import (
	"context"
	"errors"
)

// ErrUpstream is returned when the embedding provider fails.
// The provider's error is wrapped; use errors.Is() to test for it.
var ErrUpstream = errors.New("embedding: upstream failure")

// Embedder produces embedding vectors for text.
//
// Implementations may batch EmbedDocuments calls internally. All vectors
// returned by one embedder must share the same dimensionality.
type Embedder interface {
	// EmbedDocuments returns one embedding vector per input text, in order.
	EmbedDocuments(ctx context.Context, texts []string) ([][]float64, error)

	// EmbedQuery returns the embedding vector for a single query string.
	EmbedQuery(ctx context.Context, text string) ([]float64, error)
}
