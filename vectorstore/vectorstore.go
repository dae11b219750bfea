// Package vectorstore defines the vector-similarity search collaborator used
// to seed graph retrieval, plus in-memory and Redis-backed implementations.
//
// All backing stores implement the single Store capability interface; callers
// never branch on which methods a backend happens to expose.
package vectorstore

import (
	"context"
	"errors"
)

// Common errors returned by vector store operations.
var (
	// ErrNotFound is returned when a requested item does not exist.
	ErrNotFound = errors.New("vectorstore: item not found")

	// ErrInvalidItem is returned when an item is missing its ID or vector.
	ErrInvalidItem = errors.New("vectorstore: invalid item")

	// ErrStorageFailed is returned when the backing store fails.
	ErrStorageFailed = errors.New("vectorstore: storage operation failed")
)

// Item is a document stored with its embedding vector.
type Item struct {
	// ID is the unique item identifier within its namespace.
	ID string `json:"id"`

	// Content is the document text.
	Content string `json:"content"`

	// Metadata carries arbitrary document metadata.
	Metadata map[string]any `json:"metadata,omitempty"`

	// Vector is the item's embedding.
	Vector []float64 `json:"vector"`
}

// Match is a search result with its similarity score.
type Match struct {
	// ID is the matched item's identifier.
	ID string `json:"id"`

	// Content is the matched item's text.
	Content string `json:"content"`

	// Metadata is the matched item's metadata.
	Metadata map[string]any `json:"metadata,omitempty"`

	// Score is the cosine similarity to the query vector.
	Score float64 `json:"score"`
}

// Store is the capability interface all vector store backends implement.
//
// Implementations must be safe for concurrent use.
type Store interface {
	// Upsert stores items in a namespace, replacing items with the same ID.
	Upsert(ctx context.Context, namespace string, items []Item) error

	// Search returns up to topK items whose cosine similarity to the query
	// vector is at least minScore, ordered by descending score. An unknown
	// namespace yields an empty result, not an error.
	Search(ctx context.Context, namespace string, vector []float64, topK int, minScore float64) ([]Match, error)

	// GetByID retrieves a single item. Returns ErrNotFound if absent.
	GetByID(ctx context.Context, namespace, id string) (*Item, error)

	// Delete removes a single item. Returns ErrNotFound if absent.
	Delete(ctx context.Context, namespace, id string) error
}
