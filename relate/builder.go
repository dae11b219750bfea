// Package relate implements the relationship builder: given a batch of
// documents and a similarity threshold, it embeds each document, computes
// all pairwise cosine similarities, and materializes bidirectional
// connections between documents whose similarity meets the threshold.
//
// Build is pure with respect to the graph store: it returns enriched
// documents carrying their own adjacency. Persist writes them to a store as
// a separate, explicit step.
package relate

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/graphmind-ai/sdk/embedding"
	"github.com/graphmind-ai/sdk/graph"
	"github.com/graphmind-ai/sdk/similarity"
)

// DefaultThreshold is the minimum cosine similarity required to materialize
// a connection when no threshold is configured.
const DefaultThreshold = 0.7

// ErrInvalidDocument is returned when an input document is malformed.
// The wrapped message identifies the offending index.
var ErrInvalidDocument = errors.New("relate: invalid document")

// Document is a raw input document to the relationship builder.
type Document struct {
	// Content is the document text. Required.
	Content string `json:"content"`

	// Metadata carries arbitrary document metadata. A metadata "id" entry,
	// when present, becomes the node ID.
	Metadata map[string]any `json:"metadata"`
}

// EnrichedDocument is a document after embedding and pairwise linking.
// It carries its own adjacency and does not reference any shared state.
type EnrichedDocument struct {
	// ID is the stable document identifier: the metadata "id" value when
	// present, otherwise a generated UUID.
	ID string `json:"id"`

	// Content is the original document text.
	Content string `json:"content"`

	// Metadata is the original document metadata plus the "id" entry.
	Metadata map[string]any `json:"metadata"`

	// Embedding is the document's embedding vector.
	Embedding []float64 `json:"embedding,omitempty"`

	// Connections lists linked document IDs in discovery order.
	Connections []string `json:"connections"`

	// ConnectionWeights maps linked document IDs to their similarity.
	ConnectionWeights map[string]float64 `json:"connection_weights"`
}

// Builder computes pairwise document relationships.
//
// Complexity is O(n^2) in the number of input documents; callers must bound
// batch size.
type Builder struct {
	embedder  embedding.Embedder
	threshold float64
}

// NewBuilder creates a Builder with the given embedder and similarity
// threshold. A threshold of 0 uses DefaultThreshold.
func NewBuilder(embedder embedding.Embedder, threshold float64) *Builder {
	if threshold == 0 {
		threshold = DefaultThreshold
	}
	return &Builder{embedder: embedder, threshold: threshold}
}

// Threshold returns the builder's similarity threshold.
func (b *Builder) Threshold() float64 {
	return b.threshold
}

// Build validates and embeds the documents, then links every unordered pair
// whose cosine similarity meets the threshold. The connection is recorded
// symmetrically on both documents with weight equal to the similarity.
//
// Returns ErrInvalidDocument (with the offending index) for a malformed
// document, and embedding.ErrUpstream when the embedder fails.
func (b *Builder) Build(ctx context.Context, docs []Document) ([]EnrichedDocument, error) {
	if len(docs) == 0 {
		return nil, nil
	}

	enriched := make([]EnrichedDocument, len(docs))
	texts := make([]string, len(docs))
	for i, doc := range docs {
		if doc.Content == "" {
			return nil, fmt.Errorf("%w: document %d has no content", ErrInvalidDocument, i)
		}
		if doc.Metadata == nil {
			return nil, fmt.Errorf("%w: document %d has no metadata", ErrInvalidDocument, i)
		}

		id := documentID(doc)
		meta := make(map[string]any, len(doc.Metadata)+1)
		for k, v := range doc.Metadata {
			meta[k] = v
		}
		meta["id"] = id

		enriched[i] = EnrichedDocument{
			ID:                id,
			Content:           doc.Content,
			Metadata:          meta,
			Connections:       make([]string, 0),
			ConnectionWeights: make(map[string]float64),
		}
		texts[i] = doc.Content
	}

	vectors, err := b.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		return nil, err
	}
	if len(vectors) != len(docs) {
		return nil, fmt.Errorf("%w: embedder returned %d vectors for %d documents",
			embedding.ErrUpstream, len(vectors), len(docs))
	}
	for i := range enriched {
		enriched[i].Embedding = vectors[i]
	}

	// Pairwise comparison over every unordered pair; the dominant cost.
	for i := 0; i < len(enriched); i++ {
		for j := i + 1; j < len(enriched); j++ {
			score, err := similarity.Cosine(enriched[i].Embedding, enriched[j].Embedding)
			if err != nil {
				return nil, err
			}
			if score >= b.threshold {
				enriched[i].connect(enriched[j].ID, score)
				enriched[j].connect(enriched[i].ID, score)
			}
		}
	}

	return enriched, nil
}

func (d *EnrichedDocument) connect(id string, weight float64) {
	if _, ok := d.ConnectionWeights[id]; !ok {
		d.Connections = append(d.Connections, id)
	}
	d.ConnectionWeights[id] = weight
}

// documentID returns the stable ID for a document: the metadata "id" entry
// when it is a non-empty string, otherwise a generated UUID.
func documentID(doc Document) string {
	if raw, ok := doc.Metadata["id"]; ok {
		if id, ok := raw.(string); ok && id != "" {
			return id
		}
	}
	return uuid.New().String()
}

// Persist writes enriched documents into the store as nodes plus the two
// directed edges for every connection. Duplicate edges from the symmetric
// adjacency are skipped silently; any other store error aborts the write.
func Persist(store *graph.Store, namespace string, docs []EnrichedDocument) error {
	for _, doc := range docs {
		n := graph.NewNode(doc.ID).
			WithContent(doc.Content).
			WithMetadataMap(doc.Metadata)
		for _, neighborID := range doc.Connections {
			n.Connect(neighborID, doc.ConnectionWeights[neighborID])
		}
		if err := store.AddNode(namespace, n); err != nil {
			return err
		}
	}

	for _, doc := range docs {
		for _, neighborID := range doc.Connections {
			err := store.AddEdge(namespace, doc.ID, neighborID, doc.ConnectionWeights[neighborID])
			if err != nil && !errors.Is(err, graph.ErrDuplicateEdge) {
				return err
			}
		}
	}
	return nil
}
