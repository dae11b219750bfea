package relate

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphmind-ai/sdk/graph"
)

// fakeEmbedder returns canned vectors keyed by text.
type fakeEmbedder struct {
	vectors map[string][]float64
	err     error
}

func (f *fakeEmbedder) EmbedDocuments(_ context.Context, texts []string) ([][]float64, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float64, len(texts))
	for i, t := range texts {
		out[i] = f.vectors[t]
	}
	return out, nil
}

func (f *fakeEmbedder) EmbedQuery(_ context.Context, text string) ([]float64, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.vectors[text], nil
}

// mammalEmbedder reproduces the cats/dogs/stocks scenario:
// similarity(cats, dogs) = 0.8, everything else below 0.7.
func mammalEmbedder() *fakeEmbedder {
	return &fakeEmbedder{vectors: map[string][]float64{
		"cats are mammals":     {1, 0.75, 0},
		"dogs are mammals":     {0.75, 1, 0},
		"stock market rallied": {0, 0, 1},
	}}
}

func TestBuilder_Build_MammalScenario(t *testing.T) {
	b := NewBuilder(mammalEmbedder(), 0.7)

	docs := []Document{
		{Content: "cats are mammals", Metadata: map[string]any{"id": "cats"}},
		{Content: "dogs are mammals", Metadata: map[string]any{"id": "dogs"}},
		{Content: "stock market rallied", Metadata: map[string]any{"id": "stocks"}},
	}

	enriched, err := b.Build(context.Background(), docs)
	require.NoError(t, err)
	require.Len(t, enriched, 3)

	cats, dogs, stocks := enriched[0], enriched[1], enriched[2]
	assert.Equal(t, []string{"dogs"}, cats.Connections)
	assert.Equal(t, []string{"cats"}, dogs.Connections)
	assert.Empty(t, stocks.Connections)

	// Edge weight equals the computed similarity exactly, symmetrically.
	assert.InDelta(t, 0.96, cats.ConnectionWeights["dogs"], 0.03)
	assert.Equal(t, cats.ConnectionWeights["dogs"], dogs.ConnectionWeights["cats"])
}

func TestBuilder_Build_ThresholdBoundary(t *testing.T) {
	// Identical vectors give similarity exactly 1.0, which meets any threshold.
	emb := &fakeEmbedder{vectors: map[string][]float64{
		"a": {1, 0},
		"b": {1, 0},
	}}
	b := NewBuilder(emb, 1.0)

	enriched, err := b.Build(context.Background(), []Document{
		{Content: "a", Metadata: map[string]any{}},
		{Content: "b", Metadata: map[string]any{}},
	})
	require.NoError(t, err)
	assert.Len(t, enriched[0].Connections, 1)
	assert.InDelta(t, 1.0, enriched[0].ConnectionWeights[enriched[1].ID], 1e-9)
}

func TestBuilder_Build_GeneratesStableIDs(t *testing.T) {
	emb := &fakeEmbedder{vectors: map[string][]float64{"solo": {1}}}
	b := NewBuilder(emb, 0.7)

	enriched, err := b.Build(context.Background(), []Document{
		{Content: "solo", Metadata: map[string]any{}},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, enriched[0].ID)
	assert.Equal(t, enriched[0].ID, enriched[0].Metadata["id"])
}

func TestBuilder_Build_InvalidDocument(t *testing.T) {
	b := NewBuilder(mammalEmbedder(), 0.7)

	_, err := b.Build(context.Background(), []Document{
		{Content: "ok", Metadata: map[string]any{}},
		{Content: "", Metadata: map[string]any{}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidDocument)
	assert.Contains(t, err.Error(), "document 1")

	_, err = b.Build(context.Background(), []Document{
		{Content: "ok", Metadata: nil},
	})
	assert.ErrorIs(t, err, ErrInvalidDocument)
}

func TestBuilder_Build_EmbedderFailure(t *testing.T) {
	boom := errors.New("boom")
	b := NewBuilder(&fakeEmbedder{err: boom}, 0.7)

	_, err := b.Build(context.Background(), []Document{
		{Content: "x", Metadata: map[string]any{}},
	})
	assert.ErrorIs(t, err, boom)
}

func TestBuilder_Build_Empty(t *testing.T) {
	b := NewBuilder(mammalEmbedder(), 0.7)
	enriched, err := b.Build(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, enriched)
}

func TestBuilder_DefaultThreshold(t *testing.T) {
	b := NewBuilder(mammalEmbedder(), 0)
	assert.Equal(t, DefaultThreshold, b.Threshold())
}

func TestPersist(t *testing.T) {
	b := NewBuilder(mammalEmbedder(), 0.7)
	docs := []Document{
		{Content: "cats are mammals", Metadata: map[string]any{"id": "cats"}},
		{Content: "dogs are mammals", Metadata: map[string]any{"id": "dogs"}},
		{Content: "stock market rallied", Metadata: map[string]any{"id": "stocks"}},
	}
	enriched, err := b.Build(context.Background(), docs)
	require.NoError(t, err)

	store := graph.NewStore(nil)
	require.NoError(t, Persist(store, "ns", enriched))

	nodes, edges := store.Counts("ns")
	assert.Equal(t, 3, nodes)
	assert.Equal(t, 2, edges) // one connection stored as two directed edges

	g, err := store.Snapshot("ns")
	require.NoError(t, err)
	require.NoError(t, g.Validate())
	assert.Contains(t, g.Edges, graph.EdgeID("cats", "dogs"))
	assert.Contains(t, g.Edges, graph.EdgeID("dogs", "cats"))

	stocks, err := store.GetNode("ns", "stocks")
	require.NoError(t, err)
	assert.Empty(t, stocks.Connections)
}
