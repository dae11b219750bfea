package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphmind-ai/sdk/graph"
	"github.com/graphmind-ai/sdk/retrieval"
	"github.com/graphmind-ai/sdk/toolerr"
	"github.com/graphmind-ai/sdk/vectorstore"
)

// fakeEmbedder returns a fixed vector per known text.
type fakeEmbedder struct {
	vectors map[string][]float64
	err     error
}

func (f *fakeEmbedder) EmbedDocuments(_ context.Context, texts []string) ([][]float64, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float64, len(texts))
	for i, text := range texts {
		v, ok := f.vectors[text]
		if !ok {
			return nil, fmt.Errorf("no vector for %q", text)
		}
		out[i] = v
	}
	return out, nil
}

func (f *fakeEmbedder) EmbedQuery(ctx context.Context, text string) ([]float64, error) {
	vs, err := f.EmbedDocuments(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vs[0], nil
}

// mammalEmbedder gives cats/dogs a similarity of 0.96 and stocks a
// similarity of 0 to both.
func mammalEmbedder() *fakeEmbedder {
	return &fakeEmbedder{vectors: map[string][]float64{
		"cats are mammals":     {1, 0.75, 0},
		"dogs are mammals":     {0.75, 1, 0},
		"stock market rallied": {0, 0, 1},
	}}
}

func newDeps(t *testing.T) *Deps {
	t.Helper()

	store := graph.NewStore(nil)
	vectors := vectorstore.NewMemoryStore()
	embedder := mammalEmbedder()
	return &Deps{
		Store:    store,
		Vectors:  vectors,
		Embedder: embedder,
		Engine:   retrieval.NewEngine(store, vectors, embedder, nil, nil),
	}
}

func mammalInput() map[string]any {
	return map[string]any{
		"documents": []any{
			map[string]any{"content": "cats are mammals", "metadata": map[string]any{"id": "cats"}},
			map[string]any{"content": "dogs are mammals", "metadata": map[string]any{"id": "dogs"}},
			map[string]any{"content": "stock market rallied", "metadata": map[string]any{"id": "stocks"}},
		},
		"namespace": "ns",
	}
}

func createMammalGraph(t *testing.T, deps *Deps) {
	t.Helper()

	create, err := NewCreateGraph(deps)
	require.NoError(t, err)

	out, err := create.Execute(context.Background(), mammalInput())
	require.NoError(t, err)
	require.Equal(t, true, out["success"], "message: %v", out["message"])
}

func TestAll(t *testing.T) {
	all, err := All(newDeps(t))
	require.NoError(t, err)
	require.Len(t, all, 7)

	names := make(map[string]bool)
	for _, tl := range all {
		names[tl.Name()] = true
	}
	for _, want := range []string{
		"create-graph", "query-graph", "visualize-graph", "inspect-graph",
		"edit-graph", "prune-graph", "export-import-graph",
	} {
		assert.True(t, names[want], "missing tool %s", want)
	}
}

func TestCreateGraph_MammalScenario(t *testing.T) {
	deps := newDeps(t)
	create, err := NewCreateGraph(deps)
	require.NoError(t, err)

	out, err := create.Execute(context.Background(), mammalInput())
	require.NoError(t, err)

	assert.Equal(t, true, out["success"])
	assert.Equal(t, "ns", out["graphId"])
	assert.Equal(t, 3, out["nodeCount"])
	// cats<->dogs is the only link, stored as two directed edges.
	assert.Equal(t, 2, out["edgeCount"])

	stocks, err := deps.Store.GetNode("ns", "stocks")
	require.NoError(t, err)
	assert.Empty(t, stocks.Connections)

	cats, err := deps.Store.GetNode("ns", "cats")
	require.NoError(t, err)
	assert.Equal(t, []string{"dogs"}, cats.Connections)
	assert.InDelta(t, 0.96, cats.ConnectionWeights["dogs"], 1e-9)
}

func TestCreateGraph_InvalidDocument(t *testing.T) {
	create, err := NewCreateGraph(newDeps(t))
	require.NoError(t, err)

	out, err := create.Execute(context.Background(), map[string]any{
		"documents": []any{
			map[string]any{"content": "", "metadata": map[string]any{}},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, false, out["success"])
	assert.NotEmpty(t, out["message"])
}

func TestCreateGraph_EmbedderFailure(t *testing.T) {
	deps := newDeps(t)
	deps.Embedder = &fakeEmbedder{err: errors.New("provider down")}

	create, err := NewCreateGraph(deps)
	require.NoError(t, err)

	out, err := create.Execute(context.Background(), mammalInput())
	require.NoError(t, err)
	assert.Equal(t, false, out["success"])
	assert.Contains(t, out["message"], "provider down")
}

func TestQueryGraph(t *testing.T) {
	deps := newDeps(t)
	createMammalGraph(t, deps)

	query, err := NewQueryGraph(deps)
	require.NoError(t, err)

	out, err := query.Execute(context.Background(), map[string]any{
		"query":     "cats are mammals",
		"namespace": "ns",
	})
	require.NoError(t, err)

	// cats matches exactly and dogs at 0.96; stocks is orthogonal and
	// falls below the default minimum similarity.
	assert.Equal(t, 2, out["count"])
	docs := out["documents"].([]any)
	first := docs[0].(map[string]any)
	assert.Equal(t, "cats", first["id"])
	assert.InDelta(t, 1.0, first["score"].(float64), 1e-9)
	assert.Equal(t, 0, first["hopDistance"])
}

func TestQueryGraph_EmptyNamespace(t *testing.T) {
	query, err := NewQueryGraph(newDeps(t))
	require.NoError(t, err)

	out, err := query.Execute(context.Background(), map[string]any{
		"query":     "cats are mammals",
		"namespace": "nothing-here",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, out["count"])
}

func TestQueryGraph_InvalidQuery(t *testing.T) {
	query, err := NewQueryGraph(newDeps(t))
	require.NoError(t, err)

	_, err = query.Execute(context.Background(), map[string]any{
		"query": "", "maxHopCount": -1,
	})

	var terr *toolerr.Error
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, toolerr.ErrCodeInvalidInput, terr.Code)
}

func TestVisualizeGraph_JSON(t *testing.T) {
	deps := newDeps(t)
	createMammalGraph(t, deps)

	visualize, err := NewVisualizeGraph(deps)
	require.NoError(t, err)

	out, err := visualize.Execute(context.Background(), map[string]any{
		"namespace": "ns", "format": "json",
	})
	require.NoError(t, err)

	assert.Equal(t, true, out["success"])
	assert.Len(t, out["nodes"], 3)
	assert.Len(t, out["edges"], 2)
}

func TestVisualizeGraph_DOT(t *testing.T) {
	deps := newDeps(t)
	createMammalGraph(t, deps)

	visualize, err := NewVisualizeGraph(deps)
	require.NoError(t, err)

	out, err := visualize.Execute(context.Background(), map[string]any{
		"namespace": "ns", "format": "dot",
	})
	require.NoError(t, err)

	assert.Equal(t, true, out["success"])
	assert.True(t, strings.HasPrefix(out["data"].(string), "digraph G {"))
}

func TestVisualizeGraph_UnknownNamespaceIsEmpty(t *testing.T) {
	visualize, err := NewVisualizeGraph(newDeps(t))
	require.NoError(t, err)

	out, err := visualize.Execute(context.Background(), map[string]any{
		"namespace": "nothing-here", "format": "json",
	})
	require.NoError(t, err)
	assert.Equal(t, true, out["success"])
	assert.Empty(t, out["nodes"])
}

func TestInspectGraph(t *testing.T) {
	deps := newDeps(t)
	createMammalGraph(t, deps)

	inspect, err := NewInspectGraph(deps)
	require.NoError(t, err)

	out, err := inspect.Execute(context.Background(), map[string]any{
		"nodeIds":   []any{"cats", "ghost"},
		"namespace": "ns",
	})
	require.NoError(t, err)

	nodes := out["nodes"].([]any)
	require.Len(t, nodes, 1)
	assert.Equal(t, "cats", nodes[0].(map[string]any)["id"])
	assert.Equal(t, []string{"ghost"}, out["missing"])
}

func TestEditGraph_AddRemoveNode(t *testing.T) {
	deps := newDeps(t)
	edit, err := NewEditGraph(deps)
	require.NoError(t, err)

	out, err := edit.Execute(context.Background(), map[string]any{
		"action":    "addNode",
		"node":      map[string]any{"id": "n1", "content": "hello"},
		"namespace": "ns",
	})
	require.NoError(t, err)
	assert.Equal(t, true, out["success"])

	// Duplicate add is rejected as a structured failure.
	out, err = edit.Execute(context.Background(), map[string]any{
		"action":    "addNode",
		"node":      map[string]any{"id": "n1"},
		"namespace": "ns",
	})
	require.NoError(t, err)
	assert.Equal(t, false, out["success"])

	out, err = edit.Execute(context.Background(), map[string]any{
		"action":    "removeNode",
		"node":      map[string]any{"id": "n1"},
		"namespace": "ns",
	})
	require.NoError(t, err)
	assert.Equal(t, true, out["success"])

	nodes, edges := deps.Store.Counts("ns")
	assert.Zero(t, nodes)
	assert.Zero(t, edges)
}

func TestEditGraph_Edges(t *testing.T) {
	deps := newDeps(t)
	createMammalGraph(t, deps)
	edit, err := NewEditGraph(deps)
	require.NoError(t, err)

	out, err := edit.Execute(context.Background(), map[string]any{
		"action":    "addEdge",
		"edge":      map[string]any{"from": "cats", "to": "stocks", "weight": 0.3},
		"namespace": "ns",
	})
	require.NoError(t, err)
	assert.Equal(t, true, out["success"])

	out, err = edit.Execute(context.Background(), map[string]any{
		"action":    "updateWeight",
		"edge":      map[string]any{"from": "cats", "to": "stocks"},
		"weight":    0.9,
		"namespace": "ns",
	})
	require.NoError(t, err)
	assert.Equal(t, true, out["success"])

	cats, err := deps.Store.GetNode("ns", "cats")
	require.NoError(t, err)
	assert.InDelta(t, 0.9, cats.ConnectionWeights["stocks"], 1e-9)

	out, err = edit.Execute(context.Background(), map[string]any{
		"action":    "removeEdge",
		"edge":      map[string]any{"from": "cats", "to": "stocks"},
		"namespace": "ns",
	})
	require.NoError(t, err)
	assert.Equal(t, true, out["success"])
}

func TestEditGraph_ValidationFailures(t *testing.T) {
	edit, err := NewEditGraph(newDeps(t))
	require.NoError(t, err)

	// Missing node object.
	out, err := edit.Execute(context.Background(), map[string]any{"action": "addNode"})
	require.NoError(t, err)
	assert.Equal(t, false, out["success"])

	// Missing edge endpoints.
	out, err = edit.Execute(context.Background(), map[string]any{
		"action": "addEdge",
		"edge":   map[string]any{"from": "a"},
	})
	require.NoError(t, err)
	assert.Equal(t, false, out["success"])

	// updateWeight without a weight.
	out, err = edit.Execute(context.Background(), map[string]any{
		"action": "updateWeight",
		"edge":   map[string]any{"from": "a", "to": "b"},
	})
	require.NoError(t, err)
	assert.Equal(t, false, out["success"])
	assert.Contains(t, out["message"], "weight")
}

func TestPruneGraph_Orphans(t *testing.T) {
	deps := newDeps(t)
	createMammalGraph(t, deps)

	prune, err := NewPruneGraph(deps)
	require.NoError(t, err)

	out, err := prune.Execute(context.Background(), map[string]any{
		"mode":      "pruneOrphans",
		"namespace": "ns",
	})
	require.NoError(t, err)

	// Only the stocks node has no connections.
	assert.Equal(t, true, out["success"])
	assert.Equal(t, 1, out["pruned"])

	nodes, _ := deps.Store.Counts("ns")
	assert.Equal(t, 2, nodes)
}

func TestPruneGraph_LowScoreEdges(t *testing.T) {
	deps := newDeps(t)
	createMammalGraph(t, deps)
	require.NoError(t, deps.Store.AddEdge("ns", "cats", "stocks", 0.1))

	prune, err := NewPruneGraph(deps)
	require.NoError(t, err)

	out, err := prune.Execute(context.Background(), map[string]any{
		"mode":      "removeLowScoreEdges",
		"threshold": 0.5,
		"namespace": "ns",
	})
	require.NoError(t, err)
	assert.Equal(t, true, out["success"])
	assert.Equal(t, 1, out["pruned"])

	cats, err := deps.Store.GetNode("ns", "cats")
	require.NoError(t, err)
	assert.NotContains(t, cats.Connections, "stocks")
}

func TestExportImportGraph_JSONRoundTrip(t *testing.T) {
	deps := newDeps(t)
	createMammalGraph(t, deps)

	tl, err := NewExportImportGraph(deps)
	require.NoError(t, err)

	out, err := tl.Execute(context.Background(), map[string]any{
		"direction": "export",
		"format":    "json",
		"namespace": "ns",
	})
	require.NoError(t, err)
	require.Equal(t, true, out["success"])
	payload := out["data"].(string)

	out, err = tl.Execute(context.Background(), map[string]any{
		"direction": "import",
		"format":    "json",
		"data":      payload,
		"namespace": "restored",
	})
	require.NoError(t, err)
	assert.Equal(t, true, out["success"])
	assert.Equal(t, 3, out["nodeCount"])
	assert.Equal(t, 2, out["edgeCount"])

	nodes, edges := deps.Store.Counts("restored")
	assert.Equal(t, 3, nodes)
	assert.Equal(t, 2, edges)
}

func TestExportImportGraph_ImportFailures(t *testing.T) {
	tl, err := NewExportImportGraph(newDeps(t))
	require.NoError(t, err)

	out, err := tl.Execute(context.Background(), map[string]any{
		"direction": "import",
		"format":    "json",
	})
	require.NoError(t, err)
	assert.Equal(t, false, out["success"])

	out, err = tl.Execute(context.Background(), map[string]any{
		"direction": "import",
		"format":    "json",
		"data":      "{not json",
	})
	require.NoError(t, err)
	assert.Equal(t, false, out["success"])
	assert.NotEmpty(t, out["message"])
}

func TestSchemaRejectsBadInput(t *testing.T) {
	create, err := NewCreateGraph(newDeps(t))
	require.NoError(t, err)

	_, err = create.Execute(context.Background(), map[string]any{})

	var terr *toolerr.Error
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, toolerr.ErrCodeInvalidInput, terr.Code)
}
