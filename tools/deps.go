package tools

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/graphmind-ai/sdk/embedding"
	"github.com/graphmind-ai/sdk/graph"
	"github.com/graphmind-ai/sdk/retrieval"
	"github.com/graphmind-ai/sdk/telemetry"
	"github.com/graphmind-ai/sdk/tool"
	"github.com/graphmind-ai/sdk/vectorstore"
)

// Deps holds the collaborators shared by all graph tools. Store and Vectors
// are required; Engine is required for the query tool. Logger, Tracer, and
// Metrics are optional observability hooks.
type Deps struct {
	Store    *graph.Store
	Vectors  vectorstore.Store
	Embedder embedding.Embedder
	Engine   *retrieval.Engine
	Logger   *slog.Logger
	Tracer   trace.Tracer
	Metrics  *telemetry.Metrics
}

func (d *Deps) validate() error {
	if d == nil {
		return errors.New("tools: deps cannot be nil")
	}
	if d.Store == nil {
		return errors.New("tools: graph store is required")
	}
	if d.Vectors == nil {
		return errors.New("tools: vector store is required")
	}
	if d.Embedder == nil {
		return errors.New("tools: embedder is required")
	}
	return nil
}

func (d *Deps) logger() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// span starts a tool span when a tracer is configured. The returned end
// function is always safe to call. Tracing is best-effort and never blocks
// the operation.
func (d *Deps) span(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, func()) {
	if d.Tracer == nil {
		return ctx, func() {}
	}
	ctx, sp := d.Tracer.Start(ctx, name, trace.WithAttributes(attrs...))
	return ctx, func() { sp.End() }
}

// All builds every graph tool against the given dependencies.
func All(deps *Deps) ([]tool.Tool, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}

	builders := []func(*Deps) (tool.Tool, error){
		NewCreateGraph,
		NewQueryGraph,
		NewVisualizeGraph,
		NewInspectGraph,
		NewEditGraph,
		NewPruneGraph,
		NewExportImportGraph,
	}

	out := make([]tool.Tool, 0, len(builders))
	for _, build := range builders {
		t, err := build(deps)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// failure builds the structured {success:false, message} result that mutation
// tools return instead of propagating validation errors.
func failure(message string) map[string]any {
	return map[string]any{
		"success": false,
		"message": message,
	}
}

// Input coercion helpers. Tool inputs arrive as decoded JSON, so numbers may
// be float64 even when the schema says integer.

func stringArg(input map[string]any, key, fallback string) string {
	if v, ok := input[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

func floatArg(input map[string]any, key string, fallback float64) float64 {
	switch v := input[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return fallback
	}
}

func intArg(input map[string]any, key string, fallback int) int {
	switch v := input[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return fallback
	}
}

func mapArg(input map[string]any, key string) map[string]any {
	if v, ok := input[key].(map[string]any); ok {
		return v
	}
	return nil
}

// nodeToMap flattens a node for tool output.
func nodeToMap(n *graph.Node) map[string]any {
	weights := make(map[string]any, len(n.ConnectionWeights))
	for id, w := range n.ConnectionWeights {
		weights[id] = w
	}
	meta := n.Metadata
	if meta == nil {
		meta = map[string]any{}
	}
	return map[string]any{
		"id":                n.ID,
		"content":           n.Content,
		"metadata":          meta,
		"connections":       append([]string{}, n.Connections...),
		"connectionWeights": weights,
	}
}
