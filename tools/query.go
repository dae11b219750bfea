package tools

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"

	"github.com/graphmind-ai/sdk/graph"
	"github.com/graphmind-ai/sdk/retrieval"
	"github.com/graphmind-ai/sdk/schema"
	"github.com/graphmind-ai/sdk/tool"
	"github.com/graphmind-ai/sdk/toolerr"
)

// NewQueryGraph builds the query-graph tool. It runs a vector search for the
// query text and expands matches through the graph with hop-limited score
// decay. Collaborator failures degrade to an empty result set; only invalid
// inputs produce an error.
func NewQueryGraph(deps *Deps) (tool.Tool, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}
	if deps.Engine == nil {
		return nil, errors.New("tools: retrieval engine is required")
	}

	return tool.New(tool.NewConfig().
		SetName("query-graph").
		SetDescription("Retrieve documents by vector search plus multi-hop graph expansion").
		SetTags([]string{"graph", "read"}).
		SetInputSchema(schema.Object(map[string]schema.JSON{
			"query":                schema.StringWithDesc("Query text"),
			"namespace":            schema.String(),
			"initialDocumentCount": schema.Int(),
			"maxHopCount":          schema.Int(),
			"minSimilarity":        schema.Number(),
		}, "query")).
		SetOutputSchema(schema.Object(map[string]schema.JSON{
			"documents": schema.Array(schema.Object(map[string]schema.JSON{
				"content":     schema.String(),
				"metadata":    schema.Object(nil),
				"score":       schema.Number(),
				"hopDistance": schema.Int(),
			}, "content", "score", "hopDistance")),
			"count": schema.Int(),
		}, "documents", "count")).
		SetExecuteFunc(func(ctx context.Context, input map[string]any) (map[string]any, error) {
			text, _ := input["query"].(string)
			ns := stringArg(input, "namespace", graph.DefaultNamespace)

			q := retrieval.NewQuery(text).
				WithNamespace(ns).
				WithTopK(intArg(input, "initialDocumentCount", 3)).
				WithMaxHops(intArg(input, "maxHopCount", 2)).
				WithMinScore(floatArg(input, "minSimilarity", 0.6))

			ctx, end := deps.span(ctx, "tools.query_graph",
				attribute.String("namespace", ns),
				attribute.Int("top_k", q.TopK),
				attribute.Int("max_hops", q.MaxHops))
			defer end()

			deps.Metrics.QueryRun(ctx, ns)
			results, err := deps.Engine.Query(ctx, q)
			if err != nil {
				deps.Metrics.ToolError(ctx, "query-graph")
				if errors.Is(err, retrieval.ErrInvalidQuery) {
					return nil, toolerr.New("query-graph", "validate",
						toolerr.ErrCodeInvalidInput, err.Error()).WithCause(err)
				}
				return nil, toolerr.New("query-graph", "traverse",
					toolerr.ErrCodeInternal, err.Error()).WithCause(err)
			}

			documents := make([]any, len(results))
			for i, r := range results {
				meta := r.Metadata
				if meta == nil {
					meta = map[string]any{}
				}
				documents[i] = map[string]any{
					"id":          r.ID,
					"content":     r.Content,
					"metadata":    meta,
					"score":       r.Score,
					"hopDistance": r.HopDistance,
				}
			}

			deps.logger().InfoContext(ctx, "graph queried",
				"namespace", ns, "results", len(results))

			return map[string]any{
				"documents": documents,
				"count":     len(results),
			}, nil
		}))
}
