package tools

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/graphmind-ai/sdk/graph"
	"github.com/graphmind-ai/sdk/schema"
	"github.com/graphmind-ai/sdk/tool"
)

// NewInspectGraph builds the inspect-graph tool. It looks up nodes by ID and
// returns their content, metadata, and adjacency. Unknown IDs are reported
// in the missing list rather than failing the call.
func NewInspectGraph(deps *Deps) (tool.Tool, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}

	return tool.New(tool.NewConfig().
		SetName("inspect-graph").
		SetDescription("Look up graph nodes by ID").
		SetTags([]string{"graph", "read"}).
		SetInputSchema(schema.Object(map[string]schema.JSON{
			"nodeIds":   schema.Array(schema.String()),
			"namespace": schema.String(),
		}, "nodeIds")).
		SetOutputSchema(schema.Object(map[string]schema.JSON{
			"nodes":   schema.Array(schema.Object(nil)),
			"missing": schema.Array(schema.String()),
		}, "nodes")).
		SetExecuteFunc(func(ctx context.Context, input map[string]any) (map[string]any, error) {
			ns := stringArg(input, "namespace", graph.DefaultNamespace)
			ids := stringSliceArg(input, "nodeIds")

			ctx, end := deps.span(ctx, "tools.inspect_graph",
				attribute.String("namespace", ns),
				attribute.Int("node_ids", len(ids)))
			defer end()

			found := deps.Store.GetNodes(ns, ids)
			byID := make(map[string]*graph.Node, len(found))
			for _, n := range found {
				byID[n.ID] = n
			}

			nodes := make([]any, 0, len(found))
			missing := make([]string, 0)
			for _, id := range ids {
				if n, ok := byID[id]; ok {
					nodes = append(nodes, nodeToMap(n))
				} else {
					missing = append(missing, id)
				}
			}

			deps.logger().InfoContext(ctx, "graph inspected",
				"namespace", ns, "found", len(nodes), "missing", len(missing))

			return map[string]any{
				"nodes":   nodes,
				"missing": missing,
			}, nil
		}))
}

func stringSliceArg(input map[string]any, key string) []string {
	switch v := input[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
