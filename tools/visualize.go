package tools

import (
	"context"
	"sort"

	"go.opentelemetry.io/otel/attribute"

	"github.com/graphmind-ai/sdk/export"
	"github.com/graphmind-ai/sdk/graph"
	"github.com/graphmind-ai/sdk/schema"
	"github.com/graphmind-ai/sdk/tool"
)

// NewVisualizeGraph builds the visualize-graph tool. The json format returns
// the namespace graph as structured nodes and edges; dot and gexf return a
// rendered document for external visualization tooling.
func NewVisualizeGraph(deps *Deps) (tool.Tool, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}

	return tool.New(tool.NewConfig().
		SetName("visualize-graph").
		SetDescription("Serialize a namespace graph for inspection or visualization").
		SetTags([]string{"graph", "read"}).
		SetInputSchema(schema.Object(map[string]schema.JSON{
			"namespace": schema.String(),
			"format":    schema.Enum("json", "dot", "gexf"),
		}, "format")).
		SetOutputSchema(schema.Object(map[string]schema.JSON{
			"success": schema.Bool(),
			"format":  schema.String(),
		}, "success")).
		SetExecuteFunc(func(ctx context.Context, input map[string]any) (map[string]any, error) {
			ns := stringArg(input, "namespace", graph.DefaultNamespace)
			format, _ := input["format"].(string)

			ctx, end := deps.span(ctx, "tools.visualize_graph",
				attribute.String("namespace", ns),
				attribute.String("format", format))
			defer end()

			g, err := deps.Store.Snapshot(ns)
			if err != nil {
				// An unknown namespace visualizes as an empty graph.
				g = graph.New()
			}

			if format == "json" {
				nodes := make([]any, 0, g.NodeCount())
				for _, id := range sortedNodeIDs(g) {
					nodes = append(nodes, nodeToMap(g.Nodes[id]))
				}
				edges := make([]any, 0, g.EdgeCount())
				for _, e := range g.Edges {
					edges = append(edges, map[string]any{
						"from":   e.From,
						"to":     e.To,
						"weight": e.Weight,
					})
				}
				deps.logger().InfoContext(ctx, "graph visualized",
					"namespace", ns, "format", format)
				return map[string]any{
					"success": true,
					"format":  format,
					"nodes":   nodes,
					"edges":   edges,
				}, nil
			}

			data, err := export.Export(g, export.Format(format))
			if err != nil {
				deps.logger().WarnContext(ctx, "visualize-graph failed",
					"namespace", ns, "format", format, "error", err)
				return failure(err.Error()), nil
			}

			deps.logger().InfoContext(ctx, "graph visualized",
				"namespace", ns, "format", format)
			return map[string]any{
				"success": true,
				"format":  format,
				"data":    string(data),
			}, nil
		}))
}

func sortedNodeIDs(g *graph.Graph) []string {
	ids := make([]string, 0, len(g.Nodes))
	for id := range g.Nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
