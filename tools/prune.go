package tools

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/graphmind-ai/sdk/graph"
	"github.com/graphmind-ai/sdk/schema"
	"github.com/graphmind-ai/sdk/tool"
)

// NewPruneGraph builds the prune-graph tool. It runs one maintenance pass
// over a namespace graph: pruneOrphans removes nodes with no connections,
// mergeDuplicates collapses nodes with identical content, and
// removeLowScoreEdges drops edges below the threshold.
func NewPruneGraph(deps *Deps) (tool.Tool, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}

	return tool.New(tool.NewConfig().
		SetName("prune-graph").
		SetDescription("Run a maintenance pass over a namespace graph").
		SetTags([]string{"graph", "maintenance"}).
		SetInputSchema(schema.Object(map[string]schema.JSON{
			"mode":      schema.Enum("pruneOrphans", "mergeDuplicates", "removeLowScoreEdges"),
			"threshold": schema.Number(),
			"namespace": schema.String(),
		}, "mode")).
		SetOutputSchema(schema.Object(map[string]schema.JSON{
			"success": schema.Bool(),
			"pruned":  schema.Int(),
			"message": schema.String(),
		}, "success")).
		SetExecuteFunc(func(ctx context.Context, input map[string]any) (map[string]any, error) {
			ns := stringArg(input, "namespace", graph.DefaultNamespace)
			mode, _ := input["mode"].(string)

			ctx, end := deps.span(ctx, "tools.prune_graph",
				attribute.String("namespace", ns),
				attribute.String("mode", mode))
			defer end()

			var (
				pruned int
				err    error
			)
			switch mode {
			case "pruneOrphans":
				pruned, err = deps.Store.PruneOrphans(ns)
			case "mergeDuplicates":
				pruned, err = deps.Store.MergeDuplicates(ns)
			case "removeLowScoreEdges":
				threshold := floatArg(input, "threshold", graph.DefaultLowScoreThreshold)
				pruned, err = deps.Store.RemoveLowScoreEdges(ns, threshold)
			default:
				err = fmt.Errorf("unknown mode %q", mode)
			}
			if err != nil {
				deps.logger().WarnContext(ctx, "prune-graph failed",
					"namespace", ns, "mode", mode, "error", err)
				return failure(err.Error()), nil
			}

			deps.logger().InfoContext(ctx, "graph pruned",
				"namespace", ns, "mode", mode, "pruned", pruned)

			return map[string]any{
				"success": true,
				"pruned":  pruned,
			}, nil
		}))
}
