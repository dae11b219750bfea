package tools

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/graphmind-ai/sdk/graph"
	"github.com/graphmind-ai/sdk/schema"
	"github.com/graphmind-ai/sdk/tool"
)

// NewEditGraph builds the edit-graph tool. It applies a single mutation to a
// namespace graph: addNode, removeNode, addEdge, removeEdge, or updateWeight.
// Validation failures come back as {success:false, message} so a calling
// agent can react without exception handling.
func NewEditGraph(deps *Deps) (tool.Tool, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}

	return tool.New(tool.NewConfig().
		SetName("edit-graph").
		SetDescription("Apply a single node or edge mutation to a namespace graph").
		SetTags([]string{"graph", "write"}).
		SetInputSchema(schema.Object(map[string]schema.JSON{
			"action":    schema.Enum("addNode", "removeNode", "addEdge", "removeEdge", "updateWeight"),
			"node":      schema.Object(nil),
			"edge":      schema.Object(nil),
			"weight":    schema.Number(),
			"namespace": schema.String(),
		}, "action")).
		SetOutputSchema(schema.Object(map[string]schema.JSON{
			"success": schema.Bool(),
			"message": schema.String(),
		}, "success", "message")).
		SetExecuteFunc(func(ctx context.Context, input map[string]any) (map[string]any, error) {
			ns := stringArg(input, "namespace", graph.DefaultNamespace)
			action, _ := input["action"].(string)

			ctx, end := deps.span(ctx, "tools.edit_graph",
				attribute.String("namespace", ns),
				attribute.String("action", action))
			defer end()

			result := applyEdit(deps.Store, ns, action, input)
			if result["success"] == true {
				deps.logger().InfoContext(ctx, "graph edited",
					"namespace", ns, "action", action)
			} else {
				deps.logger().WarnContext(ctx, "edit-graph rejected",
					"namespace", ns, "action", action, "message", result["message"])
			}
			return result, nil
		}))
}

func applyEdit(store *graph.Store, ns, action string, input map[string]any) map[string]any {
	switch action {
	case "addNode":
		n, err := parseNode(mapArg(input, "node"))
		if err != nil {
			return failure(err.Error())
		}
		if err := store.AddNode(ns, n); err != nil {
			return failure(err.Error())
		}
		return success("node %s added", n.ID)

	case "removeNode":
		id, err := nodeID(mapArg(input, "node"))
		if err != nil {
			return failure(err.Error())
		}
		if err := store.RemoveNode(ns, id); err != nil {
			return failure(err.Error())
		}
		return success("node %s removed", id)

	case "addEdge":
		from, to, err := edgeEndpoints(mapArg(input, "edge"))
		if err != nil {
			return failure(err.Error())
		}
		weight := edgeWeight(input, 1.0)
		if err := store.AddEdge(ns, from, to, weight); err != nil {
			return failure(err.Error())
		}
		return success("edge %s added", graph.EdgeID(from, to))

	case "removeEdge":
		from, to, err := edgeEndpoints(mapArg(input, "edge"))
		if err != nil {
			return failure(err.Error())
		}
		if err := store.RemoveEdge(ns, from, to); err != nil {
			return failure(err.Error())
		}
		return success("edge %s removed", graph.EdgeID(from, to))

	case "updateWeight":
		from, to, err := edgeEndpoints(mapArg(input, "edge"))
		if err != nil {
			return failure(err.Error())
		}
		if _, ok := input["weight"]; !ok {
			if _, ok := mapArg(input, "edge")["weight"]; !ok {
				return failure("weight is required for updateWeight")
			}
		}
		weight := edgeWeight(input, 0)
		if err := store.UpdateWeight(ns, from, to, weight); err != nil {
			return failure(err.Error())
		}
		return success("edge %s weight set to %g", graph.EdgeID(from, to), weight)

	default:
		return failure(fmt.Sprintf("unknown action %q", action))
	}
}

func success(format string, args ...any) map[string]any {
	return map[string]any{
		"success": true,
		"message": fmt.Sprintf(format, args...),
	}
}

func parseNode(m map[string]any) (*graph.Node, error) {
	id, err := nodeID(m)
	if err != nil {
		return nil, err
	}
	n := graph.NewNode(id)
	if content, ok := m["content"].(string); ok {
		n = n.WithContent(content)
	}
	if metadata, ok := m["metadata"].(map[string]any); ok {
		n = n.WithMetadataMap(metadata)
	}
	return n, nil
}

func nodeID(m map[string]any) (string, error) {
	if m == nil {
		return "", fmt.Errorf("node is required")
	}
	id, _ := m["id"].(string)
	if id == "" {
		return "", fmt.Errorf("node id is required")
	}
	return id, nil
}

func edgeEndpoints(m map[string]any) (string, string, error) {
	if m == nil {
		return "", "", fmt.Errorf("edge is required")
	}
	from, _ := m["from"].(string)
	to, _ := m["to"].(string)
	if from == "" || to == "" {
		return "", "", fmt.Errorf("edge from and to are required")
	}
	return from, to, nil
}

// edgeWeight reads the weight from the edge object, falling back to the
// top-level weight input, then to the given default.
func edgeWeight(input map[string]any, fallback float64) float64 {
	if edge := mapArg(input, "edge"); edge != nil {
		if _, ok := edge["weight"]; ok {
			return floatArg(edge, "weight", fallback)
		}
	}
	return floatArg(input, "weight", fallback)
}
