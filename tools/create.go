package tools

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/graphmind-ai/sdk/graph"
	"github.com/graphmind-ai/sdk/relate"
	"github.com/graphmind-ai/sdk/schema"
	"github.com/graphmind-ai/sdk/tool"
	"github.com/graphmind-ai/sdk/vectorstore"
)

// NewCreateGraph builds the create-graph tool. It embeds the given documents,
// links every pair whose cosine similarity clears the threshold, persists the
// result to the graph store, and indexes the embeddings for retrieval.
//
// Validation and upstream failures are returned as {success:false, message}
// so a calling agent can react programmatically.
func NewCreateGraph(deps *Deps) (tool.Tool, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}

	return tool.New(tool.NewConfig().
		SetName("create-graph").
		SetDescription("Build a similarity graph over documents and index their embeddings").
		SetTags([]string{"graph", "write"}).
		SetInputSchema(schema.Object(map[string]schema.JSON{
			"documents": schema.Array(schema.Object(map[string]schema.JSON{
				"content":  schema.StringWithDesc("Document text"),
				"metadata": schema.Object(nil),
			}, "content")),
			"namespace":           schema.StringWithDesc("Graph namespace, defaults to the default namespace"),
			"similarityThreshold": schema.Number(),
		}, "documents")).
		SetOutputSchema(schema.Object(map[string]schema.JSON{
			"success":   schema.Bool(),
			"graphId":   schema.String(),
			"nodeCount": schema.Int(),
			"edgeCount": schema.Int(),
			"message":   schema.String(),
		}, "success")).
		SetExecuteFunc(func(ctx context.Context, input map[string]any) (map[string]any, error) {
			ns := stringArg(input, "namespace", graph.DefaultNamespace)
			threshold := floatArg(input, "similarityThreshold", relate.DefaultThreshold)

			ctx, end := deps.span(ctx, "tools.create_graph",
				attribute.String("namespace", ns),
				attribute.Float64("threshold", threshold))
			defer end()

			docs, err := parseDocuments(input["documents"])
			if err != nil {
				deps.logger().WarnContext(ctx, "create-graph rejected input",
					"namespace", ns, "error", err)
				return failure(err.Error()), nil
			}

			builder := relate.NewBuilder(deps.Embedder, threshold)
			enriched, err := builder.Build(ctx, docs)
			if err != nil {
				deps.logger().WarnContext(ctx, "create-graph build failed",
					"namespace", ns, "error", err)
				return failure(err.Error()), nil
			}

			if err := relate.Persist(deps.Store, ns, enriched); err != nil {
				deps.logger().WarnContext(ctx, "create-graph persist failed",
					"namespace", ns, "error", err)
				return failure(err.Error()), nil
			}

			items := make([]vectorstore.Item, len(enriched))
			for i, doc := range enriched {
				items[i] = vectorstore.Item{
					ID:       doc.ID,
					Content:  doc.Content,
					Metadata: doc.Metadata,
					Vector:   doc.Embedding,
				}
			}
			if err := deps.Vectors.Upsert(ctx, ns, items); err != nil {
				deps.logger().WarnContext(ctx, "create-graph vector upsert failed",
					"namespace", ns, "error", err)
				return failure(err.Error()), nil
			}

			nodes, edges := deps.Store.Counts(ns)
			deps.Metrics.NodesAdded(ctx, ns, int64(len(enriched)))
			deps.Metrics.EdgesAdded(ctx, ns, int64(edges))
			deps.logger().InfoContext(ctx, "graph created",
				"namespace", ns, "nodes", nodes, "edges", edges)

			return map[string]any{
				"success":   true,
				"graphId":   ns,
				"nodeCount": nodes,
				"edgeCount": edges,
			}, nil
		}))
}

func parseDocuments(raw any) ([]relate.Document, error) {
	list, ok := raw.([]any)
	if !ok {
		if typed, isTyped := raw.([]map[string]any); isTyped {
			list = make([]any, len(typed))
			for i, m := range typed {
				list[i] = m
			}
		} else {
			return nil, relate.ErrInvalidDocument
		}
	}

	docs := make([]relate.Document, 0, len(list))
	for _, entry := range list {
		m, ok := entry.(map[string]any)
		if !ok {
			return nil, relate.ErrInvalidDocument
		}
		content, _ := m["content"].(string)
		metadata, _ := m["metadata"].(map[string]any)
		if metadata == nil {
			metadata = map[string]any{}
		}
		docs = append(docs, relate.Document{Content: content, Metadata: metadata})
	}
	return docs, nil
}
