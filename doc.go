// Package sdk provides a GraphRAG engine: knowledge graph construction from
// embedded documents, multi-hop retrieval with score decay, and a set of
// schema-validated graph tools.
//
// # Core Concepts
//
//   - Graph store: namespace-partitioned in-memory knowledge graphs of
//     content nodes connected by weighted edges
//   - Relationship builder: embeds documents and links every pair whose
//     cosine similarity clears a threshold
//   - Retrieval: vector search seeds expanded through the graph breadth-first,
//     with scores decaying by edge weight at each hop
//   - Tools: seven operations (create, query, visualize, inspect, edit,
//     prune, export/import) exposed behind JSON-schema-validated contracts
//   - Dispatch: optional Redis work queues and etcd service registration for
//     running tools as horizontally scaled workers
//
// # Getting Started
//
// Create an engine with an embedding provider:
//
//	import (
//	    sdk "github.com/graphmind-ai/sdk"
//	    "github.com/graphmind-ai/sdk/embedding"
//	    openai "github.com/sashabaranov/go-openai"
//	)
//
//	engine, err := sdk.New(
//	    sdk.WithEmbedder(embedding.NewOpenAIEmbedder(apiKey, openai.SmallEmbedding3)),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer engine.Shutdown(context.Background())
//
// Build a graph and query it through the tool surface:
//
//	_, err = engine.Execute(ctx, "create-graph", map[string]any{
//	    "documents": docs,
//	    "namespace": "articles",
//	})
//
//	out, err := engine.Execute(ctx, "query-graph", map[string]any{
//	    "query":     "feline behavior",
//	    "namespace": "articles",
//	})
//
// # Packages
//
//   - graph: namespaced graph store and maintenance operations
//   - similarity: cosine similarity primitives
//   - relate: document-to-graph relationship builder
//   - embedding: embedding provider interface and OpenAI adapter
//   - vectorstore: in-memory and Redis-backed vector stores
//   - retrieval: multi-hop traversal engine
//   - export: JSON/CSV/GraphML serialization plus DOT/GEXF visualization
//   - tools: the seven graph tool implementations
//   - tool, schema, toolerr: tool contracts, JSON schema validation,
//     structured tool errors
//   - queue, tool/worker: Redis work queues and the worker loop
//   - registry: in-process and etcd-backed service registries
//   - telemetry: otel tracing exported to slog, operation counters
//   - component: component.yaml configuration
//
// # Error Handling
//
// Facade operations return *SDKError values carrying an operation name and a
// kind (KindNotFound, KindValidation, ...). Tool executions return structured
// *toolerr.Error values with machine-readable codes. Both unwrap cleanly for
// errors.Is and errors.As.
package sdk
