// Package tools provides the built-in graph tools: create-graph, query-graph,
// visualize-graph, inspect-graph, edit-graph, prune-graph, and
// export-import-graph.
//
// Each tool is built with the tool package's builder, declares JSON schemas
// for its input and output, and shares a Deps bundle holding the graph store,
// vector store, embedder, and retrieval engine. Mutation tools report
// validation failures as {success:false, message} results instead of errors;
// the query tool degrades to an empty result set when a collaborator fails.
//
//	deps := &tools.Deps{
//		Store:    store,
//		Vectors:  vectors,
//		Embedder: embedder,
//		Engine:   engine,
//	}
//	all, err := tools.All(deps)
package tools
