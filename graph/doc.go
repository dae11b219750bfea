// Package graph implements the in-memory, namespace-partitioned graph store
// at the core of the GraphMind SDK.
//
// A Store maps namespaces to independent graphs. Each graph holds document
// nodes (content, metadata, adjacency) and directed weighted edges keyed by
// "<from>-><to>". Undirected semantics are expressed as two directed edges
// with equal weight.
//
// # Mutation API
//
// All mutations are namespace-scoped and auto-create an empty graph for a
// namespace on first write:
//
//	store := graph.NewStore(logger)
//	store.AddNode("default", graph.NewNode("a").WithContent("cats are mammals"))
//	store.AddNode("default", graph.NewNode("b").WithContent("dogs are mammals"))
//	store.AddEdge("default", "a", "b", 0.8)
//	store.AddEdge("default", "b", "a", 0.8)
//
// Removing a node cascades: incident edges are deleted and the node's ID is
// scrubbed from every other node's adjacency list.
//
// # Maintenance
//
// PruneOrphans, MergeDuplicates, and RemoveLowScoreEdges implement the graph
// lifecycle operations. All three preserve the structural invariant that
// every edge endpoint references an existing node and every adjacency entry
// has a matching weight.
//
// # Concurrency
//
// The store guards each namespace with its own mutex, so multi-step
// mutations are atomic relative to other writers on the same namespace.
// Reads return deep copies; callers never observe shared mutable state.
package graph
