package graph

import (
	"fmt"
	"sort"
)

// PruneOrphans removes every node in the namespace whose adjacency list is
// empty. Incident edges and other nodes' adjacency entries referencing a
// pruned node are scrubbed so the graph invariant holds. Returns the number
// of nodes pruned. A missing namespace returns ErrNamespaceNotFound.
func (s *Store) PruneOrphans(ns string) (int, error) {
	nsg, ok := s.namespace(ns, false)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrNamespaceNotFound, resolveNamespace(ns))
	}
	nsg.mu.Lock()
	defer nsg.mu.Unlock()

	// Decide the orphan set up front so scrubbing one node's adjacency
	// cannot change which nodes qualify in this pass.
	orphans := make([]string, 0)
	for id, n := range nsg.g.Nodes {
		if len(n.Connections) == 0 {
			orphans = append(orphans, id)
		}
	}

	for _, id := range orphans {
		delete(nsg.g.Nodes, id)
		for edgeID, e := range nsg.g.Edges {
			if e.From == id || e.To == id {
				delete(nsg.g.Edges, edgeID)
			}
		}
		for _, other := range nsg.g.Nodes {
			other.Disconnect(id)
		}
	}
	pruned := len(orphans)
	if pruned > 0 {
		s.logger.Debug("orphans pruned", "namespace", resolveNamespace(ns), "count", pruned)
	}
	return pruned, nil
}

// MergeDuplicates merges nodes with byte-identical content. The first-seen
// node (oldest CreatedAt, ties broken by ID) keeps its metadata; later
// duplicates contribute their connections and weights, their incident edges
// are rewired to the keeper, and the duplicates are deleted. Metadata
// conflicts are not reconciled. Returns the number of nodes merged away.
func (s *Store) MergeDuplicates(ns string) (int, error) {
	nsg, ok := s.namespace(ns, false)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrNamespaceNotFound, resolveNamespace(ns))
	}
	nsg.mu.Lock()
	defer nsg.mu.Unlock()
	g := nsg.g

	// Deterministic first-seen ordering.
	ids := make([]string, 0, len(g.Nodes))
	for id := range g.Nodes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := g.Nodes[ids[i]], g.Nodes[ids[j]]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})

	keeperByContent := make(map[string]*Node)
	merged := 0
	for _, id := range ids {
		dup, exists := g.Nodes[id]
		if !exists {
			continue
		}
		keeper, seen := keeperByContent[dup.Content]
		if !seen {
			keeperByContent[dup.Content] = dup
			continue
		}

		mergeNodeInto(g, keeper, dup)
		merged++
	}
	if merged > 0 {
		s.logger.Debug("duplicates merged", "namespace", resolveNamespace(ns), "count", merged)
	}
	return merged, nil
}

// mergeNodeInto folds dup's adjacency into keeper, rewires incident edges,
// and deletes dup. Caller must hold the namespace lock.
func mergeNodeInto(g *Graph, keeper, dup *Node) {
	// Outgoing adjacency of the duplicate.
	for _, neighborID := range dup.Connections {
		if neighborID == keeper.ID {
			continue
		}
		weight := dup.ConnectionWeights[neighborID]
		if _, already := keeper.Connected(neighborID); !already {
			keeper.Connect(neighborID, weight)
			if _, exists := g.Edges[EdgeID(keeper.ID, neighborID)]; !exists {
				g.Edges[EdgeID(keeper.ID, neighborID)] = NewEdge(keeper.ID, neighborID, weight)
			}
		}
	}

	// Incoming adjacency: repoint neighbors of the duplicate at the keeper.
	for _, other := range g.Nodes {
		if other.ID == dup.ID || other.ID == keeper.ID {
			continue
		}
		if w, connected := other.Connected(dup.ID); connected {
			other.Disconnect(dup.ID)
			if _, already := other.Connected(keeper.ID); !already {
				other.Connect(keeper.ID, w)
				if _, exists := g.Edges[EdgeID(other.ID, keeper.ID)]; !exists {
					g.Edges[EdgeID(other.ID, keeper.ID)] = NewEdge(other.ID, keeper.ID, w)
				}
			}
		}
	}

	// Drop the duplicate and every edge that still references it.
	delete(g.Nodes, dup.ID)
	for edgeID, e := range g.Edges {
		if e.From == dup.ID || e.To == dup.ID {
			delete(g.Edges, edgeID)
		}
	}
	keeper.Disconnect(dup.ID)
	delete(g.Edges, EdgeID(keeper.ID, dup.ID))
	delete(g.Edges, EdgeID(dup.ID, keeper.ID))
}

// DefaultLowScoreThreshold is the edge weight below which RemoveLowScoreEdges
// deletes edges when no threshold is given.
const DefaultLowScoreThreshold = 0.2

// RemoveLowScoreEdges deletes every directed edge with weight strictly below
// the threshold and scrubs the corresponding entries from the source nodes'
// adjacency lists, keeping the adjacency invariant intact. Returns the number
// of edges removed.
func (s *Store) RemoveLowScoreEdges(ns string, threshold float64) (int, error) {
	if threshold <= 0 {
		threshold = DefaultLowScoreThreshold
	}

	nsg, ok := s.namespace(ns, false)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrNamespaceNotFound, resolveNamespace(ns))
	}
	nsg.mu.Lock()
	defer nsg.mu.Unlock()

	removed := 0
	for edgeID, e := range nsg.g.Edges {
		if e.Weight < threshold {
			delete(nsg.g.Edges, edgeID)
			if fromNode, exists := nsg.g.Nodes[e.From]; exists {
				fromNode.Disconnect(e.To)
			}
			removed++
		}
	}
	if removed > 0 {
		s.logger.Debug("low-score edges removed",
			"namespace", resolveNamespace(ns),
			"threshold", threshold,
			"count", removed,
		)
	}
	return removed, nil
}
