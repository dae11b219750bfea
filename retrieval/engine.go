// Package retrieval implements graph-augmented retrieval: vector search
// seeds a bounded-hop breadth-first exploration of the graph store, with the
// relevance score decaying multiplicatively by edge weight at each hop.
//
// Because edge weights are bounded in [0, 1], a node's score never increases
// with distance: farther nodes rank no higher than the candidates that led
// to them. Traversal order, not global re-ranking, decides which path wins
// when multiple paths reach the same node (unless Query.BestScoreWins is set).
package retrieval

import (
	"context"
	"io"
	"log/slog"
	"sort"

	"github.com/emirpasic/gods/queues/linkedlistqueue"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/graphmind-ai/sdk/embedding"
	"github.com/graphmind-ai/sdk/graph"
	"github.com/graphmind-ai/sdk/vectorstore"
)

// DefaultEdgeWeight is the decay factor applied when an adjacency entry has
// no recorded weight.
const DefaultEdgeWeight = 0.5

// Engine answers retrieval queries by combining vector search with graph
// traversal.
//
// Collaborator failures on the query path (embedder, vector store) degrade
// to an empty result set rather than propagating, preserving availability
// over completeness; the failure is recorded on the span and the log.
type Engine struct {
	store    *graph.Store
	vectors  vectorstore.Store
	embedder embedding.Embedder
	logger   *slog.Logger
	tracer   trace.Tracer
}

// NewEngine creates a retrieval engine. A nil logger disables logging; a nil
// tracer disables tracing.
func NewEngine(store *graph.Store, vectors vectorstore.Store, embedder embedding.Embedder, logger *slog.Logger, tracer trace.Tracer) *Engine {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Engine{
		store:    store,
		vectors:  vectors,
		embedder: embedder,
		logger:   logger,
		tracer:   tracer,
	}
}

// queueEntry is a BFS frontier entry.
type queueEntry struct {
	id  string
	hop int
}

// Query validates and executes a retrieval query, returning results sorted
// by descending score. A namespace with no graph yields an empty result set,
// signalling "nothing indexed yet" rather than an error.
func (e *Engine) Query(ctx context.Context, q *Query) ([]Result, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	if e.tracer != nil {
		var span trace.Span
		ctx, span = e.tracer.Start(ctx, "retrieval.query",
			trace.WithAttributes(
				attribute.String("namespace", q.Namespace),
				attribute.Int("top_k", q.TopK),
				attribute.Int("max_hops", q.MaxHops),
			))
		defer span.End()
	}

	ns := q.Namespace
	if ns == "" {
		ns = graph.DefaultNamespace
	}
	if !e.store.HasNamespace(ns) {
		e.logger.Debug("query against empty namespace", "namespace", ns)
		return []Result{}, nil
	}

	vector, err := e.embedder.EmbedQuery(ctx, q.Text)
	if err != nil {
		e.logger.Warn("embedding failed, degrading to empty result set",
			"namespace", ns, "error", err)
		return []Result{}, nil
	}

	seeds, err := e.vectors.Search(ctx, ns, vector, q.TopK, q.MinScore)
	if err != nil {
		e.logger.Warn("vector search failed, degrading to empty result set",
			"namespace", ns, "error", err)
		return []Result{}, nil
	}

	results := e.traverse(ns, seeds, q.MaxHops, q.BestScoreWins)

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		if results[i].HopDistance != results[j].HopDistance {
			return results[i].HopDistance < results[j].HopDistance
		}
		return results[i].ID < results[j].ID
	})

	e.logger.Debug("query complete",
		"namespace", ns,
		"seeds", len(seeds),
		"results", len(results),
	)
	return results, nil
}

// traverse performs the bounded-hop breadth-first exploration from the seed
// candidates, decaying scores multiplicatively along edge weights.
func (e *Engine) traverse(ns string, seeds []vectorstore.Match, maxHops int, bestScoreWins bool) []Result {
	visited := make(map[string]*Result, len(seeds))
	order := make([]string, 0, len(seeds))
	frontier := linkedlistqueue.New()

	for _, seed := range seeds {
		if _, seen := visited[seed.ID]; seen {
			continue
		}
		visited[seed.ID] = &Result{
			ID:          seed.ID,
			Content:     seed.Content,
			Metadata:    seed.Metadata,
			Score:       seed.Score,
			HopDistance: 0,
		}
		order = append(order, seed.ID)
		frontier.Enqueue(queueEntry{id: seed.ID, hop: 0})
	}

	for !frontier.Empty() {
		raw, _ := frontier.Dequeue()
		entry := raw.(queueEntry)
		if entry.hop >= maxHops {
			// The node stays in the results; it is just not expanded.
			continue
		}

		node, err := e.store.GetNode(ns, entry.id)
		if err != nil {
			// Seed known to the vector store but not indexed in the graph.
			continue
		}
		current := visited[entry.id]

		for _, neighborID := range node.Connections {
			weight, ok := node.Connected(neighborID)
			if !ok {
				weight = DefaultEdgeWeight
			}
			score := current.Score * weight

			if prev, seen := visited[neighborID]; seen {
				if bestScoreWins && score > prev.Score {
					prev.Score = score
					prev.HopDistance = entry.hop + 1
					frontier.Enqueue(queueEntry{id: neighborID, hop: entry.hop + 1})
				}
				continue
			}

			neighbor, err := e.store.GetNode(ns, neighborID)
			if err != nil {
				continue
			}
			visited[neighborID] = &Result{
				ID:          neighborID,
				Content:     neighbor.Content,
				Metadata:    neighbor.Metadata,
				Score:       score,
				HopDistance: entry.hop + 1,
			}
			order = append(order, neighborID)
			frontier.Enqueue(queueEntry{id: neighborID, hop: entry.hop + 1})
		}
	}

	results := make([]Result, 0, len(order))
	for _, id := range order {
		results = append(results, *visited[id])
	}
	return results
}
