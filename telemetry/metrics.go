package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds otel counters for graph operations. All methods are safe on
// a nil receiver so callers can treat metrics as optional.
type Metrics struct {
	nodesAdded metric.Int64Counter
	edgesAdded metric.Int64Counter
	queries    metric.Int64Counter
	toolErrors metric.Int64Counter
}

// NewMetrics creates graph operation counters on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	nodesAdded, err := meter.Int64Counter("graph.nodes.added",
		metric.WithDescription("Number of nodes added to graphs"))
	if err != nil {
		return nil, fmt.Errorf("failed to create nodes counter: %w", err)
	}

	edgesAdded, err := meter.Int64Counter("graph.edges.added",
		metric.WithDescription("Number of edges added to graphs"))
	if err != nil {
		return nil, fmt.Errorf("failed to create edges counter: %w", err)
	}

	queries, err := meter.Int64Counter("graph.queries",
		metric.WithDescription("Number of retrieval queries executed"))
	if err != nil {
		return nil, fmt.Errorf("failed to create queries counter: %w", err)
	}

	toolErrors, err := meter.Int64Counter("tool.errors",
		metric.WithDescription("Number of tool executions that returned errors"))
	if err != nil {
		return nil, fmt.Errorf("failed to create errors counter: %w", err)
	}

	return &Metrics{
		nodesAdded: nodesAdded,
		edgesAdded: edgesAdded,
		queries:    queries,
		toolErrors: toolErrors,
	}, nil
}

// NodesAdded records n nodes added to the given namespace.
func (m *Metrics) NodesAdded(ctx context.Context, namespace string, n int64) {
	if m == nil {
		return
	}
	m.nodesAdded.Add(ctx, n, metric.WithAttributes(attribute.String("namespace", namespace)))
}

// EdgesAdded records n edges added to the given namespace.
func (m *Metrics) EdgesAdded(ctx context.Context, namespace string, n int64) {
	if m == nil {
		return
	}
	m.edgesAdded.Add(ctx, n, metric.WithAttributes(attribute.String("namespace", namespace)))
}

// QueryRun records one retrieval query against the given namespace.
func (m *Metrics) QueryRun(ctx context.Context, namespace string) {
	if m == nil {
		return
	}
	m.queries.Add(ctx, 1, metric.WithAttributes(attribute.String("namespace", namespace)))
}

// ToolError records one failed tool execution.
func (m *Metrics) ToolError(ctx context.Context, tool string) {
	if m == nil {
		return
	}
	m.toolErrors.Add(ctx, 1, metric.WithAttributes(attribute.String("tool", tool)))
}
