package tool

import (
	"context"

	"github.com/graphmind-ai/sdk/schema"
	"github.com/graphmind-ai/sdk/types"
)

// Tool is an executable graph operation with schema-validated map inputs
// and outputs. Build implementations with NewConfig and New rather than by
// hand; the builder enforces the validation contract around Execute.
type Tool interface {
	// Name is the tool's unique identifier.
	Name() string

	// Version is the tool's semantic version.
	Version() string

	// Description says what the tool does, for discovery surfaces.
	Description() string

	// Tags categorize the tool, e.g. "graph" or "read".
	Tags() []string

	// InputSchema describes valid inputs.
	InputSchema() schema.JSON

	// OutputSchema describes the tool's output.
	OutputSchema() schema.JSON

	// Execute runs the tool. Input is checked against InputSchema before
	// the logic runs and output against OutputSchema after; ctx carries
	// cancellation and deadlines.
	Execute(ctx context.Context, input map[string]any) (map[string]any, error)

	// Health reports whether the tool's dependencies are ready.
	Health(ctx context.Context) types.HealthStatus
}
