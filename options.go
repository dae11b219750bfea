package sdk

import (
	"log/slog"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/graphmind-ai/sdk/component"
	"github.com/graphmind-ai/sdk/embedding"
	"github.com/graphmind-ai/sdk/graph"
	"github.com/graphmind-ai/sdk/registry"
	"github.com/graphmind-ai/sdk/schema"
	"github.com/graphmind-ai/sdk/tool"
	"github.com/graphmind-ai/sdk/vectorstore"
)

// Option configures the Engine.
type Option func(*engineConfig)

// engineConfig holds configuration for the Engine instance.
type engineConfig struct {
	configPath     string
	config         *component.Config
	logger         *slog.Logger
	tracerProvider *sdktrace.TracerProvider
	embedder       embedding.Embedder
	vectors        vectorstore.Store
	store          *graph.Store
	registry       registry.Registry
}

// WithConfig sets the configuration file path for the engine.
// The file is loaded as component.yaml and provides engine defaults
// (similarity threshold, traversal depth) and connection settings.
func WithConfig(path string) Option {
	return func(c *engineConfig) {
		c.configPath = path
	}
}

// WithConfigStruct sets an already-parsed configuration, bypassing file
// loading. Takes precedence over WithConfig.
func WithConfigStruct(cfg *component.Config) Option {
	return func(c *engineConfig) {
		c.config = cfg
	}
}

// WithLogger sets a custom logger for the engine.
// If not provided, a default JSON logger writing to stdout is created.
func WithLogger(logger *slog.Logger) Option {
	return func(c *engineConfig) {
		c.logger = logger
	}
}

// WithTracerProvider sets an OpenTelemetry tracer provider for distributed
// tracing. If not provided, a provider exporting spans to the engine logger
// is created.
func WithTracerProvider(tp *sdktrace.TracerProvider) Option {
	return func(c *engineConfig) {
		c.tracerProvider = tp
	}
}

// WithEmbedder sets the embedding provider used for graph construction and
// query vectorization. Required.
func WithEmbedder(e embedding.Embedder) Option {
	return func(c *engineConfig) {
		c.embedder = e
	}
}

// WithVectorStore sets the vector store used for retrieval seeding.
// If not provided, an in-memory store is used.
func WithVectorStore(vs vectorstore.Store) Option {
	return func(c *engineConfig) {
		c.vectors = vs
	}
}

// WithStore sets the graph store. If not provided, a fresh in-process store
// is created.
func WithStore(s *graph.Store) Option {
	return func(c *engineConfig) {
		c.store = s
	}
}

// WithServiceRegistry sets the registry where the engine registers its tools
// for discovery. Pass an etcd-backed registry.Client to make the tools
// visible across processes:
//
//	reg, err := registry.NewClient(registry.Config{
//	    Endpoints: []string{"localhost:2379"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	engine, err := sdk.New(
//	    sdk.WithEmbedder(embedder),
//	    sdk.WithServiceRegistry(reg),
//	)
//
// If not provided, an in-process registry is used. The engine takes ownership
// either way: Shutdown deregisters the tools and closes the registry.
func WithServiceRegistry(r registry.Registry) Option {
	return func(c *engineConfig) {
		c.registry = r
	}
}

// ToolOption configures a Tool built through the facade.
type ToolOption func(*tool.Config)

// WithToolName sets the tool's unique identifier.
// The name should be descriptive and unique within the system.
func WithToolName(name string) ToolOption {
	return func(c *tool.Config) {
		c.SetName(name)
	}
}

// WithToolVersion sets the tool's semantic version.
// Should follow semantic versioning format (e.g., "1.0.0").
func WithToolVersion(version string) ToolOption {
	return func(c *tool.Config) {
		c.SetVersion(version)
	}
}

// WithToolDescription sets the tool's human-readable description.
// This should explain what the tool does and how to use it.
func WithToolDescription(desc string) ToolOption {
	return func(c *tool.Config) {
		c.SetDescription(desc)
	}
}

// WithToolTags sets categorization tags for the tool.
// Tags help with discovery and filtering of tools.
func WithToolTags(tags ...string) ToolOption {
	return func(c *tool.Config) {
		c.SetTags(tags)
	}
}

// WithInputSchema sets the JSON schema validated against tool input.
func WithInputSchema(s schema.JSON) ToolOption {
	return func(c *tool.Config) {
		c.SetInputSchema(s)
	}
}

// WithOutputSchema sets the JSON schema validated against tool output.
func WithOutputSchema(s schema.JSON) ToolOption {
	return func(c *tool.Config) {
		c.SetOutputSchema(s)
	}
}

// WithExecuteHandler sets the function that executes the tool.
// This function implements the tool's core functionality and is required.
func WithExecuteHandler(fn tool.ExecuteFunc) ToolOption {
	return func(c *tool.Config) {
		c.SetExecuteFunc(fn)
	}
}

// WithHealthHandler sets an optional health check for the tool.
func WithHealthHandler(fn tool.HealthFunc) ToolOption {
	return func(c *tool.Config) {
		c.SetHealthFunc(fn)
	}
}
