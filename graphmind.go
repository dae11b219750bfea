package sdk

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/graphmind-ai/sdk/component"
	"github.com/graphmind-ai/sdk/embedding"
	"github.com/graphmind-ai/sdk/graph"
	"github.com/graphmind-ai/sdk/registry"
	"github.com/graphmind-ai/sdk/retrieval"
	"github.com/graphmind-ai/sdk/telemetry"
	"github.com/graphmind-ai/sdk/tool"
	"github.com/graphmind-ai/sdk/tools"
	"github.com/graphmind-ai/sdk/vectorstore"
)

// Engine is the SDK facade. It wires the graph store, vector store, embedder,
// and retrieval engine together, builds the full set of graph tools, and
// registers them for discovery.
//
// Create one with New and release its resources with Shutdown.
type Engine struct {
	cfg    *component.Config
	logger *slog.Logger

	tracerProvider *sdktrace.TracerProvider
	ownsTracer     bool
	tracer         trace.Tracer
	metrics        *telemetry.Metrics

	store     *graph.Store
	vectors   vectorstore.Store
	embedder  embedding.Embedder
	retriever *retrieval.Engine

	registry  registry.Registry
	tools     map[string]tool.Tool
	toolOrder []string
	instances []registry.ServiceInfo
}

// New creates an Engine with the provided options.
//
// An embedder is required; everything else has working defaults: an
// in-process graph store, an in-memory vector store, a JSON logger on
// stdout, and a tracer provider that exports spans to that logger.
//
// Example:
//
//	engine, err := sdk.New(
//	    sdk.WithEmbedder(embedding.NewOpenAIEmbedder(apiKey, openai.SmallEmbedding3)),
//	    sdk.WithLogger(logger),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer engine.Shutdown(context.Background())
func New(opts ...Option) (*Engine, error) {
	cfg := &engineConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.embedder == nil {
		return nil, NewConfigurationError("New", ErrInvalidConfig).
			WithContext(map[string]any{"missing": "embedder"})
	}

	if cfg.logger == nil {
		cfg.logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	}

	componentCfg := cfg.config
	if componentCfg == nil && cfg.configPath != "" {
		loaded, err := component.Load(cfg.configPath)
		if err != nil {
			return nil, NewConfigurationError("New", err)
		}
		componentCfg = loaded
	}

	ownsTracer := false
	tp := cfg.tracerProvider
	if tp == nil {
		serviceName := ""
		if componentCfg != nil {
			serviceName = componentCfg.Name
		}
		tp = telemetry.NewTracerProvider(serviceName, cfg.logger)
		ownsTracer = true
	}
	tracer := telemetry.NewTracer(tp)

	metrics, err := telemetry.NewMetrics(otel.Meter("graphmind-sdk"))
	if err != nil {
		// Metrics are optional; a nil Metrics no-ops.
		cfg.logger.Warn("failed to create metrics", "error", err)
		metrics = nil
	}

	store := cfg.store
	if store == nil {
		store = graph.NewStore(cfg.logger)
	}

	vectors := cfg.vectors
	if vectors == nil {
		vectors = vectorstore.NewMemoryStore()
	}

	retriever := retrieval.NewEngine(store, vectors, cfg.embedder, cfg.logger, tracer)

	deps := &tools.Deps{
		Store:    store,
		Vectors:  vectors,
		Embedder: cfg.embedder,
		Engine:   retriever,
		Logger:   cfg.logger,
		Tracer:   tracer,
		Metrics:  metrics,
	}

	built, err := tools.All(deps)
	if err != nil {
		return nil, NewConfigurationError("New", err)
	}

	reg := cfg.registry
	if reg == nil {
		reg = registry.NewMemory()
	}

	e := &Engine{
		cfg:            componentCfg,
		logger:         cfg.logger,
		tracerProvider: tp,
		ownsTracer:     ownsTracer,
		tracer:         tracer,
		metrics:        metrics,
		store:          store,
		vectors:        vectors,
		embedder:       cfg.embedder,
		retriever:      retriever,
		registry:       reg,
		tools:          make(map[string]tool.Tool, len(built)),
	}

	for _, t := range built {
		if err := e.register(t); err != nil {
			return nil, err
		}
	}

	return e, nil
}

func (e *Engine) register(t tool.Tool) error {
	info := registry.ServiceInfo{
		Kind:       "tool",
		Name:       t.Name(),
		Version:    t.Version(),
		InstanceID: uuid.New().String(),
		StartedAt:  time.Now(),
	}
	if err := e.registry.Register(context.Background(), info); err != nil {
		return NewInternalError("Engine.register", err).
			WithContext(map[string]any{"tool": t.Name()})
	}
	e.tools[t.Name()] = t
	e.toolOrder = append(e.toolOrder, t.Name())
	e.instances = append(e.instances, info)
	return nil
}

// Tools returns all registered tools in registration order.
func (e *Engine) Tools() []tool.Tool {
	out := make([]tool.Tool, 0, len(e.toolOrder))
	for _, name := range e.toolOrder {
		out = append(out, e.tools[name])
	}
	return out
}

// Tool returns the named tool, or an SDKError wrapping ErrToolNotFound.
func (e *Engine) Tool(name string) (tool.Tool, error) {
	t, ok := e.tools[name]
	if !ok {
		return nil, NewNotFoundError("Engine.Tool", ErrToolNotFound).
			WithContext(map[string]any{"tool": name})
	}
	return t, nil
}

// Execute runs the named tool with the given input. Execution failures are
// wrapped as SDKError with KindExecution; tool-level validation failures
// surface in the tool's own structured result or error.
func (e *Engine) Execute(ctx context.Context, name string, input map[string]any) (map[string]any, error) {
	t, err := e.Tool(name)
	if err != nil {
		return nil, err
	}

	output, err := t.Execute(ctx, input)
	if err != nil {
		e.metrics.ToolError(ctx, name)
		return nil, NewExecutionError("Engine.Execute", err).
			WithContext(map[string]any{"tool": name})
	}
	return output, nil
}

// GraphStore returns the underlying graph store for direct access.
func (e *Engine) GraphStore() *graph.Store {
	return e.store
}

// VectorStore returns the underlying vector store.
func (e *Engine) VectorStore() vectorstore.Store {
	return e.vectors
}

// Retriever returns the retrieval engine used by the query tool.
func (e *Engine) Retriever() *retrieval.Engine {
	return e.retriever
}

// Registry returns the service registry holding the tool entries. This is
// the in-process registry unless one was injected with WithServiceRegistry.
func (e *Engine) Registry() registry.Registry {
	return e.registry
}

// Config returns the loaded component configuration, or nil if none was
// provided.
func (e *Engine) Config() *component.Config {
	return e.cfg
}

// Shutdown deregisters the tools, closes the registry, and shuts down the
// tracer provider if the engine created it.
func (e *Engine) Shutdown(ctx context.Context) error {
	for _, info := range e.instances {
		if err := e.registry.Deregister(ctx, info); err != nil {
			e.logger.Warn("failed to deregister tool",
				"tool", info.Name, "error", err)
		}
	}

	if err := e.registry.Close(); err != nil {
		e.logger.Warn("failed to close registry", "error", err)
	}

	if e.ownsTracer {
		if err := e.tracerProvider.Shutdown(ctx); err != nil {
			return NewInternalError("Engine.Shutdown", err)
		}
	}

	return nil
}
