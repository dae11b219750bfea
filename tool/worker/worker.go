package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/graphmind-ai/sdk/component"
	"github.com/graphmind-ai/sdk/queue"
	"github.com/graphmind-ai/sdk/telemetry"
	"github.com/graphmind-ai/sdk/tool"
)

// Options configures Run. Zero values defer to the component.yaml worker
// section, then to the built-in defaults.
type Options struct {
	// RedisURL is the redis connection string,
	// e.g. "redis://localhost:6379".
	RedisURL string

	// Concurrency is the number of worker goroutines. Default 4.
	Concurrency int

	// ShutdownTimeout bounds the graceful drain. Default 30s.
	ShutdownTimeout time.Duration

	// HeartbeatInterval spaces health heartbeats. Default 10s.
	HeartbeatInterval time.Duration

	// Logger receives worker events; nil means a JSON logger on stdout.
	Logger *slog.Logger

	// ComponentConfig short-circuits component.yaml loading. Leave nil to
	// load from ConfigPath or the working directory; pass an empty config
	// to skip loading entirely.
	ComponentConfig *component.Config

	// ConfigPath points at a component.yaml. Ignored when ComponentConfig
	// is set.
	ConfigPath string
}

// Run serves the tool from its Redis queue until SIGTERM or SIGINT.
//
// It registers the tool, starts Concurrency goroutines that pop, execute,
// and publish, and keeps a heartbeat alive. On a signal it stops popping,
// waits up to ShutdownTimeout for in-flight items, and returns. The only
// error paths are a failed Redis connection and a failed registration;
// per-item failures become error Results instead.
//
// Explicit Options fields win over component.yaml, which wins over the
// defaults.
func Run(t tool.Tool, opts Options) error {
	componentCfg := opts.ComponentConfig
	if componentCfg == nil {
		var err error
		if opts.ConfigPath != "" {
			componentCfg, err = component.Load(opts.ConfigPath)
		} else {
			componentCfg, err = component.LoadFromCurrentDir()
		}
		if err != nil {
			// component.yaml is optional.
			componentCfg = nil
		}
	}

	opts = applyComponentConfig(opts, componentCfg)

	if opts.RedisURL == "" {
		opts.RedisURL = "redis://localhost:6379"
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	}

	workerID := generateWorkerID()

	logger := opts.Logger.With(
		"tool", t.Name(),
		"version", t.Version(),
		"worker_id", workerID,
	)

	logger.Info("worker starting",
		"concurrency", opts.Concurrency,
		"redis_url", opts.RedisURL,
	)

	redisClient, err := queue.NewRedisClient(queue.RedisOptions{
		URL: opts.RedisURL,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	defer redisClient.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := registerTool(ctx, redisClient, t, logger); err != nil {
		return err
	}

	if err := redisClient.IncrementWorkerCount(ctx, t.Name()); err != nil {
		logger.Error("failed to increment worker count", "error", err)
	}

	defer func() {
		// ctx may already be cancelled; the decrement needs its own.
		cleanupCtx, cleanupCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cleanupCancel()
		if err := redisClient.DecrementWorkerCount(cleanupCtx, t.Name()); err != nil {
			logger.Error("failed to decrement worker count", "error", err)
		}
	}()

	heartbeatCtx, stopHeartbeat := context.WithCancel(ctx)
	defer stopHeartbeat()
	go runHeartbeat(heartbeatCtx, redisClient, t.Name(), opts.HeartbeatInterval, logger)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	var wg sync.WaitGroup
	queueName := queue.QueueName(t.Name())

	for i := 0; i < opts.Concurrency; i++ {
		wg.Add(1)
		go func(workerNum int) {
			defer wg.Done()
			workerLoop(ctx, workerNum, t, redisClient, queueName, workerID, logger)
		}(i)
	}

	logger.Info("worker started",
		"workers", opts.Concurrency,
		"queue", queueName,
	)

	sig := <-sigChan
	logger.Info("received signal, initiating graceful shutdown", "signal", sig)
	cancel()

	doneChan := make(chan struct{})
	go func() {
		wg.Wait()
		close(doneChan)
	}()

	select {
	case <-doneChan:
		logger.Info("worker shutdown complete")
	case <-time.After(opts.ShutdownTimeout):
		logger.Warn("worker shutdown timeout exceeded", "timeout", opts.ShutdownTimeout)
	}

	return nil
}

// registerTool publishes the tool's discovery record, schemas serialized as
// JSON text.
func registerTool(ctx context.Context, client queue.Client, t tool.Tool, logger *slog.Logger) error {
	inputSchema, err := json.Marshal(t.InputSchema())
	if err != nil {
		return fmt.Errorf("failed to marshal input schema: %w", err)
	}
	outputSchema, err := json.Marshal(t.OutputSchema())
	if err != nil {
		return fmt.Errorf("failed to marshal output schema: %w", err)
	}

	meta := queue.ToolMeta{
		Name:         t.Name(),
		Version:      t.Version(),
		Description:  t.Description(),
		InputSchema:  string(inputSchema),
		OutputSchema: string(outputSchema),
		Tags:         t.Tags(),
		WorkerCount:  0, // tracked by the workers counter, not here
	}

	logger.Info("registering tool",
		"name", meta.Name,
		"version", meta.Version,
	)

	if err := client.RegisterTool(ctx, meta); err != nil {
		logger.Error("failed to register tool", "error", err)
		return fmt.Errorf("failed to register tool: %w", err)
	}

	logger.Info("tool registered successfully")
	return nil
}

// runHeartbeat refreshes the tool's health key every interval until the
// context ends. Misses are transient, so they log at debug.
func runHeartbeat(ctx context.Context, client queue.Client, toolName string, interval time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Debug("heartbeat goroutine started")

	for {
		select {
		case <-ctx.Done():
			logger.Debug("heartbeat goroutine stopped")
			return
		case <-ticker.C:
			if err := client.Heartbeat(ctx, toolName); err != nil {
				logger.Debug("heartbeat failed", "error", err)
			}
		}
	}
}

// workerLoop pops, executes, and publishes until the context ends. Pop
// errors other than cancellation are logged and the loop keeps going.
func workerLoop(ctx context.Context, workerNum int, t tool.Tool, client queue.Client, queueName, workerID string, logger *slog.Logger) {
	logger = logger.With("worker_num", workerNum)
	logger.Debug("worker loop started", "queue", queueName)

	for {
		select {
		case <-ctx.Done():
			logger.Debug("worker loop stopped", "reason", "context_cancelled")
			return
		default:
		}

		item, err := client.Pop(ctx, queueName)
		if err != nil {
			if ctx.Err() != nil {
				logger.Debug("worker loop stopped", "reason", "context_error")
				return
			}
			logger.Error("failed to pop work item", "error", err)
			continue
		}
		if item == nil {
			continue
		}

		logger.Info("received work item",
			"job_id", item.JobID,
			"index", item.Index,
			"total", item.Total,
			"tool", item.Tool,
		)

		result := processWorkItem(ctx, t, *item, workerID, logger)

		if err := client.Publish(ctx, queue.ResultChannel(item.JobID), result); err != nil {
			logger.Error("failed to publish result", "error", err)
		}
	}
}

// processWorkItem executes one item. It always produces a Result; failures
// travel back to the dispatcher in Result.Error rather than as returned
// errors.
func processWorkItem(ctx context.Context, t tool.Tool, item queue.WorkItem, workerID string, logger *slog.Logger) queue.Result {
	// Join the dispatcher's trace when the item carried trace context.
	ctx = telemetry.CreateParentContext(ctx, item.TraceID, item.SpanID)

	result := queue.Result{
		JobID:     item.JobID,
		Index:     item.Index,
		WorkerID:  workerID,
		StartedAt: time.Now().UnixMilli(),
	}

	if item.Input == nil {
		result.Error = "work item has no input"
		result.CompletedAt = time.Now().UnixMilli()
		logger.Error("work item has no input", "job_id", item.JobID)
		return result
	}

	output, err := t.Execute(ctx, item.Input)
	if err != nil {
		result.Error = err.Error()
		result.CompletedAt = time.Now().UnixMilli()
		logger.Error("tool execution failed", "error", err)
		return result
	}

	result.Output = output
	result.CompletedAt = time.Now().UnixMilli()

	logger.Info("work item completed",
		"job_id", item.JobID,
		"index", item.Index,
		"duration_ms", result.CompletedAt-result.StartedAt,
	)

	return result
}

// generateWorkerID builds hostname-pid-uuid so worker IDs stay readable in
// logs while remaining unique across restarts.
func generateWorkerID() string {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	id := uuid.New().String()[:8]

	return fmt.Sprintf("%s-%d-%s", hostname, os.Getpid(), id)
}

// applyComponentConfig fills zero-valued Options from the component.yaml
// worker section, falling back to the package defaults when cfg is nil.
func applyComponentConfig(opts Options, cfg *component.Config) Options {
	var worker *component.WorkerConfig
	if cfg != nil {
		worker = cfg.Worker
	}

	if opts.Concurrency <= 0 {
		opts.Concurrency = worker.GetConcurrency()
	}
	if opts.ShutdownTimeout == 0 {
		opts.ShutdownTimeout = worker.GetShutdownTimeout()
	}
	if opts.HeartbeatInterval == 0 {
		opts.HeartbeatInterval = worker.GetHeartbeatInterval()
	}

	return opts
}
