package queue

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client is the queue surface the dispatcher and workers share.
type Client interface {
	// Push appends a work item to a queue.
	Push(ctx context.Context, queue string, item WorkItem) error

	// Pop takes the oldest item from a queue, blocking until one arrives
	// or the context ends.
	Pop(ctx context.Context, queue string) (*WorkItem, error)

	// Publish sends a result on a pub/sub channel.
	Publish(ctx context.Context, channel string, result Result) error

	// Subscribe streams results from a pub/sub channel until the context
	// ends.
	Subscribe(ctx context.Context, channel string) (<-chan Result, error)

	// RegisterTool stores the tool's discovery record and marks it
	// available.
	RegisterTool(ctx context.Context, meta ToolMeta) error

	// ListTools returns the discovery records of every registered tool.
	ListTools(ctx context.Context) ([]ToolMeta, error)

	// Heartbeat refreshes a tool's health key, 30s TTL.
	Heartbeat(ctx context.Context, toolName string) error

	// GetWorkerCount reads how many workers currently serve a tool.
	GetWorkerCount(ctx context.Context, toolName string) (int, error)

	// IncrementWorkerCount bumps the tool's worker counter.
	IncrementWorkerCount(ctx context.Context, toolName string) error

	// DecrementWorkerCount lowers the tool's worker counter.
	DecrementWorkerCount(ctx context.Context, toolName string) error

	// Close releases the Redis connection.
	Close() error
}

// RedisOptions configures the Redis connection. Zero timeouts get defaults
// of 5s connect, 30s read, 5s write.
type RedisOptions struct {
	// URL is the connection string, e.g. "redis://localhost:6379".
	URL string

	// TLS enables encrypted connections when non-nil.
	TLS *tls.Config

	ConnectTimeout time.Duration
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
}

// RedisClient implements Client on go-redis/v9.
type RedisClient struct {
	client *redis.Client
}

// NewRedisClient connects to Redis and verifies the connection with a ping.
func NewRedisClient(opts RedisOptions) (*RedisClient, error) {
	if opts.URL == "" {
		opts.URL = "redis://localhost:6379"
	}

	if opts.ConnectTimeout == 0 {
		opts.ConnectTimeout = 5 * time.Second
	}

	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = 30 * time.Second
	}

	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = 5 * time.Second
	}

	redisOpts, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	redisOpts.TLSConfig = opts.TLS
	redisOpts.DialTimeout = opts.ConnectTimeout
	redisOpts.ReadTimeout = opts.ReadTimeout
	redisOpts.WriteTimeout = opts.WriteTimeout
	// Blocking reads (BRPOP with no timeout) must honor context deadlines,
	// otherwise Pop on an empty queue blocks past cancellation.
	redisOpts.ContextTimeoutEnabled = true

	client := redis.NewClient(redisOpts)

	ctx, cancel := context.WithTimeout(context.Background(), opts.ConnectTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisClient{client: client}, nil
}

func metaKey(tool string) string   { return fmt.Sprintf("tool:%s:meta", tool) }
func healthKey(tool string) string { return fmt.Sprintf("tool:%s:health", tool) }
func workerKey(tool string) string { return fmt.Sprintf("tool:%s:workers", tool) }

// Push appends a work item to a queue.
func (c *RedisClient) Push(ctx context.Context, queue string, item WorkItem) error {
	data, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("failed to marshal work item: %w", err)
	}

	if err := c.client.LPush(ctx, queue, data).Err(); err != nil {
		return fmt.Errorf("failed to push to queue %s: %w", queue, err)
	}

	return nil
}

// Pop blocks on BRPOP until an item arrives or the context ends.
// Cancellation surfaces as the context error so callers can match it.
func (c *RedisClient) Pop(ctx context.Context, queue string) (*WorkItem, error) {
	result, err := c.client.BRPop(ctx, 0, queue).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("failed to pop from queue %s: %w", queue, err)
	}

	// BRPOP answers [queue_name, value].
	if len(result) != 2 {
		return nil, fmt.Errorf("unexpected BRPOP result length: %d", len(result))
	}

	var item WorkItem
	if err := json.Unmarshal([]byte(result[1]), &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal work item: %w", err)
	}

	return &item, nil
}

// Publish sends a result on a pub/sub channel.
func (c *RedisClient) Publish(ctx context.Context, channel string, result Result) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	if err := c.client.Publish(ctx, channel, data).Err(); err != nil {
		return fmt.Errorf("failed to publish to channel %s: %w", channel, err)
	}

	return nil
}

// Subscribe opens the subscription, waits for confirmation, then pumps
// decoded results into the returned channel until the context ends. The
// channel closes when the pump stops; undecodable payloads are skipped.
func (c *RedisClient) Subscribe(ctx context.Context, channel string) (<-chan Result, error) {
	pubsub := c.client.Subscribe(ctx, channel)

	if _, err := pubsub.Receive(ctx); err != nil {
		return nil, fmt.Errorf("failed to subscribe to channel %s: %w", channel, err)
	}

	resultChan := make(chan Result)

	go func() {
		defer close(resultChan)
		defer pubsub.Close()

		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}

				var result Result
				if err := json.Unmarshal([]byte(msg.Payload), &result); err != nil {
					continue
				}

				select {
				case resultChan <- result:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return resultChan, nil
}

// RegisterTool stores the metadata hash and adds the tool to the available
// set. Hash values must be strings, so tags travel as JSON text.
func (c *RedisClient) RegisterTool(ctx context.Context, meta ToolMeta) error {
	tagsJSON, err := json.Marshal(meta.Tags)
	if err != nil {
		return fmt.Errorf("failed to marshal tags: %w", err)
	}

	fields := []interface{}{
		"name", meta.Name,
		"version", meta.Version,
		"description", meta.Description,
		"input_schema", meta.InputSchema,
		"output_schema", meta.OutputSchema,
		"tags", string(tagsJSON),
		"worker_count", strconv.Itoa(meta.WorkerCount),
	}
	if err := c.client.HSet(ctx, metaKey(meta.Name), fields...).Err(); err != nil {
		return fmt.Errorf("failed to set tool metadata: %w", err)
	}

	if err := c.client.SAdd(ctx, "tools:available", meta.Name).Err(); err != nil {
		return fmt.Errorf("failed to add tool to available set: %w", err)
	}

	return nil
}

// ListTools walks the available set and rebuilds each ToolMeta from its
// hash. Tools whose metadata is missing or unreadable are skipped rather
// than failing the listing.
func (c *RedisClient) ListTools(ctx context.Context) ([]ToolMeta, error) {
	toolNames, err := c.client.SMembers(ctx, "tools:available").Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get available tools: %w", err)
	}

	tools := make([]ToolMeta, 0, len(toolNames))

	for _, name := range toolNames {
		metaMap, err := c.client.HGetAll(ctx, metaKey(name)).Result()
		if err != nil || len(metaMap) == 0 {
			continue
		}

		meta := ToolMeta{
			Name:         metaMap["name"],
			Version:      metaMap["version"],
			Description:  metaMap["description"],
			InputSchema:  metaMap["input_schema"],
			OutputSchema: metaMap["output_schema"],
		}

		if tagsStr, ok := metaMap["tags"]; ok {
			var tags []string
			if err := json.Unmarshal([]byte(tagsStr), &tags); err == nil {
				meta.Tags = tags
			}
		}

		if countStr, ok := metaMap["worker_count"]; ok {
			if count, err := strconv.Atoi(countStr); err == nil {
				meta.WorkerCount = count
			}
		}

		tools = append(tools, meta)
	}

	return tools, nil
}

// Heartbeat refreshes the tool's health key with a 30s TTL.
func (c *RedisClient) Heartbeat(ctx context.Context, toolName string) error {
	if err := c.client.Set(ctx, healthKey(toolName), "ok", 30*time.Second).Err(); err != nil {
		return fmt.Errorf("failed to set heartbeat for tool %s: %w", toolName, err)
	}
	return nil
}

// GetWorkerCount reads the worker counter; a missing key means zero.
func (c *RedisClient) GetWorkerCount(ctx context.Context, toolName string) (int, error) {
	countStr, err := c.client.Get(ctx, workerKey(toolName)).Result()
	if err != nil {
		if err == redis.Nil {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get worker count for tool %s: %w", toolName, err)
	}

	count, err := strconv.Atoi(countStr)
	if err != nil {
		return 0, fmt.Errorf("invalid worker count value: %w", err)
	}

	return count, nil
}

// IncrementWorkerCount bumps the tool's worker counter.
func (c *RedisClient) IncrementWorkerCount(ctx context.Context, toolName string) error {
	if err := c.client.Incr(ctx, workerKey(toolName)).Err(); err != nil {
		return fmt.Errorf("failed to increment worker count for tool %s: %w", toolName, err)
	}
	return nil
}

// DecrementWorkerCount lowers the tool's worker counter.
func (c *RedisClient) DecrementWorkerCount(ctx context.Context, toolName string) error {
	if err := c.client.Decr(ctx, workerKey(toolName)).Err(); err != nil {
		return fmt.Errorf("failed to decrement worker count for tool %s: %w", toolName, err)
	}
	return nil
}

// Close releases the Redis connection.
func (c *RedisClient) Close() error {
	return c.client.Close()
}
