package vectorstore

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/graphmind-ai/sdk/similarity"
)

// RedisOptions configures the Redis connection for RedisStore.
type RedisOptions struct {
	// URL is the Redis connection string (e.g., "redis://localhost:6379").
	URL string

	// TLS configuration for secure connections.
	TLS *tls.Config

	// KeyPrefix namespaces all keys written by this store. Default "graphmind".
	KeyPrefix string

	// ConnectTimeout is the maximum time to wait for connection establishment.
	ConnectTimeout time.Duration
}

// RedisStore is a Redis-backed Store implementation. Items are stored as
// JSON payloads in one hash per namespace; searches load the namespace and
// score candidates client-side. Suitable for the modest corpus sizes the
// O(n^2) relationship builder already imposes.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a Redis-backed vector store and verifies
// connectivity with a ping.
func NewRedisStore(opts RedisOptions) (*RedisStore, error) {
	if opts.URL == "" {
		opts.URL = "redis://localhost:6379"
	}
	if opts.KeyPrefix == "" {
		opts.KeyPrefix = "graphmind"
	}
	if opts.ConnectTimeout == 0 {
		opts.ConnectTimeout = 5 * time.Second
	}

	redisOpts, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse Redis URL: %v", ErrStorageFailed, err)
	}
	redisOpts.TLSConfig = opts.TLS
	redisOpts.DialTimeout = opts.ConnectTimeout

	client := redis.NewClient(redisOpts)

	ctx, cancel := context.WithTimeout(context.Background(), opts.ConnectTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to connect to Redis: %v", ErrStorageFailed, err)
	}

	return &RedisStore{client: client, prefix: opts.KeyPrefix}, nil
}

// NewRedisStoreFromClient wraps an existing Redis client. Used by tests.
func NewRedisStoreFromClient(client *redis.Client, keyPrefix string) *RedisStore {
	if keyPrefix == "" {
		keyPrefix = "graphmind"
	}
	return &RedisStore{client: client, prefix: keyPrefix}
}

func (s *RedisStore) key(namespace string) string {
	return fmt.Sprintf("%s:vectors:%s", s.prefix, namespace)
}

// Upsert stores items as JSON fields in the namespace hash.
func (s *RedisStore) Upsert(ctx context.Context, namespace string, items []Item) error {
	if len(items) == 0 {
		return nil
	}

	fields := make([]any, 0, len(items)*2)
	for i, item := range items {
		if item.ID == "" {
			return fmt.Errorf("%w: item %d has no ID", ErrInvalidItem, i)
		}
		if len(item.Vector) == 0 {
			return fmt.Errorf("%w: item %q has no vector", ErrInvalidItem, item.ID)
		}
		data, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("%w: failed to marshal item %q: %v", ErrStorageFailed, item.ID, err)
		}
		fields = append(fields, item.ID, data)
	}

	if err := s.client.HSet(ctx, s.key(namespace), fields...).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageFailed, err)
	}
	return nil
}

// Search loads the namespace hash and scores every item client-side.
func (s *RedisStore) Search(ctx context.Context, namespace string, vector []float64, topK int, minScore float64) ([]Match, error) {
	payloads, err := s.client.HGetAll(ctx, s.key(namespace)).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageFailed, err)
	}

	matches := make([]Match, 0, len(payloads))
	for id, payload := range payloads {
		var item Item
		if err := json.Unmarshal([]byte(payload), &item); err != nil {
			return nil, fmt.Errorf("%w: corrupt item %q: %v", ErrStorageFailed, id, err)
		}
		score, err := similarity.Cosine(vector, item.Vector)
		if err != nil {
			return nil, err
		}
		if score < minScore {
			continue
		}
		matches = append(matches, Match{
			ID:       item.ID,
			Content:  item.Content,
			Metadata: item.Metadata,
			Score:    score,
		})
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].ID < matches[j].ID
	})
	if topK > 0 && len(matches) > topK {
		matches = matches[:topK]
	}
	return matches, nil
}

// GetByID retrieves a single item from the namespace hash.
func (s *RedisStore) GetByID(ctx context.Context, namespace, id string) (*Item, error) {
	payload, err := s.client.HGet(ctx, s.key(namespace), id).Result()
	if err == redis.Nil {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageFailed, err)
	}

	var item Item
	if err := json.Unmarshal([]byte(payload), &item); err != nil {
		return nil, fmt.Errorf("%w: corrupt item %q: %v", ErrStorageFailed, id, err)
	}
	return &item, nil
}

// Delete removes a single item from the namespace hash.
func (s *RedisStore) Delete(ctx context.Context, namespace, id string) error {
	removed, err := s.client.HDel(ctx, s.key(namespace), id).Result()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorageFailed, err)
	}
	if removed == 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return nil
}

// Close closes the underlying Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
