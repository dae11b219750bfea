// Package component loads component.yaml files, the on-disk configuration
// for graph tools and workers. Every section is optional; nil-safe getters
// fill in the documented defaults so callers never branch on missing config.
package component

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is a parsed component.yaml.
type Config struct {
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	Description string `yaml:"description"`

	Tags []string `yaml:"tags,omitempty"`

	// Engine tunes graph construction and retrieval defaults.
	Engine *EngineConfig `yaml:"engine,omitempty"`

	// Redis is shared by the work queue and the redis vector store.
	Redis *RedisConfig `yaml:"redis,omitempty"`

	// Registry configures etcd service registration.
	Registry *RegistryConfig `yaml:"registry,omitempty"`

	// Worker configures queue-based execution.
	Worker *WorkerConfig `yaml:"worker,omitempty"`

	Author     string `yaml:"author,omitempty"`
	License    string `yaml:"license,omitempty"`
	Repository string `yaml:"repository,omitempty"`
}

// EngineConfig holds tunable defaults for graph construction and retrieval.
// Zero or negative values mean "use the default".
type EngineConfig struct {
	// SimilarityThreshold is the minimum cosine similarity for an edge
	// between two documents during construction. Default 0.7.
	SimilarityThreshold float64 `yaml:"similarity_threshold,omitempty"`

	// TopK is the number of seed documents for retrieval. Default 3.
	TopK int `yaml:"top_k,omitempty"`

	// MaxHops is the traversal depth for retrieval. Default 2.
	MaxHops int `yaml:"max_hops,omitempty"`

	// MinScore is the score floor for retrieved documents. Default 0.6.
	MinScore float64 `yaml:"min_score,omitempty"`

	// DefaultEdgeWeight applies when an adjacency entry carries no
	// weight. Default 0.5.
	DefaultEdgeWeight float64 `yaml:"default_edge_weight,omitempty"`
}

func (e *EngineConfig) GetSimilarityThreshold() float64 {
	if e == nil || e.SimilarityThreshold <= 0 {
		return 0.7
	}
	return e.SimilarityThreshold
}

func (e *EngineConfig) GetTopK() int {
	if e == nil || e.TopK <= 0 {
		return 3
	}
	return e.TopK
}

func (e *EngineConfig) GetMaxHops() int {
	if e == nil || e.MaxHops <= 0 {
		return 2
	}
	return e.MaxHops
}

func (e *EngineConfig) GetMinScore() float64 {
	if e == nil || e.MinScore <= 0 {
		return 0.6
	}
	return e.MinScore
}

func (e *EngineConfig) GetDefaultEdgeWeight() float64 {
	if e == nil || e.DefaultEdgeWeight <= 0 {
		return 0.5
	}
	return e.DefaultEdgeWeight
}

// RedisConfig names the Redis instance for queues and vector storage.
type RedisConfig struct {
	// URL is a redis connection string. Default "redis://localhost:6379".
	URL string `yaml:"url,omitempty"`
}

func (r *RedisConfig) GetURL() string {
	if r == nil || r.URL == "" {
		return "redis://localhost:6379"
	}
	return r.URL
}

// RegistryConfig names the etcd cluster for service registration.
type RegistryConfig struct {
	// Endpoints lists etcd endpoints, e.g. ["localhost:2379"].
	Endpoints []string `yaml:"endpoints,omitempty"`

	// Namespace prefixes registry keys. Default "graphmind".
	Namespace string `yaml:"namespace,omitempty"`

	// TTL is the lease duration in seconds. Default 30.
	TTL int `yaml:"ttl,omitempty"`
}

func (r *RegistryConfig) GetNamespace() string {
	if r == nil || r.Namespace == "" {
		return "graphmind"
	}
	return r.Namespace
}

func (r *RegistryConfig) GetTTL() int {
	if r == nil || r.TTL <= 0 {
		return 30
	}
	return r.TTL
}

// WorkerConfig tunes queue-based execution. Durations are Go duration
// strings such as "30s"; unparseable values fall back to the default.
type WorkerConfig struct {
	// Concurrency is the number of worker goroutines. Retrieval tools
	// are I/O-bound on the embedding provider and benefit from more;
	// pure graph mutations rarely need more than 2. Default 4.
	Concurrency int `yaml:"concurrency,omitempty"`

	// ShutdownTimeout bounds the graceful drain. Default "30s".
	ShutdownTimeout string `yaml:"shutdown_timeout,omitempty"`

	// HeartbeatInterval spaces health heartbeats. Default "10s".
	HeartbeatInterval string `yaml:"heartbeat_interval,omitempty"`
}

func (w *WorkerConfig) GetShutdownTimeout() time.Duration {
	if w == nil {
		return 30 * time.Second
	}
	return parseDuration(w.ShutdownTimeout, 30*time.Second)
}

func (w *WorkerConfig) GetHeartbeatInterval() time.Duration {
	if w == nil {
		return 10 * time.Second
	}
	return parseDuration(w.HeartbeatInterval, 10*time.Second)
}

func (w *WorkerConfig) GetConcurrency() int {
	if w == nil || w.Concurrency <= 0 {
		return 4
	}
	return w.Concurrency
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}

// Load parses the component file at path. A directory path is resolved to
// the component.yaml (or component.yml) inside it.
func Load(path string) (*Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat path: %w", err)
	}

	configPath := path
	if info.IsDir() {
		configPath, err = findInDir(path)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

func findInDir(dir string) (string, error) {
	for _, name := range []string{"component.yaml", "component.yml"} {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no component.yaml or component.yml found in %s", dir)
}

// LoadFromDir walks from dir up toward the filesystem root and loads the
// first component file it finds.
func LoadFromDir(dir string) (*Config, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	for {
		config, err := Load(absDir)
		if err == nil {
			return config, nil
		}

		parent := filepath.Dir(absDir)
		if parent == absDir {
			return nil, fmt.Errorf("no component.yaml found in %s or parent directories", dir)
		}
		absDir = parent
	}
}

// LoadFromCurrentDir loads the component file for the working directory,
// searching parent directories the same way LoadFromDir does.
func LoadFromCurrentDir() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}
	return LoadFromDir(cwd)
}
