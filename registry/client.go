package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	clientv3 "go.etcd.io/etcd/client/v3"
)

// Default etcd connection and lease settings.
const (
	defaultNamespace   = "graphmind"
	defaultLeaseTTL    = 30
	dialTimeout        = 5 * time.Second
	healthCheckTimeout = 3 * time.Second
)

// EndpointsEnvVar names the environment variable read by NewClientFromEnv.
const EndpointsEnvVar = "GRAPHMIND_REGISTRY_ENDPOINTS"

// Client implements Registry on top of etcd, making tool and worker
// instances discoverable across processes.
//
// Every registered instance is stored under a leased key; a background
// goroutine renews the lease every TTL/3 seconds, so entries of crashed
// processes disappear on their own once the lease expires.
//
// All methods are safe for concurrent use.
type Client struct {
	etcd      *clientv3.Client
	namespace string
	ttl       int

	mu     sync.RWMutex
	leases map[string]clientv3.LeaseID // instance ID -> lease
	stops  map[string]context.CancelFunc
	wg     sync.WaitGroup
	closed bool
	done   chan struct{}
}

// NewClient connects to the etcd cluster described by cfg and verifies
// reachability before returning. Close must be called to stop the lease
// renewal goroutines and release the connection.
func NewClient(cfg Config) (*Client, error) {
	if len(cfg.Endpoints) == 0 {
		return nil, fmt.Errorf("registry: endpoints cannot be empty")
	}

	namespace := cfg.Namespace
	if namespace == "" {
		namespace = defaultNamespace
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultLeaseTTL
	}

	tlsConfig, err := clientTLS(cfg.TLS)
	if err != nil {
		return nil, err
	}

	etcd, err := clientv3.New(clientv3.Config{
		Endpoints:   cfg.Endpoints,
		DialTimeout: dialTimeout,
		TLS:         tlsConfig,
	})
	if err != nil {
		return nil, fmt.Errorf("registry: create etcd client: %w", err)
	}

	// clientv3.New does not dial eagerly; issue a read so a bad
	// endpoint fails here rather than on the first Register.
	ctx, cancel := context.WithTimeout(context.Background(), healthCheckTimeout)
	defer cancel()
	if _, err := etcd.Get(ctx, "/"+namespace+"/health"); err != nil && err != context.DeadlineExceeded {
		etcd.Close()
		return nil, fmt.Errorf("registry: etcd unreachable: %w", err)
	}

	return &Client{
		etcd:      etcd,
		namespace: namespace,
		ttl:       ttl,
		leases:    make(map[string]clientv3.LeaseID),
		stops:     make(map[string]context.CancelFunc),
		done:      make(chan struct{}),
	}, nil
}

// NewClientFromEnv creates a client from the comma-separated endpoint list in
// GRAPHMIND_REGISTRY_ENDPOINTS:
//
//	GRAPHMIND_REGISTRY_ENDPOINTS=localhost:2379,localhost:2380
//
// When the variable is unset it returns (nil, nil): the component runs fine
// without a registry, it just isn't discoverable by other processes.
func NewClientFromEnv() (*Client, error) {
	raw := os.Getenv(EndpointsEnvVar)
	if raw == "" {
		return nil, nil
	}

	endpoints := strings.Split(raw, ",")
	for i, ep := range endpoints {
		endpoints[i] = strings.TrimSpace(ep)
	}

	return NewClient(Config{Endpoints: endpoints})
}

// Register writes the instance under a leased key, making it discoverable
// immediately. A goroutine renews the lease until Deregister or Close;
// re-registering the same InstanceID replaces the entry and restarts renewal.
func (c *Client) Register(ctx context.Context, info ServiceInfo) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return fmt.Errorf("registry: client is closed")
	}

	if stop, ok := c.stops[info.InstanceID]; ok {
		stop()
		delete(c.stops, info.InstanceID)
	}

	lease, err := c.etcd.Grant(ctx, int64(c.ttl))
	if err != nil {
		return fmt.Errorf("registry: grant lease: %w", err)
	}

	data, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("registry: marshal service info: %w", err)
	}

	key := c.instanceKey(info.Kind, info.Name, info.InstanceID)
	if _, err := c.etcd.Put(ctx, key, string(data), clientv3.WithLease(lease.ID)); err != nil {
		return fmt.Errorf("registry: register %s: %w", key, err)
	}

	c.leases[info.InstanceID] = lease.ID

	renewCtx, stop := context.WithCancel(context.Background())
	c.stops[info.InstanceID] = stop

	c.wg.Add(1)
	go c.renewLease(renewCtx, lease.ID, info.InstanceID)

	return nil
}

// Deregister revokes the instance's lease, which deletes its entry at once,
// and stops the renewal goroutine. Unknown instances are a no-op.
func (c *Client) Deregister(ctx context.Context, info ServiceInfo) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return fmt.Errorf("registry: client is closed")
	}

	if stop, ok := c.stops[info.InstanceID]; ok {
		stop()
		delete(c.stops, info.InstanceID)
	}

	lease, ok := c.leases[info.InstanceID]
	if !ok {
		return nil
	}

	if _, err := c.etcd.Revoke(ctx, lease); err != nil {
		return fmt.Errorf("registry: revoke lease: %w", err)
	}
	delete(c.leases, info.InstanceID)

	return nil
}

// Discover finds all live instances of a service by kind and name, in
// arbitrary order. The slice is empty when nothing is registered.
func (c *Client) Discover(ctx context.Context, kind, name string) ([]ServiceInfo, error) {
	if c.isClosed() {
		return nil, fmt.Errorf("registry: client is closed")
	}
	return c.list(ctx, c.servicePrefix(kind, name))
}

// DiscoverAll finds all live instances of a given kind.
func (c *Client) DiscoverAll(ctx context.Context, kind string) ([]ServiceInfo, error) {
	if c.isClosed() {
		return nil, fmt.Errorf("registry: client is closed")
	}
	return c.list(ctx, c.kindPrefix(kind))
}

func (c *Client) list(ctx context.Context, prefix string) ([]ServiceInfo, error) {
	resp, err := c.etcd.Get(ctx, prefix, clientv3.WithPrefix())
	if err != nil {
		return nil, fmt.Errorf("registry: discover %s: %w", prefix, err)
	}

	instances := make([]ServiceInfo, 0, len(resp.Kvs))
	for _, kv := range resp.Kvs {
		var info ServiceInfo
		if err := json.Unmarshal(kv.Value, &info); err != nil {
			// Skip entries written by incompatible versions.
			continue
		}
		instances = append(instances, info)
	}
	return instances, nil
}

// Watch emits the current instance list whenever a service registers,
// deregisters, or its lease expires. The initial state is sent immediately.
// The channel closes when the context is cancelled or the client is closed.
func (c *Client) Watch(ctx context.Context, kind, name string) (<-chan []ServiceInfo, error) {
	if c.isClosed() {
		return nil, fmt.Errorf("registry: client is closed")
	}

	ch := make(chan []ServiceInfo, 1)

	current, err := c.Discover(ctx, kind, name)
	if err != nil {
		return nil, err
	}
	ch <- current

	events := c.etcd.Watch(ctx, c.servicePrefix(kind, name), clientv3.WithPrefix())

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer close(ch)

		for {
			select {
			case <-ctx.Done():
				return
			case <-c.done:
				return
			case resp, ok := <-events:
				if !ok || resp.Err() != nil {
					return
				}

				// Re-list after any change rather than folding the
				// event delta into local state.
				current, err := c.Discover(context.Background(), kind, name)
				if err != nil {
					continue
				}

				select {
				case ch <- current:
				case <-ctx.Done():
					return
				case <-c.done:
					return
				}
			}
		}
	}()

	return ch, nil
}

// Close stops all lease renewal and watch goroutines and closes the etcd
// connection. Further method calls return errors.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true

	for _, stop := range c.stops {
		stop()
	}
	c.stops = make(map[string]context.CancelFunc)

	close(c.done)
	c.mu.Unlock()

	c.wg.Wait()
	return c.etcd.Close()
}

func (c *Client) isClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

// renewLease keeps the instance's lease alive with a KeepAliveOnce every
// TTL/3 seconds. It stops when cancelled, on Close, or once the lease is
// gone (revoked or expired), at which point the instance is forgotten.
func (c *Client) renewLease(ctx context.Context, lease clientv3.LeaseID, instanceID string) {
	defer c.wg.Done()

	ticker := time.NewTicker(time.Duration(c.ttl) * time.Second / 3)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-c.done:
			return
		case <-ticker.C:
			if _, err := c.etcd.KeepAliveOnce(context.Background(), lease); err != nil {
				c.mu.Lock()
				delete(c.leases, instanceID)
				delete(c.stops, instanceID)
				c.mu.Unlock()
				return
			}
		}
	}
}

// Key layout: /namespace/kind/name/instance-id.

func (c *Client) instanceKey(kind, name, instanceID string) string {
	return fmt.Sprintf("/%s/%s/%s/%s", c.namespace, kind, name, instanceID)
}

func (c *Client) servicePrefix(kind, name string) string {
	return fmt.Sprintf("/%s/%s/%s/", c.namespace, kind, name)
}

func (c *Client) kindPrefix(kind string) string {
	return fmt.Sprintf("/%s/%s/", c.namespace, kind)
}
