// Package registry tracks which tool and worker instances are currently
// running so that other processes can find them.
//
// Two implementations share one interface: Memory keeps entries in-process
// for single-binary deployments and tests, and Client stores them in etcd
// for distributed setups. In etcd mode every entry is tied to a lease, so a
// crashed instance disappears on its own once the lease expires.
package registry

import (
	"context"
	"time"
)

// ServiceInfo is one running instance of a component. Several instances of
// the same component may be registered at once; InstanceID tells them apart.
type ServiceInfo struct {
	// Kind is the component type, "tool" or "worker".
	Kind string `json:"kind"`

	// Name is the component name, such as "query-graph".
	Name string `json:"name"`

	// Version is the component's semantic version.
	Version string `json:"version"`

	// InstanceID uniquely identifies this instance, usually a UUID.
	InstanceID string `json:"instance_id"`

	// Endpoint is where the instance can be reached: "host:port" for TCP
	// or "unix:///path" for a Unix socket.
	Endpoint string `json:"endpoint"`

	// Metadata carries free-form attributes, for example the tool's tags
	// or the graph namespaces an instance serves.
	Metadata map[string]string `json:"metadata"`

	// StartedAt is when the instance came up.
	StartedAt time.Time `json:"started_at"`
}

// Registry registers instances and answers discovery queries. All methods
// are safe for concurrent use.
//
//	reg, _ := registry.NewClient(cfg)
//	defer reg.Close()
//
//	info := registry.ServiceInfo{
//		Kind:       "tool",
//		Name:       "query-graph",
//		InstanceID: uuid.New().String(),
//		Endpoint:   "localhost:50051",
//		StartedAt:  time.Now(),
//	}
//	reg.Register(ctx, info)
//	defer reg.Deregister(ctx, info)
type Registry interface {
	// Register makes the instance discoverable. Registering the same
	// InstanceID again overwrites the existing entry.
	Register(ctx context.Context, info ServiceInfo) error

	// Deregister removes the instance. Removing an instance that is not
	// registered is a no-op.
	Deregister(ctx context.Context, info ServiceInfo) error

	// Discover lists the instances of one service, in arbitrary order.
	// An empty slice means nothing is registered under that kind and name.
	Discover(ctx context.Context, kind, name string) ([]ServiceInfo, error)

	// DiscoverAll lists every instance of a kind across all names.
	DiscoverAll(ctx context.Context, kind string) ([]ServiceInfo, error)

	// Watch streams the instance list for a service: the current state
	// first, then a fresh list after every register, deregister, or lease
	// expiry. The channel closes when the context ends or the registry
	// is closed.
	Watch(ctx context.Context, kind, name string) (<-chan []ServiceInfo, error)

	// Close stops background goroutines and closes active watch channels.
	// Every other method errors afterwards.
	Close() error
}

// Config configures the etcd-backed Client.
type Config struct {
	// Endpoints lists the etcd endpoints, e.g. ["host1:2379", "host2:2379"].
	Endpoints []string `json:"endpoints"`

	// Namespace prefixes every key; entries live under
	// /{namespace}/{kind}/{name}/{instance-id}. Defaults to "graphmind".
	Namespace string `json:"namespace"`

	// TTL is the lease time-to-live in seconds. An instance that fails to
	// renew within this window drops out of discovery. Defaults to 30.
	TTL int `json:"ttl"`

	// TLS enables mutual TLS toward etcd when non-nil and Enabled.
	TLS *TLSConfig `json:"tls"`
}

// TLSConfig names the PEM files for mutual TLS with etcd. When Enabled is
// false the other fields are ignored; when true all three paths are required.
type TLSConfig struct {
	Enabled bool `json:"enabled"`

	// CertFile is the client certificate.
	CertFile string `json:"cert_file"`

	// KeyFile is the client private key.
	KeyFile string `json:"key_file"`

	// CAFile verifies the etcd server's certificate.
	CAFile string `json:"ca_file"`
}
