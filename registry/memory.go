package registry

import (
	"context"
	"fmt"
	"sync"
)

// Memory is an in-process Registry for single-binary deployments and tests.
// Entries have no lease: they stay registered until Deregister or Close.
//
// Thread-safety: all methods are safe for concurrent use.
type Memory struct {
	mu       sync.RWMutex
	services map[string]ServiceInfo // key: kind/name/instance-id
	watchers map[string][]*memoryWatcher
	closed   bool
}

type memoryWatcher struct {
	ch   chan []ServiceInfo
	done chan struct{}
}

// NewMemory creates an empty in-process registry.
func NewMemory() *Memory {
	return &Memory{
		services: make(map[string]ServiceInfo),
		watchers: make(map[string][]*memoryWatcher),
	}
}

// Register adds this service instance to the registry. Re-registering the
// same InstanceID updates the existing entry.
func (m *Memory) Register(_ context.Context, info ServiceInfo) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return fmt.Errorf("registry is closed")
	}

	m.services[memoryKey(info.Kind, info.Name, info.InstanceID)] = info
	m.notifyLocked(info.Kind, info.Name)
	return nil
}

// Deregister removes this service instance. Deregistering an unknown
// instance is a no-op.
func (m *Memory) Deregister(_ context.Context, info ServiceInfo) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return fmt.Errorf("registry is closed")
	}

	key := memoryKey(info.Kind, info.Name, info.InstanceID)
	if _, exists := m.services[key]; !exists {
		return nil
	}
	delete(m.services, key)
	m.notifyLocked(info.Kind, info.Name)
	return nil
}

// Discover finds all instances of a service by kind and name.
func (m *Memory) Discover(_ context.Context, kind, name string) ([]ServiceInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, fmt.Errorf("registry is closed")
	}
	return m.collectLocked(kind, name), nil
}

// DiscoverAll finds all instances of a given kind.
func (m *Memory) DiscoverAll(_ context.Context, kind string) ([]ServiceInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, fmt.Errorf("registry is closed")
	}

	out := make([]ServiceInfo, 0)
	for _, info := range m.services {
		if info.Kind == kind {
			out = append(out, info)
		}
	}
	return out, nil
}

// Watch returns a channel that receives the instance list for kind/name
// whenever it changes. The initial state is sent immediately. The channel is
// closed when the context is canceled or the registry is closed.
func (m *Memory) Watch(ctx context.Context, kind, name string) (<-chan []ServiceInfo, error) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil, fmt.Errorf("registry is closed")
	}

	w := &memoryWatcher{
		ch:   make(chan []ServiceInfo, 8),
		done: make(chan struct{}),
	}
	scope := kind + "/" + name
	m.watchers[scope] = append(m.watchers[scope], w)
	w.ch <- m.collectLocked(kind, name)
	m.mu.Unlock()

	go func() {
		select {
		case <-ctx.Done():
			m.removeWatcher(scope, w)
		case <-w.done:
		}
	}()

	return w.ch, nil
}

// Close removes all entries and closes all watch channels.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	m.closed = true
	m.services = make(map[string]ServiceInfo)
	for _, ws := range m.watchers {
		for _, w := range ws {
			close(w.done)
			close(w.ch)
		}
	}
	m.watchers = make(map[string][]*memoryWatcher)
	return nil
}

func (m *Memory) collectLocked(kind, name string) []ServiceInfo {
	out := make([]ServiceInfo, 0)
	for _, info := range m.services {
		if info.Kind == kind && info.Name == name {
			out = append(out, info)
		}
	}
	return out
}

// notifyLocked pushes the current instance list to every watcher of the
// kind/name scope. Slow watchers with a full buffer miss intermediate
// updates; they always receive a later state.
func (m *Memory) notifyLocked(kind, name string) {
	scope := kind + "/" + name
	instances := m.collectLocked(kind, name)
	for _, w := range m.watchers[scope] {
		select {
		case w.ch <- instances:
		default:
		}
	}
}

func (m *Memory) removeWatcher(scope string, target *memoryWatcher) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return
	}
	ws := m.watchers[scope]
	for i, w := range ws {
		if w == target {
			m.watchers[scope] = append(ws[:i], ws[i+1:]...)
			close(w.done)
			close(w.ch)
			return
		}
	}
}

func memoryKey(kind, name, instanceID string) string {
	return kind + "/" + name + "/" + instanceID
}
