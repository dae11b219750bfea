package vectorstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/graphmind-ai/sdk/similarity"
)

// MemoryStore is an in-memory Store implementation that scores candidates
// with a full cosine scan. It is the default backend and the reference
// implementation for tests.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]map[string]Item // namespace -> id -> item
}

// NewMemoryStore creates an empty in-memory vector store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]map[string]Item)}
}

// Upsert stores items in a namespace, replacing items with the same ID.
func (s *MemoryStore) Upsert(_ context.Context, namespace string, items []Item) error {
	for i, item := range items {
		if item.ID == "" {
			return fmt.Errorf("%w: item %d has no ID", ErrInvalidItem, i)
		}
		if len(item.Vector) == 0 {
			return fmt.Errorf("%w: item %q has no vector", ErrInvalidItem, item.ID)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	ns, ok := s.items[namespace]
	if !ok {
		ns = make(map[string]Item)
		s.items[namespace] = ns
	}
	for _, item := range items {
		ns[item.ID] = cloneItem(item)
	}
	return nil
}

// Search scans the namespace and returns the topK closest items above minScore.
func (s *MemoryStore) Search(_ context.Context, namespace string, vector []float64, topK int, minScore float64) ([]Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ns, ok := s.items[namespace]
	if !ok {
		return nil, nil
	}

	matches := make([]Match, 0, len(ns))
	for _, item := range ns {
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
			Metadata: cloneMetadata(item.Metadata),
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

// GetByID retrieves a single item. Returns ErrNotFound if absent.
func (s *MemoryStore) GetByID(_ context.Context, namespace, id string) (*Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ns, ok := s.items[namespace]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	item, ok := ns[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	clone := cloneItem(item)
	return &clone, nil
}

// Delete removes a single item. Returns ErrNotFound if absent.
func (s *MemoryStore) Delete(_ context.Context, namespace, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ns, ok := s.items[namespace]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	if _, ok := ns[id]; !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	delete(ns, id)
	return nil
}

func cloneItem(item Item) Item {
	clone := Item{
		ID:       item.ID,
		Content:  item.Content,
		Vector:   append([]float64(nil), item.Vector...),
		Metadata: cloneMetadata(item.Metadata),
	}
	return clone
}

func cloneMetadata(meta map[string]any) map[string]any {
	if meta == nil {
		return nil
	}
	clone := make(map[string]any, len(meta))
	for k, v := range meta {
		clone[k] = v
	}
	return clone
}
