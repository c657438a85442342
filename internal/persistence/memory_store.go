package persistence

import (
	"context"
	"sort"
	"sync"

	"github.com/petrijr/crewcanvas/pkg/api"
)

// MemoryStore is a goroutine-safe Store backed by a map. Non-durable;
// best for tests and local development.
type MemoryStore struct {
	mu     sync.RWMutex
	graphs map[string]memoryGraph
}

type memoryGraph struct {
	nodes []api.Node
	edges []api.Edge
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{graphs: make(map[string]memoryGraph)}
}

var _ Store = (*MemoryStore)(nil)

func (s *MemoryStore) SaveGraph(ctx context.Context, id string, nodes []api.Node, edges []api.Edge) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.graphs[id] = memoryGraph{
		nodes: api.CloneNodes(nodes),
		edges: api.CloneEdges(edges),
	}
	return nil
}

func (s *MemoryStore) LoadGraph(ctx context.Context, id string) ([]api.Node, []api.Edge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.graphs[id]
	if !ok {
		return nil, nil, ErrGraphNotFound
	}
	return api.CloneNodes(g.nodes), api.CloneEdges(g.edges), nil
}

func (s *MemoryStore) ListGraphs(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.graphs))
	for id := range s.graphs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *MemoryStore) DeleteGraph(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.graphs[id]; !ok {
		return ErrGraphNotFound
	}
	delete(s.graphs, id)
	return nil
}
