package artifact

import (
	"context"
	"encoding/json"
	"sync"
)

// MemStore is an in-memory Store for tests and ephemeral deployments.
// Artifacts round-trip through JSON so it exercises the same serialization
// path as the durable stores.
type MemStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemStore() *MemStore {
	return &MemStore{data: make(map[string][]byte)}
}

func (s *MemStore) Load(_ context.Context, key string) (*Artifact, error) {
	s.mu.RLock()
	payload, ok := s.data[key]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	var a Artifact
	if err := json.Unmarshal(payload, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *MemStore) Save(_ context.Context, key string, a *Artifact) error {
	payload, err := json.Marshal(a)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.data[key] = payload
	s.mu.Unlock()
	return nil
}
