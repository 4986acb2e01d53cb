package artifact

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/healthpulse-ai/platform/pkg/common/logger"
)

// Registry is the process-wide owner of loaded model artifacts. It is built
// once at startup, preloads whatever the store already holds, and is handed
// by reference to every component that trains or predicts; there is no
// ambient global model state.
//
// Writers to the same key must be serialized externally; the registry only
// guarantees that readers never observe an in-memory artifact the store has
// not durably accepted.
type Registry struct {
	store Store
	mu    sync.RWMutex
	cache map[string]*Artifact
}

func NewRegistry(store Store) *Registry {
	return &Registry{
		store: store,
		cache: make(map[string]*Artifact),
	}
}

// Preload pulls the named artifacts out of the store into the cache. Keys
// with no stored artifact are skipped silently; the corresponding model is
// simply not trained yet.
func (r *Registry) Preload(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		a, err := r.store.Load(ctx, key)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return fmt.Errorf("preload %s: %w", key, err)
		}
		r.mu.Lock()
		r.cache[key] = a
		r.mu.Unlock()
		logger.Log.WithField("model", key).Info("Model artifact loaded")
	}
	return nil
}

// Get returns the cached artifact for a key. ErrNotFound means the model has
// never been trained (or updated) in this process or any previous one.
func (r *Registry) Get(key string) (*Artifact, error) {
	r.mu.RLock()
	a, ok := r.cache[key]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return a, nil
}

// Put persists the artifact and only then replaces the cached copy, so the
// visible in-memory state always matches the last durable artifact. A store
// failure leaves the previous artifact, on disk and in memory, in effect.
func (r *Registry) Put(ctx context.Context, key string, a *Artifact) error {
	if err := r.store.Save(ctx, key, a); err != nil {
		return err
	}
	r.mu.Lock()
	r.cache[key] = a
	r.mu.Unlock()
	return nil
}
