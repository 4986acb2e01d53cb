package artifact

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FSStore keeps artifacts as JSON files in a directory, one
// "<key>_latest.json" per model. Saves go through a temp file and rename so
// readers never observe a half-written artifact.
type FSStore struct {
	dir string
}

func NewFSStore(dir string) (*FSStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FSStore{dir: dir}, nil
}

func (s *FSStore) Load(_ context.Context, key string) (*Artifact, error) {
	content, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read artifact %s: %w", key, err)
	}
	var a Artifact
	if err := json.Unmarshal(content, &a); err != nil {
		return nil, fmt.Errorf("decode artifact %s: %w", key, err)
	}
	return &a, nil
}

func (s *FSStore) Save(_ context.Context, key string, a *Artifact) error {
	payload, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return fmt.Errorf("encode artifact %s: %w", key, err)
	}

	tmp, err := os.CreateTemp(s.dir, key+"_*.tmp")
	if err != nil {
		return fmt.Errorf("write artifact %s: %w", key, err)
	}
	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write artifact %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write artifact %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), s.path(key)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write artifact %s: %w", key, err)
	}
	return nil
}

func (s *FSStore) path(key string) string {
	return filepath.Join(s.dir, fmt.Sprintf("%s_latest.json", key))
}
