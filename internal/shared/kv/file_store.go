package kv

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/reshetovitsme/slack-stagnant-watch/internal/shared/errors"
	"github.com/samber/oops"
)

// FileStore implements Store using one file per key. Writes go through
// a temp file and rename so a crash mid-write never leaves a reader
// with a truncated document.
type FileStore struct {
	basePath string
	mu       sync.RWMutex
}

// NewFileStore creates a file-backed store rooted at basePath.
func NewFileStore(basePath string) (*FileStore, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, oops.With("base_path", basePath, "context", "failed to create storage directory").Wrap(err)
	}

	return &FileStore{basePath: basePath}, nil
}

func (s *FileStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ErrKeyNotFound
		}
		return nil, oops.With("key", key, "context", "failed to read key").Wrap(err)
	}

	return data, nil
}

func (s *FileStore) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.path(key)
	tmp, err := os.CreateTemp(s.basePath, key+".*.tmp")
	if err != nil {
		return oops.With("key", key, "context", "failed to create temp file").Wrap(err)
	}

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return oops.With("key", key, "context", "failed to write temp file").Wrap(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return oops.With("key", key, "context", "failed to close temp file").Wrap(err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return oops.With("key", key, "context", "failed to replace key file").Wrap(err)
	}

	return nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.basePath, key+".json")
}
