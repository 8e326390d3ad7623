// Package storage defines the object-storage collaborator the export
// path hands generated interchange text to. The engine never depends on
// storage success: a failed put is reported, not fatal.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// ObjectStore receives generated file content and returns a storage key.
type ObjectStore interface {
	Put(ctx context.Context, key string, content []byte) (string, error)
}

// FSStore is an ObjectStore backed by a local directory.
type FSStore struct {
	root string
}

// NewFSStore creates a store rooted at dir.
func NewFSStore(dir string) *FSStore {
	return &FSStore{root: dir}
}

// Put writes content under root/key, creating directories as needed,
// and returns the absolute path as the storage key.
func (s *FSStore) Put(_ context.Context, key string, content []byte) (string, error) {
	path := filepath.Join(s.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return "", fmt.Errorf("writing export file: %w", err)
	}
	return path, nil
}
