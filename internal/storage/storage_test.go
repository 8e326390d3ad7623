package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFSStore_Put(t *testing.T) {
	root := t.TempDir()
	store := NewFSStore(root)

	key, err := store.Put(context.Background(), "exports/plan.xer", []byte("ERMHDR\t8.4\n"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "exports", "plan.xer"), key)

	content, err := os.ReadFile(key)
	require.NoError(t, err)
	assert.Equal(t, "ERMHDR\t8.4\n", string(content))
}

func TestFSStore_PutOverwrites(t *testing.T) {
	store := NewFSStore(t.TempDir())

	_, err := store.Put(context.Background(), "plan.xml", []byte("first"))
	require.NoError(t, err)
	key, err := store.Put(context.Background(), "plan.xml", []byte("second"))
	require.NoError(t, err)

	content, err := os.ReadFile(key)
	require.NoError(t, err)
	assert.Equal(t, "second", string(content))
}

func TestFSStore_PutFailsOnUnwritableRoot(t *testing.T) {
	// A file where the directory should be makes MkdirAll fail.
	root := t.TempDir()
	blocker := filepath.Join(root, "exports")
	require.NoError(t, os.WriteFile(blocker, []byte("in the way"), 0o644))

	store := NewFSStore(root)
	_, err := store.Put(context.Background(), "exports/plan.xer", []byte("x"))
	require.Error(t, err)
}
