package profile

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_Load(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "p.yaml")
	require.NoError(t, os.WriteFile(path, []byte("style: typed\n"), 0o644))

	c, err := NewCache(2)
	require.NoError(t, err)

	p1, err := c.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "typed", p1.Style)
	assert.Equal(t, 1, c.Len())

	p1.Style = "mutated"

	p2, err := c.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "typed", p2.Style, "cached copy must not be shared")

	// A rewrite with a new size and mtime invalidates the entry.
	require.NoError(t, os.WriteFile(path, []byte("style: structural\nworkers: 2\n"), 0o644))
	later := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(path, later, later))

	p3, err := c.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "structural", p3.Style)
	assert.Equal(t, 2, p3.Workers)
}

func TestCache_Eviction(t *testing.T) {
	dir := t.TempDir()

	c, err := NewCache(2)
	require.NoError(t, err)

	for _, name := range []string{"a.yaml", "b.yaml", "c.yaml"} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, nil, 0o644))

		_, err := c.Load(path)
		require.NoError(t, err)
	}

	assert.Equal(t, 2, c.Len())

	c.Purge()
	assert.Equal(t, 0, c.Len())
}

func TestCache_Errors(t *testing.T) {
	_, err := NewCache(0)
	require.Error(t, err)

	c, err := NewCache(1)
	require.NoError(t, err)

	_, err = c.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("nope: 1\n"), 0o644))

	_, err = c.Load(path)
	require.Error(t, err)
	assert.Equal(t, 0, c.Len())
}
