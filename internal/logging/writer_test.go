package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRotatingWriter_AppendsToExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grounder.log")
	require.NoError(t, os.WriteFile(path, []byte("old line\n"), 0o644))

	w, err := NewRotatingWriter(path, 1, 2)
	require.NoError(t, err)
	_, err = w.Write([]byte("new line\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "old line\nnew line\n", string(data))
}

func TestRotatingWriter_RotatesAtMaxSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grounder.log")
	w, err := NewRotatingWriter(path, 1, 3)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	chunk := bytes.Repeat([]byte("x"), 600*1024)
	_, err = w.Write(chunk)
	require.NoError(t, err)
	// Second chunk would exceed 1MB, so the first file rotates away.
	_, err = w.Write(chunk)
	require.NoError(t, err)

	rotated, err := os.Stat(path + ".1")
	require.NoError(t, err)
	assert.EqualValues(t, len(chunk), rotated.Size())

	current, err := os.Stat(path)
	require.NoError(t, err)
	assert.EqualValues(t, len(chunk), current.Size())
}

func TestRotatingWriter_PrunesBeyondMaxFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "grounder.log")
	require.NoError(t, os.WriteFile(path+".1", []byte("gen1"), 0o644))
	require.NoError(t, os.WriteFile(path+".2", []byte("gen2"), 0o644))
	require.NoError(t, os.WriteFile(path+".3", []byte("gen3"), 0o644))

	w, err := NewRotatingWriter(path, 1, 2)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	chunk := bytes.Repeat([]byte("x"), 600*1024)
	_, err = w.Write(chunk)
	require.NoError(t, err)
	_, err = w.Write(chunk)
	require.NoError(t, err)

	// gen1 shifted to .2, older generations pruned.
	data, err := os.ReadFile(path + ".2")
	require.NoError(t, err)
	assert.Equal(t, "gen1", string(data))

	_, err = os.Stat(path + ".3")
	assert.True(t, os.IsNotExist(err))
}

func TestRotatingWriter_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "logs", "grounder.log")
	w, err := NewRotatingWriter(path, 0, 0)
	require.NoError(t, err)
	assert.NoError(t, w.Close())
}
