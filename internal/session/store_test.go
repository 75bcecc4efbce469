package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token")
	s := NewFileStore(path, "")

	tok, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, tok, "missing file reads as empty")

	require.NoError(t, s.Save("abc.def.ghi"))
	assert.Equal(t, "abc.def.ghi", s.Token())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	require.NoError(t, s.Clear())
	assert.Empty(t, s.Token())
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// Clearing twice is fine.
	require.NoError(t, s.Clear())
}

func TestFileStoreTrimsWhitespace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(path, []byte("  tok\n"), 0o600))
	assert.Equal(t, "tok", NewFileStore(path, "").Token())
}

func TestFileStoreOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(path, []byte("from-file"), 0o600))

	s := NewFileStore(path, "from-env")
	assert.Equal(t, "from-env", s.Token())

	require.NoError(t, s.Clear())
	assert.Empty(t, s.Token(), "clear drops the override and the file")

	s = NewFileStore(path, "from-env")
	require.NoError(t, s.Save("fresh"))
	assert.Equal(t, "fresh", s.Token(), "a saved token supersedes the override")
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore("seed")
	assert.Equal(t, "seed", s.Token())
	require.NoError(t, s.Save("next"))
	tok, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "next", tok)
	require.NoError(t, s.Clear())
	assert.Empty(t, s.Token())
}
