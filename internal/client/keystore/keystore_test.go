package keystore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileStore_LoadEmptyWhenMissing(t *testing.T) {
	s := NewFileStore(t.TempDir())

	token, err := s.Load()
	require.NoError(t, err)
	require.Empty(t, token)
}

func TestFileStore_SaveLoadClear(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(dir)

	require.NoError(t, s.Save("abc123"))

	token, err := s.Load()
	require.NoError(t, err)
	require.Equal(t, "abc123", token)

	info, err := os.Stat(filepath.Join(dir, "token"))
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	require.NoError(t, s.Clear())
	token, err = s.Load()
	require.NoError(t, err)
	require.Empty(t, token)
}

func TestFileStore_SaveCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", ".siap")
	s := NewFileStore(dir)

	require.NoError(t, s.Save("tok"))
	token, err := s.Load()
	require.NoError(t, err)
	require.Equal(t, "tok", token)
}

func TestFileStore_ClearTwiceIsFine(t *testing.T) {
	s := NewFileStore(t.TempDir())
	require.NoError(t, s.Clear())
	require.NoError(t, s.Clear())
}

func TestFileStore_SaveOverwrites(t *testing.T) {
	s := NewFileStore(t.TempDir())
	require.NoError(t, s.Save("first"))
	require.NoError(t, s.Save("second"))

	token, err := s.Load()
	require.NoError(t, err)
	require.Equal(t, "second", token)
}
