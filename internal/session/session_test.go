package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadClear(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	_, err := Load()
	assert.ErrorIs(t, err, ErrNoSession)

	sess := New("tok-123", "user-1")
	require.NoError(t, sess.Save())

	path, err := Path()
	require.NoError(t, err)
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-123", loaded.Token)
	assert.Equal(t, "user-1", loaded.UserID)
	assert.False(t, loaded.CreatedAt.IsZero())

	require.NoError(t, Clear())
	_, err = Load()
	assert.ErrorIs(t, err, ErrNoSession)

	// Clearing again must stay silent.
	require.NoError(t, Clear())
}

func TestLoadEmptyToken(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path, err := Path()
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(`{"token":"","user_id":"u"}`), 0o600))

	_, err = Load()
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestLoadCorruptFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path, err := Path()
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))

	_, err = Load()
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoSession)
}
