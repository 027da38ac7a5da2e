package client

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"mini_crm/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()

	got, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, got.Token)

	want := Session{Token: "tok", User: models.PublicUser{ID: "u1", Email: "a@b.c"}}
	require.NoError(t, s.Save(want))
	got, _ = s.Load()
	assert.Equal(t, want, got)

	require.NoError(t, s.Clear())
	got, _ = s.Load()
	assert.Equal(t, Session{}, got)
}

func TestFileStore_RoundTripAndPermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	s := NewFileStore(path)

	got, err := s.Load()
	require.NoError(t, err, "missing file is an empty session")
	assert.Empty(t, got.Token)

	want := Session{Token: "tok", User: models.PublicUser{ID: "u1", Email: "a@b.c"}}
	require.NoError(t, s.Save(want))

	info, err := os.Stat(path)
	require.NoError(t, err)
	if runtime.GOOS != "windows" {
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	}

	// a second store over the same file sees the session
	got, err = NewFileStore(path).Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.NoError(t, s.Clear())
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
	require.NoError(t, s.Clear(), "clearing twice is fine")
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := NewFileStore(path).Load()
	assert.Error(t, err)
}
