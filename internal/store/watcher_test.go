package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileWatcher_RehydratesOnExternalWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	p, err := NewJSONPersistence(path)
	require.NoError(t, err)
	s := NewStore(p, nil)
	defer s.Close()
	require.NoError(t, s.SetUser(testUser("light")))

	fw, err := NewFileWatcher(s, path, nil)
	require.NoError(t, err)
	require.NoError(t, fw.Start())
	defer fw.Stop()

	// Another process writes the same file.
	other, err := NewJSONPersistence(path)
	require.NoError(t, err)
	require.NoError(t, other.Save(testUser("dark")))

	assert.Eventually(t, func() bool {
		u := s.User()
		return u != nil && u.Theme.Theme == "dark"
	}, 2*time.Second, 20*time.Millisecond)
}

func TestFileWatcher_StopIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	s := NewStore(nil, nil)
	defer s.Close()

	fw, err := NewFileWatcher(s, path, nil)
	require.NoError(t, err)
	require.NoError(t, fw.Start())
	require.NoError(t, fw.Start())

	assert.NoError(t, fw.Stop())
	assert.NoError(t, fw.Stop())
}
