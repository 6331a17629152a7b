package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONPersistence_LoadMissing(t *testing.T) {
	p, err := NewJSONPersistence(filepath.Join(t.TempDir(), "nested", "session.json"))
	require.NoError(t, err)

	u, err := p.Load()
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestJSONPersistence_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	p, err := NewJSONPersistence(path)
	require.NoError(t, err)
	assert.Equal(t, path, p.Path())

	user := testUser("dark")
	require.NoError(t, p.Save(user))

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file should be renamed away")

	loaded, err := p.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, *user, *loaded)
}

func TestJSONPersistence_UnsupportedSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"schema_version": 99}`), 0600))

	p, err := NewJSONPersistence(path)
	require.NoError(t, err)

	_, err = p.Load()
	assert.Error(t, err)
}

func TestJSONPersistence_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0600))

	p, err := NewJSONPersistence(path)
	require.NoError(t, err)

	_, err = p.Load()
	assert.Error(t, err)
}

func TestJSONPersistence_Clear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	p, err := NewJSONPersistence(path)
	require.NoError(t, err)

	require.NoError(t, p.Clear(), "clearing a missing file is fine")
	require.NoError(t, p.Save(testUser("light")))
	require.NoError(t, p.Clear())

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestJSONPersistence_Closed(t *testing.T) {
	p, err := NewJSONPersistence(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, err)
	require.NoError(t, p.Close())

	_, err = p.Load()
	assert.ErrorIs(t, err, ErrPersistenceClosed)
	assert.ErrorIs(t, p.Save(testUser("light")), ErrPersistenceClosed)
	assert.ErrorIs(t, p.Clear(), ErrPersistenceClosed)
}
