package theme

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const oneTheme = `
[[themes]]
value = "one"
type = "light"
`

const twoThemes = `
[[themes]]
value = "one"
type = "light"

[[themes]]
value = "two"
type = "dark"
`

func TestWatcher_ReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "registry.toml")
	require.NoError(t, os.WriteFile(path, []byte(oneTheme), 0644))

	w := NewWatcher(path, nil)
	w.SetPollInterval(10 * time.Millisecond)

	var mu sync.Mutex
	var got *Registry
	w.SetChangeCallback(func(r *Registry) {
		mu.Lock()
		got = r
		mu.Unlock()
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))
	assert.True(t, w.IsRunning())

	require.NoError(t, os.WriteFile(path, []byte(twoThemes), 0644))
	future := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(path, future, future))

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return got != nil && got.Len() == 2
	}, time.Second, 10*time.Millisecond)

	w.Stop()
	assert.False(t, w.IsRunning())
}

func TestWatcher_BundledIsNoop(t *testing.T) {
	w := NewWatcher("", nil)
	require.NoError(t, w.Start(context.Background()))
	assert.False(t, w.IsRunning())
	w.Stop()
}
