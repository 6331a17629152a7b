package store

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/themeswitch/internal/model"
)

type fakeFetcher struct {
	mu    sync.Mutex
	user  *model.User
	err   error
	calls int
}

func (f *fakeFetcher) GetUser(ctx context.Context) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.user.Clone(), nil
}

func (f *fakeFetcher) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func testUser(theme string) *model.User {
	return &model.User{
		ID:    "user-1",
		Email: "ada@example.com",
		Theme: model.UserTheme{Theme: theme, Palette: model.EmptyPalette},
	}
}

func setTheme(value string) Updater {
	return func(prev *model.User) *model.User {
		if prev == nil {
			return prev
		}
		prev.Theme = prev.Theme.WithTheme(value)
		return prev
	}
}

func TestNewStore(t *testing.T) {
	s := NewStore(nil, nil)
	defer s.Close()

	assert.False(t, s.HasSession())
	assert.Nil(t, s.User())
}

func TestStore_SetUser(t *testing.T) {
	s := NewStore(nil, nil)
	defer s.Close()

	require.NoError(t, s.SetUser(testUser("light")))
	assert.True(t, s.HasSession())
	assert.Equal(t, "light", s.User().Theme.Theme)
}

func TestStore_UserReturnsCopy(t *testing.T) {
	s := NewStore(nil, nil)
	defer s.Close()
	require.NoError(t, s.SetUser(testUser("light")))

	u := s.User()
	u.Theme.Theme = "dark"
	assert.Equal(t, "light", s.User().Theme.Theme)
}

func TestStore_Mutate(t *testing.T) {
	s := NewStore(nil, nil)
	defer s.Close()
	require.NoError(t, s.SetUser(testUser("light")))

	ch := s.Subscribe()

	require.NoError(t, s.Mutate(setTheme("dark"), false))
	assert.Equal(t, "dark", s.User().Theme.Theme)
	assert.Equal(t, model.EmptyPalette, s.User().Theme.Palette, "other fields preserved")

	select {
	case ev := <-ch:
		assert.Equal(t, ChangeTypeMutate, ev.Type)
		assert.Equal(t, "dark", ev.Theme)
	case <-time.After(time.Second):
		t.Fatal("expected change event")
	}
}

func TestStore_Mutate_NoSession(t *testing.T) {
	s := NewStore(nil, nil)
	defer s.Close()

	require.NoError(t, s.Mutate(setTheme("dark"), false))
	assert.Nil(t, s.User())
}

func TestStore_Mutate_WithoutRevalidateDoesNotFetch(t *testing.T) {
	f := &fakeFetcher{user: testUser("light")}
	s := NewStore(nil, f)
	require.NoError(t, s.SetUser(testUser("light")))

	require.NoError(t, s.Mutate(setTheme("dark"), false))
	s.Wait()

	assert.Equal(t, 0, f.Calls())
	assert.Equal(t, "dark", s.User().Theme.Theme)
	require.NoError(t, s.Close())
}

func TestStore_Mutate_WithRevalidate(t *testing.T) {
	f := &fakeFetcher{user: testUser("dark-contrast")}
	s := NewStore(nil, f)
	require.NoError(t, s.SetUser(testUser("light")))

	require.NoError(t, s.Mutate(setTheme("dark"), true))
	s.Wait()

	assert.Equal(t, 1, f.Calls())
	assert.Equal(t, "dark-contrast", s.User().Theme.Theme, "server copy wins after revalidation")
	require.NoError(t, s.Close())
}

func TestStore_Revalidate_Error(t *testing.T) {
	f := &fakeFetcher{err: errors.New("boom")}
	s := NewStore(nil, f)
	defer s.Close()
	require.NoError(t, s.SetUser(testUser("light")))

	err := s.Revalidate(context.Background())
	assert.Error(t, err)
	assert.Equal(t, "light", s.User().Theme.Theme)
}

func TestStore_Revalidate_NoFetcher(t *testing.T) {
	s := NewStore(nil, nil)
	defer s.Close()
	assert.NoError(t, s.Revalidate(context.Background()))
}

func TestStore_PersistsMutations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	p, err := NewJSONPersistence(path)
	require.NoError(t, err)

	s := NewStore(p, nil)
	require.NoError(t, s.SetUser(testUser("light")))
	require.NoError(t, s.Mutate(setTheme("dark"), false))
	require.NoError(t, s.Close())

	p2, err := NewJSONPersistence(path)
	require.NoError(t, err)
	s2 := NewStore(p2, nil)
	defer s2.Close()

	require.NoError(t, s2.Hydrate())
	require.True(t, s2.HasSession())
	assert.Equal(t, "dark", s2.User().Theme.Theme)
}

func TestStore_Hydrate_NotifiesOnlyOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	p, err := NewJSONPersistence(path)
	require.NoError(t, err)
	require.NoError(t, p.Save(testUser("dark")))

	s := NewStore(p, nil)
	defer s.Close()
	ch := s.Subscribe()

	require.NoError(t, s.Hydrate())
	require.NoError(t, s.Hydrate())

	assert.Len(t, ch, 1)
	ev := <-ch
	assert.Equal(t, ChangeTypeHydrate, ev.Type)
	assert.Equal(t, "dark", ev.Theme)
}

func TestStore_Clear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	p, err := NewJSONPersistence(path)
	require.NoError(t, err)

	s := NewStore(p, nil)
	defer s.Close()
	require.NoError(t, s.SetUser(testUser("light")))

	require.NoError(t, s.Clear())
	assert.False(t, s.HasSession())

	u, err := p.Load()
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestStore_Closed(t *testing.T) {
	s := NewStore(nil, nil)
	ch := s.Subscribe()
	require.NoError(t, s.Close())

	_, ok := <-ch
	assert.False(t, ok, "subscriber channel should be closed")

	assert.ErrorIs(t, s.Mutate(setTheme("dark"), false), ErrStoreClosed)
	assert.ErrorIs(t, s.Clear(), ErrStoreClosed)
	assert.NoError(t, s.Close(), "double close is fine")
}

func TestStore_Unsubscribe(t *testing.T) {
	s := NewStore(nil, nil)
	defer s.Close()

	ch := s.Subscribe()
	s.Unsubscribe(ch)

	_, ok := <-ch
	assert.False(t, ok)

	require.NoError(t, s.SetUser(testUser("light")))
}
