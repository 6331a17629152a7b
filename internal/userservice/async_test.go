package userservice

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/themeswitch/internal/model"
)

type recordingUpdater struct {
	mu      sync.Mutex
	updates []model.UserUpdate
	ids     []string
	err     error
}

func (r *recordingUpdater) UpdateUser(ctx context.Context, update model.UserUpdate) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates = append(r.updates, update)
	r.ids = append(r.ids, RequestID(ctx))
	if r.err != nil {
		return nil, r.err
	}
	return &model.User{Theme: *update.Theme}, nil
}

func TestAsync_UpdateUserAsync(t *testing.T) {
	rec := &recordingUpdater{}
	a := NewAsync(rec, nil)

	theme := model.UserTheme{Theme: "dark"}
	a.UpdateUserAsync(model.UserUpdate{Theme: &theme})
	a.Wait()

	require.Len(t, rec.updates, 1)
	assert.Equal(t, "dark", rec.updates[0].Theme.Theme)
	assert.Len(t, rec.ids[0], 26, "each call carries a ULID request id")
}

func TestAsync_ErrorsAreSwallowed(t *testing.T) {
	rec := &recordingUpdater{err: errors.New("service down")}
	a := NewAsync(rec, nil)

	theme := model.UserTheme{Theme: "light"}
	a.UpdateUserAsync(model.UserUpdate{Theme: &theme})
	a.UpdateUserAsync(model.UserUpdate{})
	a.Wait()

	assert.Len(t, rec.updates, 2)
}
