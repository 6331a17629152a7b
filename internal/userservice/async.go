package userservice

import (
	"context"
	"log/slog"
	"sync"

	"github.com/jmylchreest/themeswitch/internal/model"
)

// Updater performs a partial profile update.
type Updater interface {
	UpdateUser(ctx context.Context, update model.UserUpdate) (*model.User, error)
}

// Async sends profile updates in the background. Callers never see the
// result: failures are logged here and nothing is rolled back.
type Async struct {
	updater Updater
	logger  *slog.Logger
	wg      sync.WaitGroup
}

// NewAsync wraps updater.
func NewAsync(updater Updater, logger *slog.Logger) *Async {
	if logger == nil {
		logger = slog.Default()
	}
	return &Async{updater: updater, logger: logger}
}

// UpdateUserAsync starts the update and returns immediately. Overlapping
// calls are not ordered; whichever finishes last wins on the server.
func (a *Async) UpdateUserAsync(update model.UserUpdate) {
	id := NewRequestID()
	ctx := WithRequestID(context.Background(), id)

	theme := ""
	if update.Theme != nil {
		theme = update.Theme.Theme
	}

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()

		if _, err := a.updater.UpdateUser(ctx, update); err != nil {
			a.logger.Warn("failed to update user profile",
				"request_id", id, "theme", theme, "error", err)
			return
		}
		a.logger.Debug("updated user profile", "request_id", id, "theme", theme)
	}()
}

// Wait blocks until every in-flight update has finished.
func (a *Async) Wait() {
	a.wg.Wait()
}
