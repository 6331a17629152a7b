package theme

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"time"
)

// Watcher polls a user registry file and reloads it when it changes.
type Watcher struct {
	mu     sync.RWMutex
	logger *slog.Logger

	path    string
	modTime time.Time

	pollInterval time.Duration

	onChangeCallback func(r *Registry)

	stopCh chan struct{}
	doneCh chan struct{}

	running bool
}

// NewWatcher creates a watcher for the registry file at path.
func NewWatcher(path string, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}

	w := &Watcher{
		logger:       logger,
		path:         path,
		pollInterval: 1 * time.Second,
		stopCh:       make(chan struct{}),
		doneCh:       make(chan struct{}),
	}
	if info, err := os.Stat(path); err == nil {
		w.modTime = info.ModTime()
	}
	return w
}

// SetPollInterval sets the polling interval for file changes.
func (w *Watcher) SetPollInterval(interval time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pollInterval = interval
}

// SetChangeCallback sets the callback invoked with the reloaded registry.
func (w *Watcher) SetChangeCallback(callback func(r *Registry)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChangeCallback = callback
}

// Start begins polling. Watching the bundled registry (empty path) is a no-op.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}

	if w.path == "" {
		w.mu.Unlock()
		w.logger.Debug("not watching bundled registry")
		return nil
	}

	w.running = true
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	interval := w.pollInterval
	w.mu.Unlock()

	go w.watchLoop(ctx, interval)

	w.logger.Debug("registry watcher started", "path", w.path, "interval", interval)
	return nil
}

// Stop stops polling and waits for the loop to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	close(w.stopCh)
	w.mu.Unlock()

	<-w.doneCh
	w.logger.Debug("registry watcher stopped")
}

func (w *Watcher) watchLoop(ctx context.Context, interval time.Duration) {
	defer close(w.doneCh)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.checkForChanges()
		}
	}
}

// checkForChanges reloads the registry if the file's modification time moved.
// A file that fails to parse is skipped so the last good registry stays active.
func (w *Watcher) checkForChanges() {
	info, err := os.Stat(w.path)
	if err != nil {
		if os.IsNotExist(err) {
			w.logger.Debug("registry file no longer exists", "path", w.path)
		}
		return
	}

	w.mu.RLock()
	last := w.modTime
	callback := w.onChangeCallback
	w.mu.RUnlock()

	if !info.ModTime().After(last) {
		return
	}

	w.mu.Lock()
	w.modTime = info.ModTime()
	w.mu.Unlock()

	r, err := LoadRegistry(w.path)
	if err != nil {
		w.logger.Warn("failed to reload registry", "path", w.path, "error", err)
		return
	}

	w.logger.Info("registry file changed, reloaded", "path", w.path, "themes", r.Len())
	if callback != nil {
		callback(r)
	}
}

// IsRunning returns whether the watcher is currently running.
func (w *Watcher) IsRunning() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.running
}
