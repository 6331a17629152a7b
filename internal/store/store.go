// Package store provides the local session store for the signed-in user.
package store

import (
	"context"
	"log/slog"
	"sync"

	"github.com/jmylchreest/themeswitch/internal/model"
)

// ChangeType indicates the type of store change.
type ChangeType int

const (
	// ChangeTypeMutate indicates a local (optimistic) mutation.
	ChangeTypeMutate ChangeType = iota
	// ChangeTypeRevalidate indicates the user was re-fetched from the service.
	ChangeTypeRevalidate
	// ChangeTypeHydrate indicates the user was reloaded from the session file.
	ChangeTypeHydrate
	// ChangeTypeClear indicates the session was cleared.
	ChangeTypeClear
)

// ChangeEvent signals session changes.
type ChangeEvent struct {
	Type  ChangeType
	Theme string // theme.theme after the change, "" when no session
}

// Fetcher loads the authoritative user record from the service.
type Fetcher interface {
	GetUser(ctx context.Context) (*model.User, error)
}

// Updater maps the previous user to the next one. It receives a copy and may
// return nil to clear the session.
type Updater func(prev *model.User) *model.User

// Store holds the current session user with thread-safe operations.
type Store struct {
	mu   sync.RWMutex
	user *model.User

	persistence Persistence
	fetcher     Fetcher
	logger      *slog.Logger

	// wg tracks background revalidations started by Mutate.
	wg sync.WaitGroup

	subscribers []chan ChangeEvent
	closed      bool
}

// NewStore creates a new Store. Either argument may be nil: without
// persistence nothing is cached, without a fetcher Revalidate is a no-op.
func NewStore(persistence Persistence, fetcher Fetcher) *Store {
	return &Store{
		persistence: persistence,
		fetcher:     fetcher,
		logger:      slog.Default(),
		subscribers: make([]chan ChangeEvent, 0),
	}
}

// SetLogger replaces the store's logger.
func (s *Store) SetLogger(logger *slog.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// User returns a copy of the session user, or nil when signed out.
func (s *Store) User() *model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user.Clone()
}

// HasSession reports whether a user is loaded.
func (s *Store) HasSession() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

// Mutate applies updater to the session user and writes the result back
// locally. When revalidate is true a background re-fetch from the service
// follows; pass false for optimistic updates that must not be overwritten by
// a stale read.
func (s *Store) Mutate(updater Updater, revalidate bool) error {
	s.mu.Lock()

	if s.closed {
		s.mu.Unlock()
		return ErrStoreClosed
	}

	next := updater(s.user.Clone())
	s.user = next.Clone()

	if err := s.persistLocked(); err != nil {
		s.mu.Unlock()
		return err
	}

	s.notifyChange(ChangeEvent{Type: ChangeTypeMutate, Theme: themeOf(s.user)})
	s.mu.Unlock()

	if revalidate && s.fetcher != nil {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			if err := s.Revalidate(context.Background()); err != nil {
				s.logger.Warn("failed to revalidate session", "error", err)
			}
		}()
	}

	return nil
}

// SetUser replaces the session user, e.g. after signing in.
func (s *Store) SetUser(u *model.User) error {
	return s.Mutate(func(*model.User) *model.User { return u }, false)
}

// Revalidate re-fetches the user from the service and replaces the local copy.
func (s *Store) Revalidate(ctx context.Context) error {
	if s.fetcher == nil {
		return nil
	}

	u, err := s.fetcher.GetUser(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	s.user = u.Clone()
	if err := s.persistLocked(); err != nil {
		return err
	}

	s.notifyChange(ChangeEvent{Type: ChangeTypeRevalidate, Theme: themeOf(s.user)})
	return nil
}

// Wait blocks until background revalidations started by Mutate finish.
func (s *Store) Wait() {
	s.wg.Wait()
}

// Hydrate loads the session user from persistence. Subscribers are only
// notified when the loaded user differs from the current one.
func (s *Store) Hydrate() error {
	if s.persistence == nil {
		return nil
	}

	u, err := s.persistence.Load()
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	if sameUser(s.user, u) {
		return nil
	}

	s.user = u
	s.notifyChange(ChangeEvent{Type: ChangeTypeHydrate, Theme: themeOf(s.user)})
	return nil
}

// Clear signs out: drops the session user and its cached copy.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	s.user = nil
	if s.persistence != nil {
		if err := s.persistence.Clear(); err != nil {
			return err
		}
	}

	s.notifyChange(ChangeEvent{Type: ChangeTypeClear})
	return nil
}

// Subscribe returns a channel that receives change events.
func (s *Store) Subscribe() <-chan ChangeEvent {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan ChangeEvent, 10)
	s.subscribers = append(s.subscribers, ch)
	return ch
}

// Unsubscribe removes a subscription.
func (s *Store) Unsubscribe(ch <-chan ChangeEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, sub := range s.subscribers {
		if sub == ch {
			s.subscribers = append(s.subscribers[:i], s.subscribers[i+1:]...)
			close(sub)
			return
		}
	}
}

// Close waits for background work, closes all subscriber channels and
// releases persistence.
func (s *Store) Close() error {
	s.wg.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	for _, ch := range s.subscribers {
		close(ch)
	}
	s.subscribers = nil

	if s.persistence != nil {
		return s.persistence.Close()
	}
	return nil
}

// persistLocked writes the current user to persistence. Callers hold s.mu.
func (s *Store) persistLocked() error {
	if s.persistence == nil {
		return nil
	}
	if s.user == nil {
		return s.persistence.Clear()
	}
	return s.persistence.Save(s.user)
}

// notifyChange sends a change event to all subscribers (non-blocking).
func (s *Store) notifyChange(event ChangeEvent) {
	for _, ch := range s.subscribers {
		select {
		case ch <- event:
		default:
			// Channel full, skip
		}
	}
}

func themeOf(u *model.User) string {
	if u == nil {
		return ""
	}
	return u.Theme.Theme
}

func sameUser(a, b *model.User) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Errors
var (
	ErrStoreClosed = storeError("store is closed")
	ErrNoSession   = storeError("no user session")
)

type storeError string

func (e storeError) Error() string {
	return string(e)
}
