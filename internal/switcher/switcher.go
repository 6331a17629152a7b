// Package switcher implements the theme selector: it reflects the active
// theme, and on selection updates the local session optimistically and pushes
// the same change to the user service without waiting for it.
package switcher

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/jmylchreest/themeswitch/internal/document"
	"github.com/jmylchreest/themeswitch/internal/model"
	"github.com/jmylchreest/themeswitch/internal/store"
	"github.com/jmylchreest/themeswitch/internal/theme"
)

// Session is the local user store.
type Session interface {
	User() *model.User
	Mutate(updater store.Updater, revalidate bool) error
}

// RemoteUpdater sends a profile update without reporting the outcome.
type RemoteUpdater interface {
	UpdateUserAsync(update model.UserUpdate)
}

// ThemeProvider holds the active theme name.
type ThemeProvider interface {
	Theme() string
	SetTheme(name string)
}

// Config wires a Switcher to its collaborators.
type Config struct {
	Registry *theme.Registry
	Provider ThemeProvider
	Session  Session
	Remote   RemoteUpdater
	Root     *document.Root

	// CleanupCustomVariables removes previously applied custom colors.
	// Defaults to theme.UnsetCustomVariables on Root.
	CleanupCustomVariables func()

	// SetPreloaded receives the custom theme draft when "custom" is picked.
	SetPreloaded func(model.CustomTheme)

	Logger *slog.Logger
}

// Switcher is the theme selector's state and behaviour, independent of how
// it is drawn.
type Switcher struct {
	mu      sync.Mutex
	mounted bool

	registry     *theme.Registry
	provider     ThemeProvider
	session      Session
	remote       RemoteUpdater
	root         *document.Root
	cleanup      func()
	setPreloaded func(model.CustomTheme)
	logger       *slog.Logger
}

// SelectView is what the selector renders.
type SelectView struct {
	Value   string
	Label   string
	Icon    *theme.Icon // nil when following the system preference
	Options []theme.Descriptor
}

// New creates a Switcher. Registry is required. A nil Provider follows the
// system preference, a nil Root gets a fresh one, and a nil Session or Remote
// means nothing is persisted.
func New(cfg Config) *Switcher {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	root := cfg.Root
	if root == nil {
		root = document.NewRoot()
	}

	s := &Switcher{
		registry:     cfg.Registry,
		provider:     cfg.Provider,
		session:      cfg.Session,
		remote:       cfg.Remote,
		root:         root,
		cleanup:      cfg.CleanupCustomVariables,
		setPreloaded: cfg.SetPreloaded,
		logger:       logger,
	}
	if s.provider == nil {
		s.provider = theme.NewProvider(theme.SystemTheme)
	}
	if s.cleanup == nil {
		s.cleanup = func() { theme.UnsetCustomVariables(root) }
	}
	return s
}

// Mount marks the host as ready to tell the system preference apart from an
// explicit theme. It only ever moves from unmounted to mounted.
func (s *Switcher) Mount() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mounted = true
}

// Mounted reports whether Mount has been called.
func (s *Switcher) Mounted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mounted
}

// SetRegistry swaps the registry, e.g. after a hot reload.
func (s *Switcher) SetRegistry(r *theme.Registry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registry = r
}

// Registry returns the current registry.
func (s *Switcher) Registry() *theme.Registry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry
}

// Root returns the root element the switcher writes to.
func (s *Switcher) Root() *document.Root {
	return s.root
}

// View returns what to render, or nil before Mount.
func (s *Switcher) View() *SelectView {
	if !s.Mounted() {
		return nil
	}

	r := s.Registry()
	value := s.provider.Theme()
	v := &SelectView{
		Value:   value,
		Label:   r.Label(value),
		Options: r.All(),
	}
	if d, ok := r.Lookup(value); ok {
		icon := d.Icon
		v.Icon = &icon
	}
	return v
}

// Select picks a registry entry by value.
func (s *Switcher) Select(value string) error {
	d, err := s.Registry().Get(value)
	if err != nil {
		return err
	}
	s.OnThemeChange(d.Value, d.Type)
	return nil
}

// OnThemeChange handles a selection. It never fails: without a session the
// choice is shown but not persisted, and remote failures are the remote
// updater's concern.
func (s *Switcher) OnThemeChange(value, colorScheme string) {
	user := s.currentUser()

	if value == model.CustomThemeValue {
		if user != nil && user.Theme.Palette != "" && s.setPreloaded != nil {
			s.setPreloaded(user.Theme.CustomDraft())
		}
	} else {
		s.cleanup()
	}

	s.provider.SetTheme(value)
	s.persist(user, func(t model.UserTheme) model.UserTheme {
		return t.WithTheme(value)
	})
	s.root.SetColorScheme(colorScheme)
}

// SaveCustomTheme stores an edited custom theme: it is applied to the root
// element, written to the session and sent to the user service.
func (s *Switcher) SaveCustomTheme(draft model.CustomTheme) error {
	if err := draft.Validate(); err != nil {
		return err
	}

	user := s.currentUser()
	if user == nil {
		return store.ErrNoSession
	}

	draft.Theme = model.CustomThemeValue
	if err := theme.ApplyCustomVariables(s.root, draft); err != nil {
		return fmt.Errorf("apply custom theme: %w", err)
	}

	s.provider.SetTheme(model.CustomThemeValue)
	s.persist(user, func(model.UserTheme) model.UserTheme {
		return model.UserTheme(draft)
	})

	scheme := theme.TypeLight
	if draft.DarkPalette {
		scheme = theme.TypeDark
	}
	s.root.SetColorScheme(scheme)
	return nil
}

// Adopt makes value the active theme without persisting it, e.g. at startup
// or after another process changed the session. Unknown values fall back to
// the system preference.
func (s *Switcher) Adopt(value string) {
	d, ok := s.Registry().Lookup(value)
	if !ok {
		s.cleanup()
		s.provider.SetTheme(theme.SystemTheme)
		s.root.SetColorScheme("")
		return
	}

	scheme := d.Type
	if d.Value == model.CustomThemeValue {
		if user := s.currentUser(); user != nil && s.applySaved(user.Theme) {
			scheme = theme.TypeLight
			if user.Theme.DarkPalette {
				scheme = theme.TypeDark
			}
		}
	} else {
		s.cleanup()
	}

	s.provider.SetTheme(d.Value)
	s.root.SetColorScheme(scheme)
}

// applySaved re-applies a stored custom theme. It reports false when the
// stored colors are incomplete.
func (s *Switcher) applySaved(t model.UserTheme) bool {
	saved := model.CustomTheme(t)
	if saved.Validate() != nil {
		return false
	}
	if err := theme.ApplyCustomVariables(s.root, saved); err != nil {
		s.logger.Debug("failed to apply saved custom theme", "error", err)
		return false
	}
	return true
}

func (s *Switcher) currentUser() *model.User {
	if s.session == nil {
		return nil
	}
	return s.session.User()
}

// persist applies change to the user's theme locally, without re-fetching,
// then sends the result computed from user to the service. Nothing happens
// without a user.
func (s *Switcher) persist(user *model.User, change func(model.UserTheme) model.UserTheme) {
	if user == nil {
		s.logger.Debug("no user session, theme change not persisted")
		return
	}

	next := change(user.Theme)
	err := s.session.Mutate(func(prev *model.User) *model.User {
		if prev == nil {
			return prev
		}
		prev.Theme = change(prev.Theme)
		return prev
	}, false)
	if err != nil {
		s.logger.Warn("failed to update local session", "theme", next.Theme, "error", err)
	}

	if s.remote != nil {
		s.remote.UpdateUserAsync(model.UserUpdate{Theme: &next})
	}
}
