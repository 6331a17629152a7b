package theme

import "sync"

// SystemTheme is the provider value meaning "follow the system preference".
const SystemTheme = ""

// Provider holds the active theme name for the running UI.
type Provider struct {
	mu    sync.RWMutex
	theme string
}

// NewProvider creates a provider with an initial theme. Pass SystemTheme to
// follow the system preference.
func NewProvider(initial string) *Provider {
	return &Provider{theme: initial}
}

// Theme returns the active theme name, or SystemTheme.
func (p *Provider) Theme() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.theme
}

// SetTheme changes the active theme.
func (p *Provider) SetTheme(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.theme = name
}

// IsSystem reports whether the provider follows the system preference.
func (p *Provider) IsSystem() bool {
	return p.Theme() == SystemTheme
}

// Resolved returns the color scheme type to render with. Explicit themes use
// their registry type; the system preference resolves from systemDark.
func (p *Provider) Resolved(r *Registry, systemDark bool) string {
	if d, ok := r.Lookup(p.Theme()); ok {
		return d.Type
	}
	if systemDark {
		return TypeDark
	}
	return TypeLight
}
