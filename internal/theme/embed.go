package theme

import (
	"embed"
	"fmt"
	"sync"
)

// embeddedRegistry holds the bundled theme registry.
//
//go:embed themes/registry.toml
var embeddedRegistry embed.FS

const embeddedRegistryPath = "themes/registry.toml"

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
	defaultErr      error
)

// DefaultRegistry returns the bundled registry. It is parsed once and shared.
func DefaultRegistry() (*Registry, error) {
	defaultOnce.Do(func() {
		data, err := embeddedRegistry.ReadFile(embeddedRegistryPath)
		if err != nil {
			defaultErr = fmt.Errorf("read embedded registry: %w", err)
			return
		}
		defaultRegistry, defaultErr = ParseRegistry(data)
	})
	return defaultRegistry, defaultErr
}

// MustDefaultRegistry is DefaultRegistry for callers that treat a broken
// embedded file as a programming error.
func MustDefaultRegistry() *Registry {
	r, err := DefaultRegistry()
	if err != nil {
		panic(err)
	}
	return r
}
