package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/jmylchreest/themeswitch/internal/model"
)

// SchemaVersion is the current session file schema version.
const SchemaVersion = 1

// Persistence stores the cached session user.
type Persistence interface {
	// Load reads the cached user. It returns nil, nil when nothing is cached.
	Load() (*model.User, error)

	// Save replaces the cached user.
	Save(u *model.User) error

	// Clear removes the cached user.
	Clear() error

	// Close releases resources.
	Close() error
}

// sessionFile is the on-disk layout of the session cache.
type sessionFile struct {
	SchemaVersion int         `json:"schema_version"`
	SavedAt       int64       `json:"saved_at"`
	User          *model.User `json:"user,omitempty"`
}

// ErrPersistenceClosed is returned when operations are attempted on a closed persistence.
var ErrPersistenceClosed = errors.New("persistence is closed")

// JSONPersistence implements Persistence with a single JSON file written
// atomically via a temp file.
type JSONPersistence struct {
	mu     sync.Mutex
	path   string
	closed bool
}

// NewJSONPersistence creates a JSONPersistence at path, creating its parent
// directory.
func NewJSONPersistence(path string) (*JSONPersistence, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return &JSONPersistence{path: path}, nil
}

// Path returns the session file path.
func (p *JSONPersistence) Path() string {
	return p.path
}

// Load reads the cached user.
func (p *JSONPersistence) Load() (*model.User, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, ErrPersistenceClosed
	}

	data, err := os.ReadFile(p.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", p.path, err)
	}

	var f sessionFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode %s: %w", p.path, err)
	}

	if f.SchemaVersion > SchemaVersion {
		return nil, fmt.Errorf("unsupported schema version %d (max: %d)",
			f.SchemaVersion, SchemaVersion)
	}

	return f.User, nil
}

// Save writes the user to disk.
func (p *JSONPersistence) Save(u *model.User) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrPersistenceClosed
	}

	f := sessionFile{
		SchemaVersion: SchemaVersion,
		SavedAt:       time.Now().Unix(),
		User:          u,
	}

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return err
	}

	tmpPath := p.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return err
	}
	return os.Rename(tmpPath, p.path)
}

// Clear removes the session file.
func (p *JSONPersistence) Clear() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrPersistenceClosed
	}

	if err := os.Remove(p.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Close marks the persistence closed.
func (p *JSONPersistence) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}
