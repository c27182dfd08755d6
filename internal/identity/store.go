// Package identity persists the local player identity. It is set once at
// registration and cleared only on explicit logout; absence forces the
// signup screen.
package identity

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fieldday-games/bingohunt/internal/model"
)

// Store holds the locally persisted player identity
type Store interface {
	// Get returns the stored identity, or ErrNoIdentity if none is set
	Get() (model.Identity, error)

	// Set stores the identity
	Set(model.Identity) error

	// Clear removes the stored identity
	Clear() error
}

// FileStore persists the identity as a JSON file
type FileStore struct {
	path string
}

var _ Store = (*FileStore)(nil)

// NewFileStore creates a store backed by the given file path
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultPath returns the default identity file location
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".bingohunt/identity.json"
	}
	return filepath.Join(home, ".bingohunt", "identity.json")
}

func (s *FileStore) Get() (model.Identity, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.Identity{}, model.ErrNoIdentity
		}
		return model.Identity{}, fmt.Errorf("failed to read identity file: %w", err)
	}

	var id model.Identity
	if err := json.Unmarshal(data, &id); err != nil {
		return model.Identity{}, fmt.Errorf("failed to parse identity file: %w", err)
	}
	if !id.Valid() {
		return model.Identity{}, model.ErrNoIdentity
	}
	return id, nil
}

func (s *FileStore) Set(id model.Identity) error {
	data, err := json.Marshal(id)
	if err != nil {
		return fmt.Errorf("failed to marshal identity: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create identity dir: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write identity file: %w", err)
	}
	return nil
}

func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove identity file: %w", err)
	}
	return nil
}

// MemStore is an in-memory store for tests
type MemStore struct {
	id  model.Identity
	set bool
}

var _ Store = (*MemStore)(nil)

// NewMemStore creates an empty in-memory store
func NewMemStore() *MemStore {
	return &MemStore{}
}

// NewMemStoreWith creates an in-memory store holding the given identity
func NewMemStoreWith(id model.Identity) *MemStore {
	return &MemStore{id: id, set: true}
}

func (s *MemStore) Get() (model.Identity, error) {
	if !s.set {
		return model.Identity{}, model.ErrNoIdentity
	}
	return s.id, nil
}

func (s *MemStore) Set(id model.Identity) error {
	s.id = id
	s.set = true
	return nil
}

func (s *MemStore) Clear() error {
	s.id = model.Identity{}
	s.set = false
	return nil
}
