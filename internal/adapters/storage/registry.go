package storage

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/ImmortalDemonGod/prime-directive/internal/logging"
)

// EngineRegistry hands out one SQLiteStore per database path for the
// lifetime of the process. The first caller for a path opens it; later
// callers, including concurrent ones, receive the same store.
type EngineRegistry struct {
	mu     sync.Mutex
	stores map[string]*SQLiteStore
}

// NewEngineRegistry creates an empty registry
func NewEngineRegistry() *EngineRegistry {
	return &EngineRegistry{stores: make(map[string]*SQLiteStore)}
}

// Get returns the store for dbPath, opening it on first use
func (r *EngineRegistry) Get(dbPath string) (*SQLiteStore, error) {
	key, err := normalizeDBPath(dbPath)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if store, ok := r.stores[key]; ok {
		return store, nil
	}

	store, err := NewSQLiteStore(key)
	if err != nil {
		return nil, err
	}
	r.stores[key] = store
	logging.Logger.Debug("Registered state store", "path", key, "open_stores", len(r.stores))
	return store, nil
}

// Len returns the number of open stores
func (r *EngineRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.stores)
}

// CloseAll closes every store and empties the registry
func (r *EngineRegistry) CloseAll() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error
	for path, store := range r.stores {
		if err := store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", path, err))
		}
		delete(r.stores, path)
	}
	return errors.Join(errs...)
}

func normalizeDBPath(dbPath string) (string, error) {
	if dbPath == "" {
		return "", errors.New("database path is empty")
	}
	abs, err := filepath.Abs(dbPath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve database path: %w", err)
	}
	return filepath.Clean(abs), nil
}
