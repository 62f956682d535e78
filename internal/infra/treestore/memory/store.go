// Package memory implements an in-memory tree Store for tests.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"civicsync/internal/treestore/core"
)

// Compile-time contract assertion ensuring the store satisfies core.Store.
var _ core.Store = (*Store)(nil)

// Store implements core.Store backed by process memory. Intended for tests.
type Store struct {
	mu       sync.RWMutex
	subtrees map[string]json.RawMessage
}

// New returns an in-memory tree store.
func New() *Store { return &Store{subtrees: make(map[string]json.RawMessage)} }

// Driver returns the tree-store driver identifier.
func (s *Store) Driver() core.Driver { return core.DriverMemory }

// SetSubtree replaces the subtree at path with the JSON encoding of value.
func (s *Store) SetSubtree(_ context.Context, path string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode subtree %s: %w", path, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subtrees[core.CleanPath(path)] = raw
	return nil
}

// GetSubtree decodes the subtree at path into out.
func (s *Store) GetSubtree(_ context.Context, path string, out any) error {
	s.mu.RLock()
	raw, ok := s.subtrees[core.CleanPath(path)]
	s.mu.RUnlock()
	if !ok {
		return core.ErrNotFound
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode subtree %s: %w", path, err)
	}
	return nil
}
