// Package mapping persists the learned candidate-name to politician-id
// mapping that keeps identifiers stable across runs.
package mapping

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"civicsync/internal/identity"
)

// Store holds the name->id mapping for one run. It is loaded once at open,
// mutated in memory while the run resolves names, and rewritten wholesale by
// Save. Nothing else may write the file while a run owns it.
type Store struct {
	path    string
	entries map[string]string
	dirty   bool
	log     *zap.Logger
}

// Open loads the mapping file at path. A missing file yields an empty store;
// a corrupt file is logged and treated as empty rather than failing the run.
func Open(path string, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Store{path: path, entries: map[string]string{}, log: log}
	raw, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn("mapping file unreadable, starting empty", zap.String("path", path), zap.Error(err))
		}
		return s
	}
	if err := json.Unmarshal(raw, &s.entries); err != nil {
		log.Warn("mapping file corrupt, starting empty", zap.String("path", path), zap.Error(err))
		s.entries = map[string]string{}
		return s
	}
	log.Debug("loaded politician mappings", zap.String("path", path), zap.Int("count", len(s.entries)))
	return s
}

// Exact returns the id recorded for a name whose normalized form matches
// exactly. No similarity scoring happens on this path.
func (s *Store) Exact(name string) (string, bool) {
	q := identity.Normalize(name)
	if q == "" {
		return "", false
	}
	for stored, id := range s.entries {
		if identity.Normalize(stored) == q {
			return id, true
		}
	}
	return "", false
}

// Fuzzy returns the best-scoring id at or above threshold, along with its
// score. Below-threshold candidates are never returned, so an unrelated
// cached id cannot be reused by accident.
func (s *Store) Fuzzy(name string, threshold float64) (string, float64, bool) {
	q := identity.Normalize(name)
	if q == "" {
		return "", 0, false
	}
	var bestID string
	var bestScore float64
	for stored, id := range s.entries {
		score := identity.Similarity(q, identity.Normalize(stored))
		if score > bestScore && score >= threshold {
			bestScore = score
			bestID = id
		}
	}
	if bestID == "" {
		return "", 0, false
	}
	return bestID, bestScore, true
}

// Add records a mapping in memory. Empty names or ids are rejected with a
// warning, matching the store's never-abort posture.
func (s *Store) Add(name, id string) {
	if name == "" || id == "" {
		s.log.Warn("ignoring invalid mapping", zap.String("name", name), zap.String("id", id))
		return
	}
	s.entries[name] = id
	s.dirty = true
}

// Save rewrites the mapping file atomically (temp file + rename). A no-op
// when nothing changed, so an unchanged run leaves an identical file behind.
func (s *Store) Save() error {
	if !s.dirty {
		return nil
	}
	payload, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode mappings: %w", err)
	}
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".mapping-*.json")
	if err != nil {
		return fmt.Errorf("create temp mapping file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(payload); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write mappings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close temp mapping file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace mapping file: %w", err)
	}
	s.dirty = false
	s.log.Debug("saved politician mappings", zap.String("path", s.path), zap.Int("count", len(s.entries)))
	return nil
}

// Len reports the number of recorded mappings.
func (s *Store) Len() int { return len(s.entries) }

// All returns a copy of the raw name->id entries.
func (s *Store) All() map[string]string {
	out := make(map[string]string, len(s.entries))
	for k, v := range s.entries {
		out[k] = v
	}
	return out
}
