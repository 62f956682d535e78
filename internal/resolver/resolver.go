// Package resolver maps free-text candidate names to stable politician ids
// through a short-circuiting chain of lookup tiers.
package resolver

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"civicsync/internal/identity"
	"civicsync/internal/mapping"
	"civicsync/internal/treestore"
)

// DefaultThreshold is the minimum similarity accepted by the fuzzy tiers.
const DefaultThreshold = 0.92

// Tier identifies which lookup strategy produced an id.
type Tier int

const (
	// TierMapping is an exact normalized hit in the mapping file.
	TierMapping Tier = iota + 1
	// TierMappingFuzzy is a similarity hit against mapping file keys.
	TierMappingFuzzy
	// TierIndex is a hit against the remote politicians index.
	TierIndex
	// TierSlug is the deterministic slug fallback.
	TierSlug
)

func (t Tier) String() string {
	switch t {
	case TierMapping:
		return "mapping"
	case TierMappingFuzzy:
		return "mapping_fuzzy"
	case TierIndex:
		return "index"
	case TierSlug:
		return "slug"
	default:
		return "unknown"
	}
}

// Resolver resolves candidate names against the mapping file first, then the
// remote politicians index, then a deterministic slug. Every hit below the
// exact tier is written back into the mapping so repeated runs converge to
// exact hits.
type Resolver struct {
	mapping   *mapping.Store
	index     map[string]string // normalized name -> id
	threshold float64
	log       *zap.Logger
}

// New builds a resolver over the given mapping store. A non-positive
// threshold falls back to DefaultThreshold.
func New(m *mapping.Store, threshold float64, log *zap.Logger) *Resolver {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{mapping: m, index: map[string]string{}, threshold: threshold, log: log}
}

// politicianRecord is the shape of one /politicians entry. Sources disagree
// on the name field, so all known spellings are accepted.
type politicianRecord struct {
	Name           string `json:"name"`
	FullName       string `json:"full_name"`
	PoliticianName string `json:"politician_name"`
	DisplayName    string `json:"display_name"`
}

func (r politicianRecord) displayName() string {
	for _, n := range []string{r.Name, r.FullName, r.PoliticianName, r.DisplayName} {
		if n != "" {
			return n
		}
	}
	return ""
}

// LoadIndex reads the read-only politicians subtree and builds the
// normalized-name index for tier 3. Failure to load is non-fatal: the
// resolver proceeds with the mapping file and slug fallback.
func (r *Resolver) LoadIndex(ctx context.Context, store treestore.Store, path string) {
	var snapshot map[string]politicianRecord
	if err := store.GetSubtree(ctx, path, &snapshot); err != nil {
		if errors.Is(err, treestore.ErrNotFound) {
			r.log.Debug("no politicians index", zap.String("path", path))
			return
		}
		r.log.Warn("failed to load politicians index", zap.String("path", path), zap.Error(err))
		return
	}
	index := make(map[string]string, len(snapshot))
	for id, rec := range snapshot {
		if id == "" {
			continue
		}
		if norm := identity.Normalize(rec.displayName()); norm != "" {
			index[norm] = id
		}
	}
	r.index = index
	if len(index) > 0 {
		r.log.Info("loaded politicians index", zap.String("path", path), zap.Int("count", len(index)))
	}
}

// IndexSize reports how many index entries are available to tier 3.
func (r *Resolver) IndexSize() int { return len(r.index) }

// Resolve returns the id for a candidate name and the tier that produced it.
func (r *Resolver) Resolve(name string) (string, Tier) {
	if id, ok := r.mapping.Exact(name); ok {
		return id, TierMapping
	}

	if id, score, ok := r.mapping.Fuzzy(name, r.threshold); ok {
		r.mapping.Add(name, id)
		r.log.Debug("fuzzy mapping match",
			zap.String("name", name), zap.String("id", id), zap.Float64("score", score))
		return id, TierMappingFuzzy
	}

	if id, ok := r.matchIndex(name); ok {
		r.mapping.Add(name, id)
		r.log.Info("matched existing politician", zap.String("name", name), zap.String("id", id))
		return id, TierIndex
	}

	id := identity.Slug(name)
	r.mapping.Add(name, id)
	r.log.Warn("no mapping found, generated id from name",
		zap.String("name", name), zap.String("id", id))
	return id, TierSlug
}

// matchIndex scores the name against the politicians index: exact normalized
// hit first, then best similarity at or above the threshold.
func (r *Resolver) matchIndex(name string) (string, bool) {
	if len(r.index) == 0 {
		return "", false
	}
	q := identity.Normalize(name)
	if q == "" {
		return "", false
	}
	if id, ok := r.index[q]; ok {
		return id, true
	}
	var bestID string
	var bestScore float64
	for candidate, id := range r.index {
		if score := identity.Similarity(q, candidate); score > bestScore {
			bestScore = score
			bestID = id
		}
	}
	if bestID != "" && bestScore >= r.threshold {
		return bestID, true
	}
	return "", false
}
