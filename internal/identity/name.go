// Package identity normalizes person names for comparison across data
// sources and derives deterministic identifiers from them.
package identity

import (
	"sort"
	"strings"
)

// dropTokens lists suffixes and titles that create false mismatches between
// sources ("Sen. John Smith" vs "John Smith Jr.").
var dropTokens = map[string]struct{}{
	"jr": {}, "sr": {}, "ii": {}, "iii": {}, "iv": {},
	"mr": {}, "mrs": {}, "ms": {}, "dr": {},
	"sen": {}, "senator": {}, "rep": {}, "representative": {},
	"gov": {}, "governor": {},
}

// Normalize lowercases a display name, strips punctuation and digits,
// collapses whitespace, and drops common suffix/title tokens. The result is
// the canonical comparison form used by every lookup tier.
func Normalize(name string) string {
	lower := strings.ToLower(strings.TrimSpace(name))
	var b strings.Builder
	b.Grow(len(lower))
	for _, r := range lower {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	tokens := strings.Fields(b.String())
	kept := tokens[:0]
	for _, t := range tokens {
		if _, drop := dropTokens[t]; !drop {
			kept = append(kept, t)
		}
	}
	return strings.Join(kept, " ")
}

// TokenSortKey rejoins the whitespace tokens of s in sorted order, giving an
// ordering-insensitive comparison key ("smith john" and "john smith" agree).
func TokenSortKey(s string) string {
	tokens := strings.Fields(s)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

// Slug derives a stable identifier from a display name by joining the
// normalized tokens with hyphens. Distinct names can slug identically, and a
// name with no letter tokens (digits or dropped titles only) slugs to the
// empty string; the mapping file is the documented correction path for the
// former, and callers treat the latter as unresolvable.
func Slug(name string) string {
	return strings.ReplaceAll(Normalize(name), " ", "-")
}
