package identity

import "github.com/pmezard/go-difflib/difflib"

// Similarity scores two normalized names in [0,1]. It takes the maximum of
// the raw character ratio and the token-sorted ratio so reordered names
// ("smith, john" vs "john smith") still score as equal.
func Similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	raw := ratio(a, b)
	tok := ratio(TokenSortKey(a), TokenSortKey(b))
	if tok > raw {
		return tok
	}
	return raw
}

// ratio is the Ratcliff/Obershelp similarity over individual runes.
func ratio(a, b string) float64 {
	return difflib.NewMatcher(explode(a), explode(b)).Ratio()
}

func explode(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
