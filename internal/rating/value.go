// Package rating normalizes raw issue-position cells to the tri-state
// encoding stored in the remote tree: pro (1), neutral (0), anti (-1).
package rating

import "strings"

// Tri-state issue values.
const (
	Pro     = 1
	Neutral = 0
	Anti    = -1
)

var proWords = map[string]struct{}{
	"pro": {}, "1": {}, "yes": {}, "support": {}, "for": {},
}

var antiWords = map[string]struct{}{
	"anti": {}, "-1": {}, "no": {}, "oppose": {}, "against": {},
}

// Value maps a raw warehouse cell to {-1, 0, 1}. Inputs arrive as whatever
// the sql driver produced: nil, string, []byte, or a numeric type. Unknown
// or malformed values normalize to Neutral; this function never fails a run.
func Value(raw any) int {
	switch v := raw.(type) {
	case nil:
		return Neutral
	case string:
		return wordValue(v)
	case []byte:
		return wordValue(string(v))
	case int:
		return sign(float64(v))
	case int32:
		return sign(float64(v))
	case int64:
		return sign(float64(v))
	case float32:
		return sign(float64(v))
	case float64:
		return sign(v)
	default:
		return Neutral
	}
}

func wordValue(s string) int {
	w := strings.ToLower(strings.TrimSpace(s))
	if _, ok := proWords[w]; ok {
		return Pro
	}
	if _, ok := antiWords[w]; ok {
		return Anti
	}
	// "", "neutral", "0", "n/a", and any unmatched text are all neutral.
	return Neutral
}

func sign(f float64) int {
	switch {
	case f > 0:
		return Pro
	case f < 0:
		return Anti
	default:
		return Neutral
	}
}
