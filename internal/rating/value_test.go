package rating

import (
	"strconv"
	"testing"
)

func TestValue(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want int
	}{
		{"nil", nil, Neutral},
		{"pro", "pro", Pro},
		{"support mixed case", "Support", Pro},
		{"for padded", "  for ", Pro},
		{"yes", "yes", Pro},
		{"one string", "1", Pro},
		{"anti", "anti", Anti},
		{"oppose", "OPPOSE", Anti},
		{"against", "against", Anti},
		{"no", "no", Anti},
		{"minus one string", "-1", Anti},
		{"neutral word", "neutral", Neutral},
		{"zero string", "0", Neutral},
		{"n/a", "N/A", Neutral},
		{"empty string", "", Neutral},
		{"garbage", "strongly disagrees sometimes", Neutral},
		{"unlisted numeric string", "-5", Neutral},
		{"bytes", []byte("oppose"), Anti},
		{"positive int", 3, Pro},
		{"negative int64", int64(-5), Anti},
		{"zero int", 0, Neutral},
		{"positive float", 0.5, Pro},
		{"negative float", -0.5, Anti},
		{"zero float", 0.0, Neutral},
		{"unexpected type", struct{}{}, Neutral},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Value(tc.in)
			if got != tc.want {
				t.Fatalf("Value(%v) = %d, want %d", tc.in, got, tc.want)
			}
			if got < Anti || got > Pro {
				t.Fatalf("Value(%v) = %d outside tri-state range", tc.in, got)
			}
		})
	}
}

// Re-encoding a normalized value and normalizing again must be a fixpoint.
func TestValueIdempotent(t *testing.T) {
	for _, in := range []any{"Support", "oppose", "n/a", nil, -5, "whatever"} {
		first := Value(in)
		if again := Value(first); again != first {
			t.Fatalf("Value(Value(%v)): %d then %d", in, first, again)
		}
		if again := Value(strconv.Itoa(first)); again != first {
			t.Fatalf("Value of re-encoded %d = %d", first, again)
		}
	}
}

func TestDisplayName(t *testing.T) {
	cases := []struct {
		col  string
		want string
	}{
		{"ABORTION_REPRODUCTIVE_RIGHTS", "Abortion & Reproductive Rights"},
		{"ENVIRONMENT_REGULATIONS_RENEWABLE_ENERGY", "Environment Regulations & Renewable Energy"},
		{"SOCIAL_SECURITY_MEDICARE_EXPANSION", "Social Security & Medicare Expansion"},
		{"LGBTQ_RIGHTS", "LGBTQ Rights"},
		{"DEI", "DEI"},
		{"ISRAEL", "Israel"},
		{"DEFENSE_SPENDING", "Defense Spending"},
		{"MILITARY_AID_TO_UKRAINE", "Military Aid To Ukraine"},
	}
	for _, tc := range cases {
		if got := DisplayName(tc.col); got != tc.want {
			t.Fatalf("DisplayName(%q) = %q, want %q", tc.col, got, tc.want)
		}
	}
}

func TestColumnsCopy(t *testing.T) {
	cols := Columns()
	if len(cols) != 18 {
		t.Fatalf("expected 18 issue columns, got %d", len(cols))
	}
	cols[0] = "MUTATED"
	if Columns()[0] == "MUTATED" {
		t.Fatalf("Columns returned shared backing array")
	}
}
