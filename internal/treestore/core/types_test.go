package core

import "testing"

func TestCleanPath(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"/politician_issues", "/politician_issues"},
		{"politician_issues", "/politician_issues"},
		{"politician_issues/", "/politician_issues"},
		{"  /politicians ", "/politicians"},
		{"a/b/c", "/a/b/c"},
		{"", "/"},
	}
	for _, tc := range cases {
		if got := CleanPath(tc.in); got != tc.want {
			t.Fatalf("CleanPath(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
