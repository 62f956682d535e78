package main

import (
	"os"
	"testing"
)

func TestMatchThreshold(t *testing.T) {
	t.Setenv("CIVICSYNC_MATCH_THRESHOLD", "")
	got, err := matchThreshold()
	if err != nil || got != 0.92 {
		t.Fatalf("default threshold = %v, %v", got, err)
	}

	t.Setenv("CIVICSYNC_MATCH_THRESHOLD", "0.97")
	got, err = matchThreshold()
	if err != nil || got != 0.97 {
		t.Fatalf("threshold = %v, %v", got, err)
	}

	for _, bad := range []string{"nope", "0", "-0.5", "1.5"} {
		t.Setenv("CIVICSYNC_MATCH_THRESHOLD", bad)
		if _, err := matchThreshold(); err == nil {
			t.Fatalf("expected error for threshold %q", bad)
		}
	}
}

func TestPoliticiansPath(t *testing.T) {
	// Register cleanup via Setenv, then unset to exercise the default.
	t.Setenv("CIVICSYNC_POLITICIANS_PATH", "placeholder")
	_ = os.Unsetenv("CIVICSYNC_POLITICIANS_PATH")
	path, ok := politiciansPath()
	if !ok || path != "/politicians" {
		t.Fatalf("unset = %q, %v, want default /politicians", path, ok)
	}

	t.Setenv("CIVICSYNC_POLITICIANS_PATH", "/custom/politicians")
	path, ok = politiciansPath()
	if !ok || path != "/custom/politicians" {
		t.Fatalf("override = %q, %v", path, ok)
	}

	// Set-but-empty disables the index tier entirely.
	t.Setenv("CIVICSYNC_POLITICIANS_PATH", "")
	if path, ok := politiciansPath(); ok {
		t.Fatalf("empty value should disable the index tier, got %q", path)
	}
}

func TestEnvOr(t *testing.T) {
	t.Setenv("CIVICSYNC_ISSUES_PATH", "")
	if got := envOr("CIVICSYNC_ISSUES_PATH", "/politician_issues"); got != "/politician_issues" {
		t.Fatalf("envOr fallback = %q", got)
	}
	t.Setenv("CIVICSYNC_ISSUES_PATH", "/staging")
	if got := envOr("CIVICSYNC_ISSUES_PATH", "/politician_issues"); got != "/staging" {
		t.Fatalf("envOr = %q", got)
	}
}
