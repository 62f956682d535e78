// Package rtdb implements core.Store against a Firebase-Realtime-Database
// compatible REST endpoint. Subtrees map to `<base><path>.json` resources;
// PUT replaces a subtree wholesale and GET returns `null` for absent paths.
package rtdb

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"civicsync/internal/treestore/core"
)

// Compile-time contract assertion ensuring the store satisfies core.Store.
var _ core.Store = (*Store)(nil)

const defaultTimeout = 30 * time.Second

// Config holds explicit construction parameters (mostly for tests). For prod
// we rely primarily on environment variables.
type Config struct {
	BaseURL   string
	AuthToken string       // optional; database secret or OAuth token passed as ?auth=
	Client    *http.Client // optional override
}

// Environment variables:
//
//	CIVICSYNC_TREE_DRIVER=rtdb
//	CIVICSYNC_RTDB_URL=<database base url> (required)
//	CIVICSYNC_RTDB_AUTH=<auth token> (optional)

// Store implements core.Store over the RTDB REST protocol.
type Store struct {
	base   *url.URL
	auth   string
	client *http.Client
}

// New creates an RTDB tree store from Config.
func New(cfg Config) (*Store, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("rtdb base url required")
	}
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse rtdb url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("rtdb url must be http(s), got %q", cfg.BaseURL)
	}
	client := cfg.Client
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	return &Store{base: base, auth: cfg.AuthToken, client: client}, nil
}

// OpenFromEnv constructs an RTDB store from process environment.
func OpenFromEnv() (*Store, error) {
	baseURL := os.Getenv("CIVICSYNC_RTDB_URL")
	if baseURL == "" {
		return nil, fmt.Errorf("CIVICSYNC_RTDB_URL required for rtdb driver")
	}
	return New(Config{BaseURL: baseURL, AuthToken: os.Getenv("CIVICSYNC_RTDB_AUTH")})
}

// Driver returns the tree-store driver identifier.
func (s *Store) Driver() core.Driver { return core.DriverRTDB }

// SetSubtree PUTs the JSON encoding of value at path, replacing whatever was
// stored there.
func (s *Store) SetSubtree(ctx context.Context, path string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode subtree %s: %w", path, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, s.resourceURL(path), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build rtdb request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("put %s: %w", core.CleanPath(path), err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("put %s: %s: %s", core.CleanPath(path), resp.Status, snippet(resp.Body))
	}
	return nil
}

// GetSubtree GETs the subtree at path and decodes it into out. RTDB answers
// `null` (status 200) for absent paths; that maps to core.ErrNotFound.
func (s *Store) GetSubtree(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.resourceURL(path), nil)
	if err != nil {
		return fmt.Errorf("build rtdb request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("get %s: %w", core.CleanPath(path), err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode == http.StatusNotFound {
		return core.ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("get %s: %s: %s", core.CleanPath(path), resp.Status, snippet(resp.Body))
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s: %w", core.CleanPath(path), err)
	}
	if strings.TrimSpace(string(body)) == "null" {
		return core.ErrNotFound
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode subtree %s: %w", core.CleanPath(path), err)
	}
	return nil
}

func (s *Store) resourceURL(path string) string {
	u := *s.base
	u.Path = strings.TrimRight(u.Path, "/") + core.CleanPath(path) + ".json"
	if s.auth != "" {
		q := u.Query()
		q.Set("auth", s.auth)
		u.RawQuery = q.Encode()
	}
	return u.String()
}

// snippet returns a truncated error body for log context.
func snippet(r io.Reader) string {
	b, _ := io.ReadAll(io.LimitReader(r, 256))
	return strings.TrimSpace(string(b))
}
