// Package core defines the remote tree-store abstractions shared by drivers.
package core

import (
	"context"
	"errors"
	"strings"
)

// Driver identifies a tree-store backend driver.
type Driver string

const (
	// DriverRTDB talks to a Firebase-RTDB-compatible REST endpoint.
	DriverRTDB Driver = "rtdb"
	// DriverS3 stores one JSON document per subtree in an S3 bucket.
	DriverS3 Driver = "s3"
	// DriverMemory is the in-memory test driver.
	DriverMemory Driver = "memory"
)

// ErrNotFound indicates the requested subtree does not exist.
var ErrNotFound = errors.New("treestore: subtree not found")

// Store is a hierarchical key/value store addressed by slash-separated
// paths. SetSubtree replaces the addressed subtree wholesale; there is no
// merge with prior contents.
type Store interface {
	SetSubtree(ctx context.Context, path string, value any) error
	// GetSubtree decodes the subtree at path into out, which must be a
	// pointer. Returns ErrNotFound when nothing is stored there.
	GetSubtree(ctx context.Context, path string, out any) error
	Driver() Driver
}

// CleanPath normalizes a subtree path to a single-leading-slash form with no
// trailing slash, so "/politician_issues", "politician_issues", and
// "politician_issues/" all address the same subtree.
func CleanPath(p string) string {
	p = strings.Trim(strings.TrimSpace(p), "/")
	return "/" + p
}
