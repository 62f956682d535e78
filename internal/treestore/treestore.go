// Package treestore re-exports the remote tree abstractions for stable
// internal imports. Other packages depend on treestore.Store; only this
// package wraps the infra-backed drivers.
package treestore

import (
	"civicsync/internal/treestore/core"
)

type (
	// Driver identifies a tree-store backend driver.
	Driver = core.Driver
	// Store is the interface for remote hierarchical key/value backends.
	Store = core.Store
)

const (
	// DriverRTDB is the Firebase-RTDB-compatible REST driver.
	DriverRTDB = core.DriverRTDB
	// DriverS3 is the S3-compatible driver.
	DriverS3 = core.DriverS3
	// DriverMemory is the in-memory test driver.
	DriverMemory = core.DriverMemory
)

// ErrNotFound indicates the requested subtree does not exist.
var ErrNotFound = core.ErrNotFound

// CleanPath normalizes a subtree path to its canonical slash form.
func CleanPath(p string) string { return core.CleanPath(p) }
