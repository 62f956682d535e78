package treestore

import (
	"context"
	"fmt"
	"os"

	"civicsync/internal/infra/treestore/memory"
	"civicsync/internal/infra/treestore/rtdb"
	infraS3 "civicsync/internal/infra/treestore/s3"
)

// Open selects a treestore.Store implementation using environment variables.
//
//	CIVICSYNC_TREE_DRIVER: rtdb|s3|memory (default rtdb)
//	(driver-specific variables documented in the driver packages)
func Open(ctx context.Context) (Store, error) {
	driver := os.Getenv("CIVICSYNC_TREE_DRIVER")
	if driver == "" {
		driver = string(DriverRTDB)
	}
	switch Driver(driver) {
	case DriverRTDB:
		return rtdb.OpenFromEnv()
	case DriverS3:
		return infraS3.OpenFromEnv(ctx)
	case DriverMemory:
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown tree driver %s", driver)
	}
}

// NewMemory returns the in-memory driver for cross-package tests.
func NewMemory() Store { return memory.New() }
