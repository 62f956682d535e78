// Command issue-sync performs a one-shot sync of candidate issue ratings
// from the analytics warehouse into the remote politician issue tree.
//
// The job takes no flags; all configuration comes from the environment (see
// the package-level variable blocks in internal/warehouse and
// internal/infra/treestore). Exit code is 0 on success and 1 on any
// connection, query, or write failure.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"civicsync/internal/mapping"
	"civicsync/internal/pipeline"
	"civicsync/internal/resolver"
	"civicsync/internal/treestore"
	"civicsync/internal/warehouse"
)

const defaultMappingFile = "politician_mapping.json"

func main() {
	os.Exit(run())
}

func run() int {
	logger, err := newLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "build logger: %v\n", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()
	log := logger.With(zap.String("run_id", uuid.NewString()))

	ctx := context.Background()

	wh, err := warehouse.OpenFromEnv(ctx)
	if err != nil {
		log.Error("failed to connect to warehouse", zap.Error(err))
		return 1
	}
	defer func() { _ = wh.Close() }()
	log.Info("warehouse connection established", zap.String("view", wh.View()))

	tree, err := treestore.Open(ctx)
	if err != nil {
		log.Error("failed to open tree store", zap.Error(err))
		return 1
	}
	log.Info("tree store ready", zap.String("driver", string(tree.Driver())))

	mapStore := mapping.Open(envOr("CIVICSYNC_MAPPING_FILE", defaultMappingFile), log)

	threshold, err := matchThreshold()
	if err != nil {
		log.Error("invalid match threshold", zap.Error(err))
		return 1
	}
	res := resolver.New(mapStore, threshold, log)
	if path, ok := politiciansPath(); ok {
		res.LoadIndex(ctx, tree, path)
	}

	p := pipeline.New(wh, tree, res, mapStore, pipeline.Config{
		IssuesPath:      envOr("CIVICSYNC_ISSUES_PATH", pipeline.DefaultIssuesPath),
		MetricsTextfile: os.Getenv("CIVICSYNC_METRICS_TEXTFILE"),
	}, log)

	if err := p.Run(ctx); err != nil {
		log.Error("pipeline failed", zap.Error(err))
		return 1
	}
	return 0
}

func newLogger() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if lvl := os.Getenv("CIVICSYNC_LOG_LEVEL"); lvl != "" {
		parsed, err := zapcore.ParseLevel(lvl)
		if err != nil {
			return nil, fmt.Errorf("parse CIVICSYNC_LOG_LEVEL: %w", err)
		}
		cfg.Level = zap.NewAtomicLevelAt(parsed)
	}
	return cfg.Build()
}

// politiciansPath returns the read-only index path for the resolver's index
// tier. Unset defaults to /politicians; set-but-empty disables the tier.
func politiciansPath() (string, bool) {
	path, set := os.LookupEnv("CIVICSYNC_POLITICIANS_PATH")
	if !set {
		return "/politicians", true
	}
	if path == "" {
		return "", false
	}
	return path, true
}

func matchThreshold() (float64, error) {
	raw := os.Getenv("CIVICSYNC_MATCH_THRESHOLD")
	if raw == "" {
		return resolver.DefaultThreshold, nil
	}
	threshold, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("parse CIVICSYNC_MATCH_THRESHOLD: %w", err)
	}
	if threshold <= 0 || threshold > 1 {
		return 0, fmt.Errorf("CIVICSYNC_MATCH_THRESHOLD must be in (0, 1], got %v", threshold)
	}
	return threshold, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
