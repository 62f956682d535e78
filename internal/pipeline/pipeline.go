// Package pipeline wires extraction, normalization, name resolution, and the
// remote tree write into one sequential run.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"civicsync/internal/mapping"
	"civicsync/internal/rating"
	"civicsync/internal/resolver"
	"civicsync/internal/treestore"
	"civicsync/internal/warehouse"
)

// DefaultIssuesPath is the subtree replaced wholesale on every run.
const DefaultIssuesPath = "/politician_issues"

// Source yields rating rows; *warehouse.Client satisfies it and tests
// substitute fixed row sets.
type Source interface {
	FetchIssueRatings(ctx context.Context) ([]warehouse.Row, error)
}

// Config carries the run parameters main assembles from the environment.
type Config struct {
	IssuesPath      string // default DefaultIssuesPath
	MetricsTextfile string // optional; written after a successful run
}

// Pipeline executes one sync run. It owns the mapping store and the target
// subtree for the run's duration; there is no concurrent execution.
type Pipeline struct {
	source   Source
	tree     treestore.Store
	resolver *resolver.Resolver
	mapping  *mapping.Store
	cfg      Config
	metrics  *Metrics
	log      *zap.Logger
}

// New assembles a pipeline.
func New(source Source, tree treestore.Store, res *resolver.Resolver, m *mapping.Store, cfg Config, log *zap.Logger) *Pipeline {
	if cfg.IssuesPath == "" {
		cfg.IssuesPath = DefaultIssuesPath
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{
		source:   source,
		tree:     tree,
		resolver: res,
		mapping:  m,
		cfg:      cfg,
		metrics:  NewMetrics(),
		log:      log,
	}
}

// Run executes the full sync once: fetch rows, normalize and resolve them,
// then replace the issues subtree in a single write. Any failure aborts the
// run; nothing is partially committed because the remote write is one call.
func (p *Pipeline) Run(ctx context.Context) error {
	started := time.Now()
	p.log.Info("starting politician issues sync")

	rows, err := p.source.FetchIssueRatings(ctx)
	if err != nil {
		return fmt.Errorf("fetch issue ratings: %w", err)
	}
	p.metrics.rowsFetched.Add(float64(len(rows)))
	p.log.Info("fetched rating rows", zap.Int("rows", len(rows)))

	tree := p.buildTree(rows)

	path := treestore.CleanPath(p.cfg.IssuesPath)
	if err := p.tree.SetSubtree(ctx, path, tree); err != nil {
		return fmt.Errorf("write issues subtree %s: %w", path, err)
	}
	p.log.Info("replaced issues subtree",
		zap.String("path", path), zap.Int("politicians", len(tree)))

	if err := p.mapping.Save(); err != nil {
		return fmt.Errorf("save politician mappings: %w", err)
	}

	p.metrics.politiciansWritten.Set(float64(len(tree)))
	p.metrics.runDuration.Set(time.Since(started).Seconds())
	p.metrics.runSucceeded.Set(1)
	if p.cfg.MetricsTextfile != "" {
		if err := p.metrics.WriteTextfile(p.cfg.MetricsTextfile); err != nil {
			return fmt.Errorf("write metrics textfile: %w", err)
		}
	}

	p.log.Info("sync completed", zap.Duration("elapsed", time.Since(started)))
	return nil
}

// buildTree groups normalized ratings by resolved politician id. Rows
// missing a candidate name or issue column are skipped, never fatal.
func (p *Pipeline) buildTree(rows []warehouse.Row) map[string]map[string]int {
	tree := make(map[string]map[string]int)
	for _, row := range rows {
		if row.CandidateName == "" || row.IssueColumn == "" {
			p.metrics.rowsSkipped.Inc()
			continue
		}
		id, tier := p.resolver.Resolve(row.CandidateName)
		if id == "" {
			// Names with no letter tokens slug to nothing; an empty key
			// would poison the whole subtree write.
			p.log.Warn("candidate name is unresolvable, skipping",
				zap.String("name", row.CandidateName))
			p.metrics.rowsSkipped.Inc()
			continue
		}
		p.metrics.observeResolution(tier)

		issues, ok := tree[id]
		if !ok {
			issues = make(map[string]int)
			tree[id] = issues
		}
		issues[rating.DisplayName(row.IssueColumn)] = rating.Value(row.RawValue)
	}
	return tree
}
