package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pscdeps/pkg/catalog"
	"github.com/matzehuels/pscdeps/pkg/observability"
	"github.com/matzehuels/pscdeps/pkg/query"
)

// Runner loads snapshots through a catalog.
//
// The Runner keeps no results of its own. Multiple goroutines can share one
// Runner; concurrent loads against the same store follow the catalog's
// single-writer rule.
type Runner struct {
	Catalog *catalog.Catalog
	Logger  *log.Logger
}

// NewRunner creates a runner. A nil logger discards output.
func NewRunner(cat *catalog.Catalog, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Runner{Catalog: cat, Logger: logger}
}

// Load reads every project and builds the dependency graph.
func (r *Runner) Load(ctx context.Context) (*Snapshot, error) {
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx)
	start := time.Now()

	projects, err := r.Catalog.Load(ctx)
	if err != nil {
		hooks.OnLoadComplete(ctx, 0, time.Since(start), err)
		return nil, fmt.Errorf("load: %w", err)
	}
	snap := NewSnapshot(projects)
	hooks.OnLoadComplete(ctx, len(projects), time.Since(start), nil)

	r.Logger.Info("built dependency graph",
		"packages", snap.Graph.NodeCount(),
		"edges", snap.Graph.EdgeCount(),
		"duration", time.Since(start))
	for _, e := range snap.Cycles {
		r.Logger.Warn("dependency cycle", "from", e.From, "to", e.To)
	}
	return snap, nil
}

// Lookup validates opts, loads a snapshot and queries it.
func (r *Runner) Lookup(ctx context.Context, opts query.Options) ([]query.Row, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	snap, err := r.Load(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Query(ctx, opts)
}
