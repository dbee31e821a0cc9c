// Package catalog is the read-through metadata cache between the registry
// and the dependency graph.
//
// Every document the registry returns is written to a [cache.Store] and
// served from there on later runs. Entries never expire: a present,
// parseable entry is trusted until [Catalog.Clear] is called. The store
// holds one index document under [IndexKey] and one document per package,
// keyed by package name.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/pscdeps/pkg/cache"
	"github.com/matzehuels/pscdeps/pkg/deps"
	"github.com/matzehuels/pscdeps/pkg/observability"
)

// IndexKey is the store key of the package index.
const IndexKey = "_index"

// DefaultConcurrency bounds the number of registry requests in flight.
const DefaultConcurrency = 8

// Catalog loads package metadata through a store. It is safe for
// concurrent use as long as a single process writes to the store.
type Catalog struct {
	Store    cache.Store
	Registry deps.Registry
	Logger   *log.Logger

	// Concurrency bounds parallel fetches. Zero means DefaultConcurrency.
	Concurrency int
}

// New creates a catalog. A nil logger discards output.
func New(store cache.Store, registry deps.Registry, logger *log.Logger) *Catalog {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Catalog{
		Store:       store,
		Registry:    registry,
		Logger:      logger,
		Concurrency: DefaultConcurrency,
	}
}

func (c *Catalog) limit() int {
	if c.Concurrency <= 0 {
		return DefaultConcurrency
	}
	return c.Concurrency
}

// LoadIndex returns the package index. A cached index is returned as-is;
// otherwise the registry is listed, every entry is canonicalized and the
// result is stored before it is returned.
func (c *Catalog) LoadIndex(ctx context.Context) ([]deps.ProjectRef, error) {
	var refs []deps.ProjectRef
	if c.read(ctx, IndexKey, "index", &refs) {
		c.Logger.Debug("loaded package index from cache", "packages", len(refs))
		return refs, nil
	}

	c.Logger.Info("fetching package index", "registry", c.Registry.Name())
	listed, err := c.Registry.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("list packages: %w", err)
	}

	refs = make([]deps.ProjectRef, len(listed))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.limit())
	for i, ref := range listed {
		g.Go(func() error {
			canonical, err := c.Registry.Canonicalize(gctx, ref)
			if err != nil {
				return fmt.Errorf("canonicalize %s: %w", ref.Name, err)
			}
			refs[i] = canonical
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := c.write(ctx, IndexKey, "index", refs); err != nil {
		return nil, err
	}
	c.Logger.Info("fetched package index", "packages", len(refs))
	return refs, nil
}

// LoadProject returns the metadata for ref. A cached document is returned
// as-is. On a miss the project is fetched, stamped with ref.URL and stored.
//
// A package the registry reports as missing or inaccessible is logged and
// yields (nil, nil). Any other failure is returned.
func (c *Catalog) LoadProject(ctx context.Context, ref deps.ProjectRef) (*deps.Project, error) {
	var cached deps.Project
	if c.read(ctx, ref.Name, "project", &cached) && cached.Name != "" {
		c.Logger.Debug("loaded from cache", "package", ref.Name, "version", cached.VersionOr("*"))
		return &cached, nil
	}

	c.Logger.Debug("fetching", "package", ref.Name)
	p, err := c.Registry.FetchProject(ctx, ref.Name)
	if err == nil && p == nil {
		err = fmt.Errorf("%w: empty response", deps.ErrNotFound)
	}
	if deps.IsAbsent(err) {
		c.Logger.Warn("skipping package", "package", ref.Name, "url", ref.URL, "reason", err)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", ref.Name, err)
	}

	if p.Name == "" {
		p.Name = ref.Name
	}
	p.URL = ref.URL
	if err := c.write(ctx, ref.Name, "project", p); err != nil {
		return nil, err
	}
	c.Logger.Info("fetched", "package", ref.Name, "version", p.VersionOr("*"))
	return p, nil
}

// Load returns every loadable project, in index order.
//
// Projects are loaded with bounded concurrency. The first fatal failure
// cancels the remaining fetches and is returned once all in-flight fetches
// have settled; documents stored before that point stay in the store.
// When some packages could not be fetched, the index is rewritten without
// them so later runs do not ask the registry again until the store is
// cleared.
func (c *Catalog) Load(ctx context.Context) ([]*deps.Project, error) {
	refs, err := c.LoadIndex(ctx)
	if err != nil {
		return nil, err
	}

	loaded := make([]*deps.Project, len(refs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.limit())
	for i, ref := range refs {
		g.Go(func() error {
			p, err := c.LoadProject(gctx, ref)
			if err != nil {
				return err
			}
			loaded[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	projects := make([]*deps.Project, 0, len(loaded))
	kept := make([]deps.ProjectRef, 0, len(loaded))
	for i, p := range loaded {
		if p == nil {
			continue
		}
		projects = append(projects, p)
		kept = append(kept, refs[i])
	}

	if len(kept) < len(refs) {
		c.Logger.Info("pruning unfetchable packages from index", "skipped", len(refs)-len(kept))
		if err := c.write(ctx, IndexKey, "index", kept); err != nil {
			return nil, err
		}
	}
	return projects, nil
}

// Clear removes every cached document.
func (c *Catalog) Clear(ctx context.Context) error {
	if err := c.Store.Clear(ctx); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	c.Logger.Info("cleared cache", "location", cache.Location(c.Store))
	return nil
}

// read decodes the document under key into v. Unreadable and malformed
// documents count as misses.
func (c *Catalog) read(ctx context.Context, key, keyType string, v any) bool {
	data, ok, err := c.Store.Get(ctx, key)
	if err != nil {
		c.Logger.Warn("cache read failed", "key", key, "err", err)
		ok = false
	}
	if ok {
		if err := json.Unmarshal(data, v); err != nil {
			c.Logger.Debug("ignoring malformed cache entry", "key", key, "err", err)
			ok = false
		}
	}
	if ok {
		observability.Cache().OnCacheHit(ctx, keyType)
	} else {
		observability.Cache().OnCacheMiss(ctx, keyType)
	}
	return ok
}

func (c *Catalog) write(ctx context.Context, key, keyType string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := c.Store.Set(ctx, key, data); err != nil {
		return fmt.Errorf("store %s: %w", key, err)
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
	return nil
}
