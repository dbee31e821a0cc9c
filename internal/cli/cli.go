// Package cli implements the pscdeps command-line interface.
//
// # Commands
//
//   - lookup: list the packages that depend on a package
//   - graph: draw those dependents as a DOT or SVG graph
//   - serve: answer lookups over HTTP
//   - cache: clear or locate the metadata cache
//   - completion: generate shell completion scripts
//
// Every command that needs package data loads the full catalog first. The
// first run fetches the registry and takes a while; later runs read the
// cache.
//
// # Logging
//
// Progress is logged to stderr with charmbracelet/log. --verbose (-v)
// switches to debug level, which also reports every cache hit and
// registry request. Results go to stdout so they can be piped.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pscdeps/pkg/buildinfo"
	"github.com/matzehuels/pscdeps/pkg/cache"
	"github.com/matzehuels/pscdeps/pkg/catalog"
	"github.com/matzehuels/pscdeps/pkg/config"
	"github.com/matzehuels/pscdeps/pkg/deps"
	"github.com/matzehuels/pscdeps/pkg/observability"
	"github.com/matzehuels/pscdeps/pkg/pipeline"
	"github.com/matzehuels/pscdeps/pkg/registry"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// flag values
	verbose    bool
	configPath string
	cacheDir   string
	store      string

	// newRegistry replaces the Bower gateway, for tests.
	newRegistry func(*config.Config) deps.Registry
}

// New creates a CLI logging to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "pscdeps",
		Short: "pscdeps finds the packages that depend on a PureScript package",
		Long: `pscdeps builds the dependency graph of every PureScript package in the
Bower registry and lists who depends on a given package, directly or
transitively. Registry metadata is cached locally; clear the cache to
pick up new releases.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
				observability.SetHTTPHooks(httpLogHooks{logger: c.Logger})
			}
			return nil
		},
	}
	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")
	flags.StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/pscdeps/config.toml)")
	flags.StringVar(&c.cacheDir, "cache-dir", "", "directory of the file store")
	flags.StringVar(&c.store, "store", "", "metadata store: file, memory, redis or mongo")

	root.AddCommand(c.lookupCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the configuration and applies global flags on top.
func (c *CLI) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	if c.cacheDir != "" {
		cfg.Cache.Dir = c.cacheDir
	}
	if c.store != "" {
		cfg.Cache.Store = c.store
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openCatalog connects the configured store and registry. The returned
// function closes the store.
func (c *CLI) openCatalog(ctx context.Context, cfg *config.Config) (*catalog.Catalog, func(), error) {
	store, err := cfg.OpenStore(ctx)
	if err != nil {
		return nil, nil, err
	}
	var reg deps.Registry = registry.New(cfg.RegistryOptions())
	if c.newRegistry != nil {
		reg = c.newRegistry(cfg)
	}
	if cfg.GitHub.Token == "" {
		c.Logger.Debug("no GitHub token set, API requests are rate limited", "env", config.EnvGitHubToken)
	}

	cat := catalog.New(store, reg, c.Logger)
	cat.Concurrency = cfg.Cache.Concurrency
	c.Logger.Debug("opened catalog", "store", cache.Location(store), "registry", reg.Name(), "keyword", cfg.Registry.Keyword)

	closeStore := func() {
		if err := store.Close(); err != nil {
			c.Logger.Warn("closing store", "err", err)
		}
	}
	return cat, closeStore, nil
}

// loadSnapshot loads the full project set.
func (c *CLI) loadSnapshot(ctx context.Context) (*pipeline.Snapshot, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	cat, closeStore, err := c.openCatalog(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer closeStore()

	prog := newProgress(c.Logger)
	snap, err := pipeline.NewRunner(cat, c.Logger).Load(ctx)
	if err != nil {
		return nil, err
	}
	prog.done(fmt.Sprintf("Loaded %d packages", len(snap.Projects)))
	return snap, nil
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
