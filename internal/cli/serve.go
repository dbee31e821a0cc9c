package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/pscdeps/pkg/buildinfo"
	"github.com/matzehuels/pscdeps/pkg/server"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Answer dependent lookups over HTTP",
		Long: `Load the registry once and serve lookups until interrupted.

Endpoints:
  GET /healthz
  GET /v1/packages
  GET /v1/dependents/{name}?direct=true&owners=a,b&format=json|text|markdown|dot|svg

The loaded snapshot is not refreshed; restart the server after clearing
the cache to pick up new releases.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Server.Addr
			}

			ctx := cmd.Context()
			snap, err := c.loadSnapshot(ctx)
			if err != nil {
				return err
			}
			srv, err := server.New(snap, c.Logger, server.Options{
				CacheSize: cfg.Server.ResponseCacheSize,
				Version:   buildinfo.Short(),
			})
			if err != nil {
				return err
			}
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	return cmd
}
