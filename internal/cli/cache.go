package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pscdeps/pkg/cache"
	"github.com/matzehuels/pscdeps/pkg/config"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the package metadata cache",
		Long: `Cached metadata never expires. Clear the cache to pick up packages and
releases published since the last fetch.`,
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached package metadata",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			cat, closeStore, err := c.openCatalog(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			if err := cat.Clear(cmd.Context()); err != nil {
				return err
			}
			printSuccess(cmd.ErrOrStderr(), "Cleared cache")
			printDetail(cmd.ErrOrStderr(), "Location: %s", cache.Location(cat.Store))
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where cached metadata is stored",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if cfg.Cache.Store == config.StoreFile {
				fmt.Fprintln(cmd.OutOrStdout(), cfg.Cache.Dir)
				return nil
			}
			store, err := cfg.OpenStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()
			fmt.Fprintln(cmd.OutOrStdout(), cache.Location(store))
			return nil
		},
	}
}
