package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pscdeps/pkg/render"
)

// graphCommand creates the graph command.
func (c *CLI) graphCommand() *cobra.Command {
	opts := &lookupOptions{}
	var output string

	cmd := &cobra.Command{
		Use:   "graph <package>",
		Short: "Draw the dependents of a package as a graph",
		Long: `Draw <package> and its dependents with the dependency edges between
them. DOT output can be fed to Graphviz; SVG is rendered in-process.

The root is highlighted and transitive dependents are drawn dashed.`,
		Example: `  pscdeps graph purescript-arrays -o arrays.svg
  pscdeps graph purescript-maybe --format dot | dot -Tpng > maybe.png`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: c.completePackages,
		RunE: func(cmd *cobra.Command, args []string) error {
			q := opts.query(args)
			if err := q.Validate(); err != nil {
				return err
			}
			format, err := render.ParseFormat(opts.format, render.GraphFormats)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			snap, err := c.loadSnapshot(ctx)
			if err != nil {
				return err
			}
			rows, err := snap.Query(ctx, q)
			if err != nil {
				return err
			}

			data := []byte(render.ToDOT(snap.Graph, q.Root, rows))
			if format == render.FormatSVG {
				if data, err = render.RenderSVG(ctx, string(data)); err != nil {
					return err
				}
			}

			if output == "" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			printSuccess(cmd.ErrOrStderr(), "Drew %s with %d dependents", q.Root, len(rows))
			printFile(cmd.ErrOrStderr(), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", string(render.FormatSVG), "output format: dot or svg")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	opts.addFilterFlags(cmd)

	return cmd
}
