package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/pscdeps/pkg/query"
	"github.com/matzehuels/pscdeps/pkg/render"
)

// lookupOptions holds the flag values of lookup and graph.
type lookupOptions struct {
	format   string
	markdown bool
	direct   bool
	owners   []string
}

func (o *lookupOptions) query(args []string) query.Options {
	opts := query.Options{Owners: o.owners, DirectOnly: o.direct}
	if len(args) > 0 {
		opts.Root = args[0]
	}
	return opts
}

func (o *lookupOptions) addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&o.direct, "direct", false, "only list direct dependents")
	cmd.Flags().StringSliceVar(&o.owners, "filter-owners", nil, "only list packages hosted by these GitHub owners (comma-separated)")
}

// lookupCommand creates the lookup command.
func (c *CLI) lookupCommand() *cobra.Command {
	opts := &lookupOptions{}

	cmd := &cobra.Command{
		Use:   "lookup <package>",
		Short: "List the packages that depend on a package",
		Long: `List every package in the registry that depends on <package>, directly
or through other packages. Transitive dependents are marked with "*".

Package names are registry names, e.g. "purescript-arrays".`,
		Example: `  pscdeps lookup purescript-arrays
  pscdeps lookup purescript-prelude --direct --filter-owners purescript,purescript-contrib
  pscdeps lookup purescript-maybe --markdown > checklist.md`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: c.completePackages,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLookup(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", string(render.FormatText), "output format: text, markdown or json")
	cmd.Flags().BoolVar(&opts.markdown, "markdown", false, "shorthand for --format markdown")
	cmd.MarkFlagsMutuallyExclusive("markdown", "format")
	opts.addFilterFlags(cmd)

	return cmd
}

func (c *CLI) runLookup(cmd *cobra.Command, args []string, opts *lookupOptions) error {
	q := opts.query(args)
	if err := q.Validate(); err != nil {
		return err
	}
	name := opts.format
	if opts.markdown {
		name = string(render.FormatMarkdown)
	}
	format, err := render.ParseFormat(name, render.RowFormats)
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

	out := cmd.OutOrStdout()
	styled := isTerminal(out)
	if err := render.WriteRows(out, format, rows, render.Options{Styled: styled}); err != nil {
		return err
	}

	if styled {
		direct := 0
		for _, r := range rows {
			if !r.Transitive {
				direct++
			}
		}
		printCounts(cmd.ErrOrStderr(), direct, len(rows)-direct)
	}
	if _, ok := snap.Project(q.Root); !ok {
		c.Logger.Warn("package is not in the registry index", "package", q.Root)
	}
	return nil
}
