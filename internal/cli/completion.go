package cli

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pscdeps/pkg/catalog"
	"github.com/matzehuels/pscdeps/pkg/deps"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for pscdeps.

Package names complete from the cached index, so completion only offers
names once a lookup has populated the cache.

To load completions:

Bash:
  $ source <(pscdeps completion bash)

Zsh:
  $ pscdeps completion zsh > "${fpath[1]}/_pscdeps"

Fish:
  $ pscdeps completion fish > ~/.config/fish/completions/pscdeps.fish

PowerShell:
  PS> pscdeps completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}

	return cmd
}

// completePackages offers package names from the cached index. It never
// contacts the registry.
func (c *CLI) completePackages(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	store, err := cfg.OpenStore(ctx)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	defer store.Close()

	data, ok, err := store.Get(ctx, catalog.IndexKey)
	if err != nil || !ok {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var refs []deps.ProjectRef
	if err := json.Unmarshal(data, &refs); err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var names []string
	for _, r := range refs {
		if strings.HasPrefix(r.Name, toComplete) {
			names = append(names, r.Name)
		}
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
