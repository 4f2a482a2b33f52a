package app

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"
)

// completionWriters maps a shell name to its cobra generator.
var completionWriters = map[string]func(root *cobra.Command, w io.Writer, desc bool) error{
	"bash": func(root *cobra.Command, w io.Writer, desc bool) error {
		return root.GenBashCompletionV2(w, desc)
	},
	"zsh": func(root *cobra.Command, w io.Writer, desc bool) error {
		if desc {
			return root.GenZshCompletion(w)
		}
		return root.GenZshCompletionNoDesc(w)
	},
	"fish": func(root *cobra.Command, w io.Writer, desc bool) error {
		return root.GenFishCompletion(w, desc)
	},
	"powershell": func(root *cobra.Command, w io.Writer, desc bool) error {
		if desc {
			return root.GenPowerShellCompletionWithDesc(w)
		}
		return root.GenPowerShellCompletion(w)
	},
}

func completionShells() []string {
	shells := make([]string, 0, len(completionWriters))
	for s := range completionWriters {
		shells = append(shells, s)
	}
	sort.Strings(shells)
	return shells
}

func newCompletionCmd() *cobra.Command {
	var noDesc bool

	cmd := &cobra.Command{
		Use:   "completion <shell>",
		Short: "Print a shell completion script",
		Long: `Print a completion script for bash, zsh, fish or powershell.

Examples:
  source <(libractl completion bash)
  libractl completion zsh > "${fpath[1]}/_libractl"
  libractl completion fish > ~/.config/fish/completions/libractl.fish`,
		Args:                  cobra.ExactArgs(1),
		DisableFlagsInUseLine: true,
		ValidArgs:             completionShells(),
		RunE: func(cmd *cobra.Command, args []string) error {
			gen, ok := completionWriters[args[0]]
			if !ok {
				return fmt.Errorf("unsupported shell %q (want one of %v)", args[0], completionShells())
			}
			return gen(cmd.Root(), cmd.OutOrStdout(), !noDesc)
		},
	}

	cmd.Flags().BoolVar(&noDesc, "no-descriptions", false, "Leave command descriptions out of the script")
	return cmd
}
