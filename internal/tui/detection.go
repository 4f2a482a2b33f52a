package tui

import (
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/libractl/internal/util"
)

// flags that mean the caller is scripting
var scriptingFlags = []string{"no-interactive", "json"}

// ShouldUseTUI reports whether cmd may open an interactive screen. Both
// stdin and stdout must be terminals and no scripting flag may be set.
func ShouldUseTUI(cmd *cobra.Command) bool {
	if !util.IsTTY() || !util.StdinIsTTY() {
		return false
	}
	for _, name := range scriptingFlags {
		if on, _ := cmd.Flags().GetBool(name); on {
			return false
		}
	}
	return true
}
