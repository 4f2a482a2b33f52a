package app

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

var appVersion = "dev"

// SetVersion records the build version reported by 'libractl version'.
func SetVersion(v string) {
	if v != "" {
		appVersion = v
	}
	rootCmd.Version = appVersion
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the libractl version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("libractl %s (%s/%s)\n", appVersion, runtime.GOOS, runtime.GOARCH)
		},
	}
}
