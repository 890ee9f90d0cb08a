package cmd

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags; falls back to module info.
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the planweave version",
	Run: func(cmd *cobra.Command, args []string) {
		v := version
		if v == "dev" {
			if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
				v = info.Main.Version
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "planweave %s\n", v)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
