package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/satishbabariya/simplesql/cli/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		info := version.Get()
		if versionFull {
			fmt.Fprintln(cmd.OutOrStdout(), info.FullString())
			return
		}
		fmt.Fprintln(cmd.OutOrStdout(), info.String())
	},
}

var versionFull bool

func init() {
	versionCmd.Flags().BoolVar(&versionFull, "full", false, "Include build and driver details")
	rootCmd.AddCommand(versionCmd)
}
