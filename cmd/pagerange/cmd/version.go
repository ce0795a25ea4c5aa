package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

var (
	Version   = "0.1.0"
	GitCommit = "development"
	BuildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "pagerange v%s\n", Version)
		fmt.Fprintf(cmd.OutOrStdout(), "  Git Commit: %s\n", GitCommit)
		fmt.Fprintf(cmd.OutOrStdout(), "  Build Date: %s\n", BuildDate)
		fmt.Fprintf(cmd.OutOrStdout(), "  Go Version: %s\n", runtime.Version())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
