package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fkesheh/mcpsh/client"
)

var (
	version = "dev"
	commit  = "none"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "mcpsh %s (commit: %s)\n", version, commit)
	},
}

func init() {
	client.Version = version
	rootCmd.AddCommand(versionCmd)
}
