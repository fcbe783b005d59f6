package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fkesheh/mcpsh/internal/config"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create an example config at the default location",
	Long: `Writes an example config to ~/.mcpsh/mcp_config.json with a single
server entry for @modelcontextprotocol/server-everything. Edit it to add
your own servers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.DefaultPath()
		if err != nil {
			return err
		}

		if _, err := os.Stat(path); err == nil && !initForce {
			return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
		}

		example := map[string]*config.ServerConfig{
			"everything": {
				Command: "npx",
				Args:    []string{"-y", "@modelcontextprotocol/server-everything"},
			},
		}
		if err := config.Save(path, example); err != nil {
			return fmt.Errorf("write config: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Created %s\n", path)
		fmt.Fprintln(out, "Run 'mcpsh' to list servers or 'mcpsh everything' to try it out.")
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config")
	rootCmd.AddCommand(initCmd)
}
