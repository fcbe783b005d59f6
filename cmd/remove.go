package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fkesheh/mcpsh/internal/config"
)

var removeCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove an MCP server from the config",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		path, err := writableConfigPath()
		if err != nil {
			return err
		}

		servers, err := config.Load(path)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		if _, exists := servers[name]; !exists {
			return fmt.Errorf("server %q not found in %s", name, path)
		}

		delete(servers, name)
		if err := config.Save(path, servers); err != nil {
			return fmt.Errorf("save config: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from %s\n", name, path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(removeCmd)
}
