package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/fkesheh/mcpsh/internal/config"
)

var addJSON bool

var addCmd = &cobra.Command{
	Use:   "add <name> <command> [args...]",
	Short: "Add an MCP server to the config",
	Long: `Add a server entry to the mcpsh config. With --config the entry goes to
that file, otherwise to ~/.mcpsh/mcp_config.json.

Examples:
  mcpsh add context7 npx -y @upstash/context7-mcp
  echo '{"command":"npx","args":["-y","server"]}' | mcpsh add myserver --json -`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		var sc *config.ServerConfig

		if addJSON {
			// Read JSON from remaining args or stdin
			var data []byte
			var err error

			if len(args) >= 2 && args[1] == "-" {
				data, err = io.ReadAll(io.LimitReader(os.Stdin, 1<<20)) // 1 MB limit
			} else if len(args) >= 2 {
				data = []byte(args[1])
			} else {
				return fmt.Errorf("--json requires a JSON string or '-' for stdin")
			}

			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}

			sc = &config.ServerConfig{}
			if err := json.Unmarshal(data, sc); err != nil {
				return fmt.Errorf("parse JSON: %w", err)
			}
		} else {
			if len(args) < 2 {
				return fmt.Errorf("usage: mcpsh add <name> <command> [args...]")
			}
			sc = &config.ServerConfig{
				Command: args[1],
				Args:    args[2:],
			}
		}

		path, err := writableConfigPath()
		if err != nil {
			return err
		}

		servers, err := config.Load(path)
		if err != nil {
			servers = make(map[string]*config.ServerConfig)
		}

		if _, exists := servers[name]; exists {
			return fmt.Errorf("server %q already exists in %s. Use 'mcpsh remove %s' first", name, path, name)
		}

		servers[name] = sc
		if err := config.Save(path, servers); err != nil {
			return fmt.Errorf("save config: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added %s to %s\n", name, path)
		return nil
	},
}

// writableConfigPath is the file add/remove edit: the --config flag when
// given, else the default path. The fallback chain is deliberately not
// consulted so editor configs are never modified.
func writableConfigPath() (string, error) {
	if flagConfig != "" {
		return flagConfig, nil
	}
	return config.DefaultPath()
}

func init() {
	addCmd.Flags().BoolVar(&addJSON, "json", false, "Parse server config from JSON")
	rootCmd.AddCommand(addCmd)
}
