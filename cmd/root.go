package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cobra"

	"github.com/fkesheh/mcpsh/client"
	"github.com/fkesheh/mcpsh/internal/config"
	"github.com/fkesheh/mcpsh/internal/format"
	"github.com/fkesheh/mcpsh/internal/logging"
)

var (
	flagConfig    string
	flagFormat    string
	flagArgs      string
	flagResources bool
	flagPrompts   bool
	flagRead      string
	flagPrompt    string
	flagTimeout   time.Duration
	flagVerbose   bool
)

// session is the part of client.Session the root command uses.
// Tests substitute a fake through dialSession.
type session interface {
	ListTools(ctx context.Context) ([]mcp.Tool, error)
	Tool(ctx context.Context, name string) (*mcp.Tool, error)
	CallTool(ctx context.Context, name string, args map[string]any) (*mcp.CallToolResult, error)
	ListResources(ctx context.Context) ([]mcp.Resource, error)
	ReadResource(ctx context.Context, uri string) ([]mcp.ResourceContents, error)
	ListPrompts(ctx context.Context) ([]mcp.Prompt, error)
	GetPrompt(ctx context.Context, name string, args map[string]string) (*mcp.GetPromptResult, error)
	Close() error
}

var dialSession = func(ctx context.Context, name string, sc *config.ServerConfig) (session, error) {
	return client.Dial(ctx, name, sc)
}

var rootCmd = &cobra.Command{
	Use:   "mcpsh [server] [tool]",
	Short: "Inspect and invoke MCP servers from the command line",
	Long: `mcpsh is a progressive-disclosure client for MCP servers.

Run it bare to list configured servers, name a server to list its tools,
name a tool to see its schema, and pass --args to call the tool.`,
	Example: `  mcpsh
  mcpsh example
  mcpsh example greet
  mcpsh example greet --args '{"name": "Ada"}'
  mcpsh example --resources
  mcpsh example --read data://example/info`,
	Args:          cobra.MaximumNArgs(2),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "mcpsh: %v\n", err)
		os.Exit(1)
	}
}

func runRoot(cmd *cobra.Command, args []string) error {
	f, err := format.Parse(flagFormat)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	servers, path, source, err := loadServers()
	if err != nil {
		return err
	}

	if len(args) == 0 {
		if flagResources || flagPrompts || flagRead != "" || flagPrompt != "" || flagArgs != "" {
			return fmt.Errorf("a server name is required; run 'mcpsh' to list configured servers")
		}
		return format.Servers(out, f, servers, path, source)
	}

	server := args[0]
	sc, ok := servers[server]
	if !ok {
		return fmt.Errorf("server %q not found in %s (known servers: %s)",
			server, path, strings.Join(serverNames(servers), ", "))
	}

	logger, cleanup := newLogger()
	defer cleanup()
	logger = logging.ServerLogger(logger, server)

	ctx, cancel := context.WithTimeout(cmd.Context(), flagTimeout)
	defer cancel()

	start := time.Now()
	sess, err := dialSession(ctx, server, sc)
	if err != nil {
		logger.Error("connect failed", "error", err.Error())
		return err
	}
	defer sess.Close()
	logger.Info("connected", "elapsed", time.Since(start).String())

	switch {
	case flagRead != "":
		contents, err := sess.ReadResource(ctx, flagRead)
		if err != nil {
			return err
		}
		return format.ResourceContents(out, f, contents)

	case flagResources:
		resources, err := sess.ListResources(ctx)
		if err != nil {
			return err
		}
		return format.Resources(out, f, resources, server)

	case flagPrompt != "":
		promptArgs, err := parsePromptArgs(flagArgs)
		if err != nil {
			return err
		}
		res, err := sess.GetPrompt(ctx, flagPrompt, promptArgs)
		if err != nil {
			return err
		}
		return format.PromptMessages(out, f, res)

	case flagPrompts:
		prompts, err := sess.ListPrompts(ctx)
		if err != nil {
			return err
		}
		return format.Prompts(out, f, prompts, server)

	case len(args) == 1:
		if flagArgs != "" {
			return fmt.Errorf("--args requires a tool name: mcpsh %s <tool> --args '...'", server)
		}
		tools, err := sess.ListTools(ctx)
		if err != nil {
			return err
		}
		return format.Tools(out, f, tools, server)

	case flagArgs == "":
		tool, err := sess.Tool(ctx, args[1])
		if err != nil {
			return err
		}
		return format.ToolInfo(out, f, tool, server)

	default:
		var toolArgs map[string]any
		if err := json.Unmarshal([]byte(flagArgs), &toolArgs); err != nil {
			return fmt.Errorf("--args must be a JSON object: %w", err)
		}

		logger.Info("calling tool", "tool", args[1])
		res, err := sess.CallTool(ctx, args[1], toolArgs)
		if err != nil {
			logger.Error("tool call failed", "tool", args[1], "error", err.Error())
			return err
		}
		if res.IsError {
			return fmt.Errorf("tool %q failed: %s", args[1], client.ResultText(res))
		}
		logger.Info("tool call ok", "tool", args[1], "elapsed", time.Since(start).String())
		return format.CallResult(out, f, res)
	}
}

// loadServers resolves the config file and parses it, turning a fully
// missing config into a guided error.
func loadServers() (map[string]*config.ServerConfig, string, string, error) {
	path, source, err := config.Resolve(flagConfig)
	if err != nil {
		return nil, "", "", err
	}

	if source == config.SourceMissing {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, "", "", err
		}
		return nil, "", "", fmt.Errorf("no MCP config found (searched %s and $%s); run 'mcpsh init' to create one",
			strings.Join(config.SearchedPaths(home), ", "), config.EnvConfig)
	}

	servers, err := config.Load(path)
	if err != nil {
		return nil, "", "", err
	}
	return servers, path, source, nil
}

// parsePromptArgs decodes --args for prompt rendering, where the protocol
// wants string values.
func parsePromptArgs(raw string) (map[string]string, error) {
	if raw == "" {
		return nil, nil
	}
	var args map[string]string
	if err := json.Unmarshal([]byte(raw), &args); err != nil {
		return nil, fmt.Errorf("--args must be a JSON object of strings: %w", err)
	}
	return args, nil
}

func serverNames(servers map[string]*config.ServerConfig) []string {
	names := make([]string, 0, len(servers))
	for name := range servers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// newLogger opens the invocation log under ~/.mcpsh/logs. Logging is best
// effort: a failure to open the file never blocks the CLI.
func newLogger() (*slog.Logger, func()) {
	logDir, err := config.LogDir()
	if err == nil {
		err = config.EnsureDir(logDir, 0700)
	}
	if err != nil {
		return logging.Discard(), func() {}
	}

	level := slog.LevelInfo
	if flagVerbose {
		level = slog.LevelDebug
	}
	logger, cleanup, err := logging.Setup(logDir, level, flagVerbose)
	if err != nil {
		return logging.Discard(), func() {}
	}
	return logger, cleanup
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "Path to MCP config file")
	pf.StringVarP(&flagFormat, "format", "f", "table", "Output format: table or json")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "Mirror logs to stderr")

	flags := rootCmd.Flags()
	flags.StringVarP(&flagArgs, "args", "a", "", "Tool or prompt arguments as a JSON object")
	flags.BoolVar(&flagResources, "resources", false, "List the server's resources")
	flags.BoolVar(&flagPrompts, "prompts", false, "List the server's prompts")
	flags.StringVar(&flagRead, "read", "", "Read a resource by URI")
	flags.StringVar(&flagPrompt, "prompt", "", "Render a prompt by name")
	flags.DurationVar(&flagTimeout, "timeout", 60*time.Second, "Deadline for the whole invocation")
}
