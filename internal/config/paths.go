package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// EnvConfig is the environment variable that overrides the config location.
const EnvConfig = "MCPSH_CONFIG"

// Human-readable source labels returned by Resolve.
const (
	SourceFlag    = "--config flag"
	SourceEnv     = "MCPSH_CONFIG environment variable"
	SourceDefault = "default location (~/.mcpsh/mcp_config.json)"
	SourceClaude  = "Claude Desktop config"
	SourceCursor  = "Cursor config"
	SourceMissing = "default location (not found)"
)

// Dir returns the mcpsh directory (~/.mcpsh).
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config dir: %w", err)
	}
	return filepath.Join(home, ".mcpsh"), nil
}

// DefaultPath returns the default config file path (~/.mcpsh/mcp_config.json).
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "mcp_config.json"), nil
}

// LogDir returns the directory for mcpsh log files.
func LogDir() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "logs"), nil
}

// Resolve returns the config file to use and a description of where it
// came from. Priority: explicit path > MCPSH_CONFIG > default file >
// Claude Desktop config > Cursor config. An explicit path wins even if
// the file does not exist (loading reports the error); an MCPSH_CONFIG
// pointing at a missing file falls through to the default chain.
func Resolve(explicit string) (string, string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", "", fmt.Errorf("resolve config: %w", err)
	}
	path, source := resolveIn(explicit, home)
	return path, source, nil
}

func resolveIn(explicit, home string) (string, string) {
	if explicit != "" {
		return expandTilde(explicit, home), SourceFlag
	}

	if env := os.Getenv(EnvConfig); env != "" {
		p := expandTilde(env, home)
		if fileExists(p) {
			return p, SourceEnv
		}
	}

	def := filepath.Join(home, ".mcpsh", "mcp_config.json")
	if fileExists(def) {
		return def, SourceDefault
	}

	if p := claudeDesktopPath(home); fileExists(p) {
		return p, SourceClaude
	}

	if p := cursorPath(home); fileExists(p) {
		return p, SourceCursor
	}

	return def, SourceMissing
}

// SearchedPaths lists the fallback locations, for error messages.
func SearchedPaths(home string) []string {
	return []string{
		filepath.Join(home, ".mcpsh", "mcp_config.json"),
		claudeDesktopPath(home),
		cursorPath(home),
	}
}

func claudeDesktopPath(home string) string {
	if runtime.GOOS == "darwin" {
		return filepath.Join(home, "Library", "Application Support", "Claude", "claude_desktop_config.json")
	}
	return filepath.Join(home, ".config", "Claude", "claude_desktop_config.json")
}

func cursorPath(home string) string {
	return filepath.Join(home, ".cursor", "mcp.json")
}

func expandTilde(path, home string) string {
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
