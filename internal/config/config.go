package config

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"sort"
)

// ServerConfig describes how to launch one MCP server subprocess.
// The schema is the same one Claude Desktop and Cursor use, so their
// config files can be consumed directly.
type ServerConfig struct {
	Command string            `json:"command"`
	Args    []string          `json:"args,omitempty"`
	Env     map[string]string `json:"env,omitempty"`
}

type configFile struct {
	MCPServers map[string]*ServerConfig `json:"mcpServers"`
}

// Load reads a config file and returns its mcpServers map.
// A file without an mcpServers key yields an empty map.
func Load(path string) (map[string]*ServerConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	var cf configFile
	if err := json.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cf.MCPServers == nil {
		cf.MCPServers = make(map[string]*ServerConfig)
	}
	return cf.MCPServers, nil
}

// ListServers returns the configured server names, sorted.
func ListServers(path string) ([]string, error) {
	servers, err := Load(path)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(servers))
	for name := range servers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Save writes the mcpServers map back to path atomically.
func Save(path string, servers map[string]*ServerConfig) error {
	data, err := json.MarshalIndent(configFile{MCPServers: servers}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	data = append(data, '\n')
	return AtomicWriteFile(path, data, 0600)
}

var envVarPattern = regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)

// ResolveEnv resolves $VAR references in env values from the process environment.
func ResolveEnv(env map[string]string) map[string]string {
	if env == nil {
		return nil
	}
	resolved := make(map[string]string, len(env))
	for k, v := range env {
		resolved[k] = envVarPattern.ReplaceAllStringFunc(v, func(match string) string {
			return os.Getenv(match[1:]) // strip leading $
		})
	}
	return resolved
}
