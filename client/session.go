// Package client is the programmatic API behind the mcpsh CLI. It resolves
// server definitions from mcpsh config files and delegates all protocol work
// to github.com/mark3labs/mcp-go.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	mcpclient "github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/fkesheh/mcpsh/internal/config"
)

// Version is reported to servers in the MCP handshake. Overridden at build time.
var Version = "dev"

// Options controls how Connect locates the server definition.
type Options struct {
	// ConfigPath is an explicit config file. Empty means the default
	// resolution chain (MCPSH_CONFIG, ~/.mcpsh, Claude Desktop, Cursor).
	ConfigPath string
}

// Session is a live connection to a single MCP server subprocess.
// One session carries one request/response exchange at a time.
type Session struct {
	server     string
	mcp        *mcpclient.Client
	serverInfo mcp.Implementation
}

// Connect resolves the named server from config and opens a session to it.
func Connect(ctx context.Context, server string, opts Options) (*Session, error) {
	path, _, err := config.Resolve(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	servers, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	sc, ok := servers[server]
	if !ok {
		return nil, fmt.Errorf("server %q not found in %s", server, path)
	}
	return Dial(ctx, server, sc)
}

// Dial opens a session using an already-loaded server definition.
func Dial(ctx context.Context, name string, sc *config.ServerConfig) (*Session, error) {
	env := make([]string, 0, len(sc.Env))
	for k, v := range config.ResolveEnv(sc.Env) {
		env = append(env, k+"="+v)
	}

	c, err := mcpclient.NewStdioMCPClient(sc.Command, env, sc.Args...)
	if err != nil {
		return nil, fmt.Errorf("start server %q (%s): %w", name, sc.Command, err)
	}

	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{Name: "mcpsh", Version: Version}
	initReq.Params.Capabilities = mcp.ClientCapabilities{}

	res, err := c.Initialize(ctx, initReq)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("initialize server %q: %w", name, err)
	}

	return &Session{server: name, mcp: c, serverInfo: res.ServerInfo}, nil
}

// ServerInfo returns the name and version the server reported during the handshake.
func (s *Session) ServerInfo() mcp.Implementation {
	return s.serverInfo
}

// Close shuts down the server subprocess.
func (s *Session) Close() error {
	return s.mcp.Close()
}

// ListTools returns all tools exposed by the server.
func (s *Session) ListTools(ctx context.Context) ([]mcp.Tool, error) {
	res, err := s.mcp.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		return nil, fmt.Errorf("list tools: %w", err)
	}
	return res.Tools, nil
}

// Tool returns a single tool by name.
func (s *Session) Tool(ctx context.Context, name string) (*mcp.Tool, error) {
	tools, err := s.ListTools(ctx)
	if err != nil {
		return nil, err
	}
	for i := range tools {
		if tools[i].Name == name {
			return &tools[i], nil
		}
	}
	return nil, fmt.Errorf("tool %q not found on server %q", name, s.server)
}

// CallTool invokes a tool and returns the raw result.
func (s *Session) CallTool(ctx context.Context, name string, args map[string]any) (*mcp.CallToolResult, error) {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args

	res, err := s.mcp.CallTool(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("call tool %q: %w", name, err)
	}
	return res, nil
}

// CallToolJSON invokes a tool and parses its text content as JSON.
func (s *Session) CallToolJSON(ctx context.Context, name string, args map[string]any) (any, error) {
	res, err := s.CallTool(ctx, name, args)
	if err != nil {
		return nil, err
	}
	if res.IsError {
		return nil, fmt.Errorf("tool %q failed: %s", name, ResultText(res))
	}
	var v any
	if err := json.Unmarshal([]byte(ResultText(res)), &v); err != nil {
		return nil, fmt.Errorf("tool %q returned non-JSON content: %w", name, err)
	}
	return v, nil
}

// ListResources returns all resources exposed by the server.
func (s *Session) ListResources(ctx context.Context) ([]mcp.Resource, error) {
	res, err := s.mcp.ListResources(ctx, mcp.ListResourcesRequest{})
	if err != nil {
		return nil, fmt.Errorf("list resources: %w", err)
	}
	return res.Resources, nil
}

// ReadResource fetches the contents of a resource by URI.
func (s *Session) ReadResource(ctx context.Context, uri string) ([]mcp.ResourceContents, error) {
	req := mcp.ReadResourceRequest{}
	req.Params.URI = uri

	res, err := s.mcp.ReadResource(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("read resource %q: %w", uri, err)
	}
	return res.Contents, nil
}

// ListPrompts returns all prompts exposed by the server.
func (s *Session) ListPrompts(ctx context.Context) ([]mcp.Prompt, error) {
	res, err := s.mcp.ListPrompts(ctx, mcp.ListPromptsRequest{})
	if err != nil {
		return nil, fmt.Errorf("list prompts: %w", err)
	}
	return res.Prompts, nil
}

// GetPrompt renders a prompt with the given arguments.
func (s *Session) GetPrompt(ctx context.Context, name string, args map[string]string) (*mcp.GetPromptResult, error) {
	req := mcp.GetPromptRequest{}
	req.Params.Name = name
	req.Params.Arguments = args

	res, err := s.mcp.GetPrompt(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("get prompt %q: %w", name, err)
	}
	return res, nil
}

// ResultText concatenates the text contents of a tool result.
func ResultText(res *mcp.CallToolResult) string {
	var parts []string
	for _, c := range res.Content {
		switch v := c.(type) {
		case mcp.TextContent:
			parts = append(parts, v.Text)
		case *mcp.TextContent:
			parts = append(parts, v.Text)
		}
	}
	return strings.Join(parts, "\n")
}
