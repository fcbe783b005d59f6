package client

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/fkesheh/mcpsh/internal/config"
)

// One-off helpers for callers that do not need to hold a session open.
// Each opens a session, performs a single call, and closes the server again.

// ListServers returns the server names from the resolved config.
func ListServers(configPath string) ([]string, error) {
	path, _, err := config.Resolve(configPath)
	if err != nil {
		return nil, err
	}
	return config.ListServers(path)
}

// ListTools lists the tools of a named server.
func ListTools(ctx context.Context, server string, opts Options) ([]mcp.Tool, error) {
	s, err := Connect(ctx, server, opts)
	if err != nil {
		return nil, err
	}
	defer s.Close()
	return s.ListTools(ctx)
}

// CallTool invokes a tool on a named server.
func CallTool(ctx context.Context, server, tool string, args map[string]any, opts Options) (*mcp.CallToolResult, error) {
	s, err := Connect(ctx, server, opts)
	if err != nil {
		return nil, err
	}
	defer s.Close()
	return s.CallTool(ctx, tool, args)
}

// CallToolJSON invokes a tool and parses its text content as JSON.
func CallToolJSON(ctx context.Context, server, tool string, args map[string]any, opts Options) (any, error) {
	s, err := Connect(ctx, server, opts)
	if err != nil {
		return nil, err
	}
	defer s.Close()
	return s.CallToolJSON(ctx, tool, args)
}

// ListResources lists the resources of a named server.
func ListResources(ctx context.Context, server string, opts Options) ([]mcp.Resource, error) {
	s, err := Connect(ctx, server, opts)
	if err != nil {
		return nil, err
	}
	defer s.Close()
	return s.ListResources(ctx)
}

// ReadResource reads a resource from a named server.
func ReadResource(ctx context.Context, server, uri string, opts Options) ([]mcp.ResourceContents, error) {
	s, err := Connect(ctx, server, opts)
	if err != nil {
		return nil, err
	}
	defer s.Close()
	return s.ReadResource(ctx, uri)
}

// ListPrompts lists the prompts of a named server.
func ListPrompts(ctx context.Context, server string, opts Options) ([]mcp.Prompt, error) {
	s, err := Connect(ctx, server, opts)
	if err != nil {
		return nil, err
	}
	defer s.Close()
	return s.ListPrompts(ctx)
}
