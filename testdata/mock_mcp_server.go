// mock_mcp_server is a minimal MCP server for exercising mcpsh by hand:
//
//	go run testdata/mock_mcp_server.go
//
// with a config entry {"command": "go", "args": ["run", "testdata/mock_mcp_server.go"]}.
// It responds to initialize, tools/list, tools/call, resources/list,
// resources/read, prompts/list, and prompts/get over newline-delimited
// JSON on stdin/stdout.
package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
)

type message struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method,omitempty"`
	Params  json.RawMessage `json:"params,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   json.RawMessage `json:"error,omitempty"`
}

func reply(id, result json.RawMessage) message {
	return message{JSONRPC: "2.0", ID: id, Result: result}
}

func main() {
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 4096), 1024*1024)
	enc := json.NewEncoder(os.Stdout)

	for scanner.Scan() {
		var msg message
		if err := json.Unmarshal(scanner.Bytes(), &msg); err != nil {
			fmt.Fprintf(os.Stderr, "mock: invalid JSON: %v\n", err)
			continue
		}

		var resp message

		switch msg.Method {
		case "initialize":
			resp = reply(msg.ID, json.RawMessage(`{
				"protocolVersion": "2024-11-05",
				"serverInfo": {"name": "mock-server", "version": "1.0.0"},
				"capabilities": {"tools": {}, "resources": {}, "prompts": {}}
			}`))

		case "notifications/initialized", "initialized":
			// Notification, no response
			continue

		case "tools/list":
			resp = reply(msg.ID, json.RawMessage(`{
				"tools": [
					{"name": "greet", "description": "Greet someone by name.",
					 "inputSchema": {"type": "object", "properties": {"name": {"type": "string"}}, "required": ["name"]}},
					{"name": "add", "description": "Add two numbers together.",
					 "inputSchema": {"type": "object", "properties": {"a": {"type": "integer"}, "b": {"type": "integer"}}, "required": ["a", "b"]}}
				]
			}`))

		case "tools/call":
			var params struct {
				Name      string         `json:"name"`
				Arguments map[string]any `json:"arguments"`
			}
			json.Unmarshal(msg.Params, &params)

			var text string
			switch params.Name {
			case "greet":
				name, _ := params.Arguments["name"].(string)
				text = fmt.Sprintf("Hello, %s! Welcome to MCP CLI.", name)
			case "add":
				a, _ := params.Arguments["a"].(float64)
				b, _ := params.Arguments["b"].(float64)
				text = fmt.Sprintf("%g", a+b)
			default:
				resp = message{JSONRPC: "2.0", ID: msg.ID,
					Error: json.RawMessage(fmt.Sprintf(`{"code": -32602, "message": "unknown tool: %s"}`, params.Name))}
				enc.Encode(resp)
				continue
			}
			body, _ := json.Marshal(map[string]any{
				"content": []map[string]any{{"type": "text", "text": text}},
			})
			resp = reply(msg.ID, body)

		case "resources/list":
			resp = reply(msg.ID, json.RawMessage(`{
				"resources": [
					{"uri": "data://example/info", "name": "Info", "mimeType": "application/json"}
				]
			}`))

		case "resources/read":
			resp = reply(msg.ID, json.RawMessage(`{
				"contents": [
					{"uri": "data://example/info", "mimeType": "application/json",
					 "text": "{\"name\": \"mock-server\", \"version\": \"1.0.0\"}"}
				]
			}`))

		case "prompts/list":
			resp = reply(msg.ID, json.RawMessage(`{
				"prompts": [
					{"name": "analyze_data", "description": "Create a prompt for analyzing data.",
					 "arguments": [{"name": "data", "required": true}]}
				]
			}`))

		case "prompts/get":
			resp = reply(msg.ID, json.RawMessage(`{
				"description": "Analysis prompt",
				"messages": [
					{"role": "user", "content": {"type": "text", "text": "Please analyze the following data."}}
				]
			}`))

		default:
			resp = message{JSONRPC: "2.0", ID: msg.ID,
				Error: json.RawMessage(fmt.Sprintf(`{"code": -32601, "message": "method not found: %s"}`, msg.Method))}
		}

		if err := enc.Encode(resp); err != nil {
			fmt.Fprintf(os.Stderr, "mock: write: %v\n", err)
			return
		}
	}
}
