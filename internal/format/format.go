// Package format renders servers, tools, resources, prompts, and call
// results for the terminal, as aligned tables or as a single JSON document.
package format

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/fkesheh/mcpsh/internal/config"
)

// Format selects the output rendering.
type Format string

const (
	Table Format = "table"
	JSON  Format = "json"
)

// Parse validates a --format flag value.
func Parse(s string) (Format, error) {
	switch Format(s) {
	case Table, JSON:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unknown format %q (expected \"table\" or \"json\")", s)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

// Servers renders the configured server names. JSON mode emits a sorted
// array of names.
func Servers(w io.Writer, f Format, servers map[string]*config.ServerConfig, path, source string) error {
	names := make([]string, 0, len(servers))
	for name := range servers {
		names = append(names, name)
	}
	sort.Strings(names)

	if f == JSON {
		return writeJSON(w, names)
	}

	if len(names) == 0 {
		fmt.Fprintf(w, "No servers configured in %s\n", path)
		fmt.Fprintln(w, "Run 'mcpsh init' to create an example config.")
		return nil
	}

	tw := newTabWriter(w)
	fmt.Fprintln(tw, "NAME\tCOMMAND")
	for _, name := range names {
		sc := servers[name]
		cmd := sc.Command
		if len(sc.Args) > 0 {
			cmd += " " + strings.Join(sc.Args, " ")
		}
		fmt.Fprintf(tw, "%s\t%s\n", name, cmd)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "\nConfig: %s (%s)\n", path, source)
	fmt.Fprintln(w, "Run 'mcpsh <server>' to list its tools.")
	return nil
}

// Tools renders a server's tool list.
func Tools(w io.Writer, f Format, tools []mcp.Tool, server string) error {
	if f == JSON {
		return writeJSON(w, tools)
	}

	if len(tools) == 0 {
		fmt.Fprintf(w, "Server %q exposes no tools.\n", server)
		return nil
	}

	tw := newTabWriter(w)
	fmt.Fprintln(tw, "NAME\tDESCRIPTION")
	for _, tool := range tools {
		fmt.Fprintf(tw, "%s\t%s\n", tool.Name, firstLine(tool.Description))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "\nRun 'mcpsh %s <tool>' to see a tool's schema.\n", server)
	return nil
}

// ToolInfo renders a single tool's description and input schema.
func ToolInfo(w io.Writer, f Format, tool *mcp.Tool, server string) error {
	if f == JSON {
		return writeJSON(w, tool)
	}

	fmt.Fprintf(w, "Tool: %s\n", tool.Name)
	if tool.Description != "" {
		fmt.Fprintf(w, "  %s\n", tool.Description)
	}

	names := make([]string, 0, len(tool.InputSchema.Properties))
	for name := range tool.InputSchema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	required := make(map[string]bool, len(tool.InputSchema.Required))
	for _, name := range tool.InputSchema.Required {
		required[name] = true
	}

	fmt.Fprintln(w, "\nParameters:")
	if len(names) == 0 {
		fmt.Fprintln(w, "  (none)")
	} else {
		tw := newTabWriter(w)
		for _, name := range names {
			typ, desc := propertyInfo(tool.InputSchema.Properties[name])
			req := ""
			if required[name] {
				req = "(required)"
			}
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", name, typ, req, firstLine(desc))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	fmt.Fprintf(w, "\nRun 'mcpsh %s %s --args '{...}'' to call it.\n", server, tool.Name)
	return nil
}

// propertyInfo pulls type and description out of a JSON-schema property value.
func propertyInfo(prop any) (string, string) {
	m, ok := prop.(map[string]any)
	if !ok {
		return "", ""
	}
	typ, _ := m["type"].(string)
	desc, _ := m["description"].(string)
	return typ, desc
}

// CallResult renders a tool call result. In JSON mode a result whose single
// text content is itself valid JSON is passed through verbatim.
func CallResult(w io.Writer, f Format, res *mcp.CallToolResult) error {
	texts := contentTexts(res.Content)

	if f == JSON {
		if len(texts) == 1 && json.Valid([]byte(texts[0])) {
			var buf bytes.Buffer
			if err := json.Indent(&buf, []byte(texts[0]), "", "  "); err != nil {
				return err
			}
			_, err := fmt.Fprintln(w, buf.String())
			return err
		}
		return writeJSON(w, texts)
	}

	if len(res.Content) == 0 {
		fmt.Fprintln(w, "(empty result)")
		return nil
	}
	for _, c := range res.Content {
		fmt.Fprintln(w, describeContent(c))
	}
	return nil
}

// Resources renders a server's resource list.
func Resources(w io.Writer, f Format, resources []mcp.Resource, server string) error {
	if f == JSON {
		return writeJSON(w, resources)
	}

	if len(resources) == 0 {
		fmt.Fprintf(w, "Server %q exposes no resources.\n", server)
		return nil
	}

	tw := newTabWriter(w)
	fmt.Fprintln(tw, "URI\tNAME\tMIME TYPE")
	for _, r := range resources {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.URI, r.Name, r.MIMEType)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "\nRun 'mcpsh %s --read <uri>' to read one.\n", server)
	return nil
}

// ResourceContents renders the contents returned by a resource read.
func ResourceContents(w io.Writer, f Format, contents []mcp.ResourceContents) error {
	if f == JSON {
		return writeJSON(w, contents)
	}

	for _, c := range contents {
		switch v := c.(type) {
		case mcp.TextResourceContents:
			fmt.Fprintln(w, v.Text)
		case *mcp.TextResourceContents:
			fmt.Fprintln(w, v.Text)
		case mcp.BlobResourceContents:
			fmt.Fprintf(w, "[binary %s, %d bytes base64]\n", v.MIMEType, len(v.Blob))
		case *mcp.BlobResourceContents:
			fmt.Fprintf(w, "[binary %s, %d bytes base64]\n", v.MIMEType, len(v.Blob))
		}
	}
	return nil
}

// Prompts renders a server's prompt list.
func Prompts(w io.Writer, f Format, prompts []mcp.Prompt, server string) error {
	if f == JSON {
		return writeJSON(w, prompts)
	}

	if len(prompts) == 0 {
		fmt.Fprintf(w, "Server %q exposes no prompts.\n", server)
		return nil
	}

	tw := newTabWriter(w)
	fmt.Fprintln(tw, "NAME\tDESCRIPTION\tARGUMENTS")
	for _, p := range prompts {
		args := make([]string, 0, len(p.Arguments))
		for _, a := range p.Arguments {
			name := a.Name
			if a.Required {
				name += "*"
			}
			args = append(args, name)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", p.Name, firstLine(p.Description), strings.Join(args, ", "))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "\nRun 'mcpsh %s --prompt <name>' to render one.\n", server)
	return nil
}

// PromptMessages renders a rendered prompt.
func PromptMessages(w io.Writer, f Format, res *mcp.GetPromptResult) error {
	if f == JSON {
		return writeJSON(w, res)
	}

	if res.Description != "" {
		fmt.Fprintf(w, "%s\n\n", res.Description)
	}
	for _, m := range res.Messages {
		fmt.Fprintf(w, "[%s] %s\n", m.Role, describeContent(m.Content))
	}
	return nil
}

func contentTexts(contents []mcp.Content) []string {
	var texts []string
	for _, c := range contents {
		switch v := c.(type) {
		case mcp.TextContent:
			texts = append(texts, v.Text)
		case *mcp.TextContent:
			texts = append(texts, v.Text)
		}
	}
	return texts
}

func describeContent(c mcp.Content) string {
	switch v := c.(type) {
	case mcp.TextContent:
		return v.Text
	case *mcp.TextContent:
		return v.Text
	case mcp.ImageContent:
		return fmt.Sprintf("[image %s, %d bytes base64]", v.MIMEType, len(v.Data))
	case *mcp.ImageContent:
		return fmt.Sprintf("[image %s, %d bytes base64]", v.MIMEType, len(v.Data))
	case mcp.EmbeddedResource:
		return "[embedded resource]"
	case *mcp.EmbeddedResource:
		return "[embedded resource]"
	default:
		return fmt.Sprintf("[%T]", c)
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
