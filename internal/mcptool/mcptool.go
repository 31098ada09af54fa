// Package mcptool exposes the analyzer as MCP tools.
package mcptool

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"sloptastic/internal/report"
	"sloptastic/internal/slop"
)

const (
	AnalyzeTool = "sloptastic_analyze"
	CatalogTool = "sloptastic_catalog"
)

var Implementation = &mcp.Implementation{Name: "sloptastic", Version: slop.CatalogVersion}

type analyzeArgs struct {
	Text   string `json:"text"`
	Source string `json:"source"`
	Format string `json:"format"`
}

// NewServer builds an MCP server with every tool registered.
func NewServer() *mcp.Server {
	srv := mcp.NewServer(Implementation, nil)
	Register(srv)
	return srv
}

func Register(srv *mcp.Server) {
	registerAnalyze(srv)
	registerCatalog(srv)
}

// Serve runs the server over stdio until the client disconnects or ctx ends.
func Serve(ctx context.Context) error {
	return NewServer().Run(ctx, &mcp.StdioTransport{})
}

func inputSchema(properties map[string]any, required []string) map[string]any {
	s := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

func registerAnalyze(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        AnalyzeTool,
		Description: "Measure AI-style prose tells in a text and classify them against fixed thresholds.",
		InputSchema: inputSchema(map[string]any{
			"text":   map[string]any{"type": "string", "description": "Text to analyze"},
			"source": map[string]any{"type": "string", "description": "Label shown in the report"},
			"format": map[string]any{"type": "string", "enum": []string{"json", "markdown"}, "description": "Output format, json by default"},
		}, []string{"text"}),
	}

	srv.AddTool(tool, func(_ context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args analyzeArgs
		if len(req.Params.Arguments) > 0 {
			if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
				return toolError(fmt.Errorf("invalid arguments: %w", err)), nil
			}
		}

		doc := report.Build(args.Source, args.Text)
		switch args.Format {
		case "", report.FormatJSON:
			return jsonResult(doc), nil
		case report.FormatMarkdown:
			return textResult(report.Markdown(doc)), nil
		default:
			return toolError(fmt.Errorf("unsupported format %q", args.Format)), nil
		}
	})
}

func registerCatalog(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        CatalogTool,
		Description: "List the phrase dictionaries and patterns the analyzer uses.",
		InputSchema: inputSchema(map[string]any{}, nil),
	}

	srv.AddTool(tool, func(_ context.Context, _ *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return jsonResult(slop.Catalog()), nil
	})
}

func jsonResult(v any) *mcp.CallToolResult {
	data, err := json.Marshal(v)
	if err != nil {
		return toolError(fmt.Errorf("marshal: %w", err))
	}
	return textResult(string(data))
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func toolError(err error) *mcp.CallToolResult {
	var res mcp.CallToolResult
	res.SetError(errors.New(err.Error()))
	return &res
}
