package doccast

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hazyhaar/doccast/render"
)

// RegisterMCP registers doccast tools on an MCP server.
func (c *Converter) RegisterMCP(srv *mcp.Server) {
	c.registerConvertTool(srv)
	c.registerExtractTool(srv)
	c.registerFormatsTool(srv)
}

type endpoint func(ctx context.Context, req any) (any, error)

// registerTool wires an endpoint and a decode function into an MCP tool
// handler. Tool failures are reported through the result, not as transport
// errors.
func registerTool(srv *mcp.Server, tool *mcp.Tool, ep endpoint, decode func(*mcp.CallToolRequest) (any, error)) {
	srv.AddTool(tool, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		decoded, err := decode(req)
		if err != nil {
			var res mcp.CallToolResult
			res.SetError(fmt.Errorf("invalid arguments: %w", err))
			return &res, nil
		}

		resp, err := ep(ctx, decoded)
		if err != nil {
			var res mcp.CallToolResult
			res.SetError(errors.New(err.Error()))
			return &res, nil
		}

		data, err := json.Marshal(resp)
		if err != nil {
			var res mcp.CallToolResult
			res.SetError(fmt.Errorf("marshal: %w", err))
			return &res, nil
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
		}, nil
	})
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

// --- convert ---

type convertReq struct {
	Markup   string   `json:"markup"`
	Filename string   `json:"filename"`
	Formats  []string `json:"formats"`
}

func (r *convertReq) input() ConvertInput {
	in := ConvertInput{Markup: r.Markup, Filename: r.Filename}
	for _, f := range r.Formats {
		in.Formats = append(in.Formats, render.Format(f))
	}
	return in
}

func (c *Converter) registerConvertTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "doccast_convert",
		Description: "Convert semantic document markup to plaintext, HTML, and Markdown.",
		InputSchema: inputSchema(map[string]any{
			"markup":   map[string]any{"type": "string", "description": "Semantic block markup (h1-h6, p, ol, ul, li, table)"},
			"filename": map[string]any{"type": "string", "description": "Originating file name (title fallback)"},
			"formats":  map[string]any{"type": "array", "items": map[string]any{"type": "string"}, "description": "Output formats; empty means all (plaintext, html, markdown)"},
		}, []string{"markup"}),
	}

	ep := func(ctx context.Context, req any) (any, error) {
		return c.Convert(ctx, req.(*convertReq).input())
	}

	decode := func(req *mcp.CallToolRequest) (any, error) {
		var r convertReq
		if err := json.Unmarshal(req.Params.Arguments, &r); err != nil {
			return nil, err
		}
		return &r, nil
	}

	registerTool(srv, tool, ep, decode)
}

// --- extract ---

type extractReq struct {
	Markup   string `json:"markup"`
	Filename string `json:"filename"`
}

func (c *Converter) registerExtractTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "doccast_extract",
		Description: "Extract the structured content model (title, typed sections, metadata) from semantic document markup without rendering.",
		InputSchema: inputSchema(map[string]any{
			"markup":   map[string]any{"type": "string", "description": "Semantic block markup"},
			"filename": map[string]any{"type": "string", "description": "Originating file name"},
		}, []string{"markup"}),
	}

	ep := func(_ context.Context, req any) (any, error) {
		r := req.(*extractReq)
		return c.Extract(ConvertInput{Markup: r.Markup, Filename: r.Filename})
	}

	decode := func(req *mcp.CallToolRequest) (any, error) {
		var r extractReq
		if err := json.Unmarshal(req.Params.Arguments, &r); err != nil {
			return nil, err
		}
		return &r, nil
	}

	registerTool(srv, tool, ep, decode)
}

// --- formats ---

func (c *Converter) registerFormatsTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "doccast_formats",
		Description: "List the supported output formats and their file extensions.",
		InputSchema: inputSchema(map[string]any{}, nil),
	}

	ep := func(_ context.Context, _ any) (any, error) {
		return map[string]any{"formats": render.Formats(), "extensions": Extensions()}, nil
	}

	decode := func(_ *mcp.CallToolRequest) (any, error) {
		return nil, nil
	}

	registerTool(srv, tool, ep, decode)
}
