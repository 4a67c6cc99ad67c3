package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"go-ekyc-ocr/document"
	"go-ekyc-ocr/models"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var mcpImplementation = &mcp.Implementation{Name: "ekyc-ocr", Version: "1.0.0"}

type classifyIDReq struct {
	IDNumber string `json:"id_number"`
}

type classifyIDResp struct {
	IDNumber   string `json:"id_number"`
	Valid      bool   `json:"valid"`
	CardColor  string `json:"card_color"`
	HolderType string `json:"holder_type"`
}

// newMCPServer exposes the extraction engine as MCP tools. Only token
// streams are accepted, no images.
func newMCPServer(now func() time.Time) *mcp.Server {
	srv := mcp.NewServer(mcpImplementation, nil)

	tokenStream := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"tokens":     map[string]any{"type": "array", "items": map[string]any{"type": "string"}, "description": "OCR tokens in reading order"},
			"confidence": map[string]any{"type": "number", "description": "OCR confidence between 0 and 1"},
		},
		"required": []string{"tokens"},
	}

	addTool(srv, &mcp.Tool{
		Name:        "ekyc_extract",
		Description: "Classify an OCR token stream of a Brunei identity card or passport and extract its fields.",
		InputSchema: tokenStream,
	}, func(_ context.Context, req models.ExtractRequest) (any, error) {
		return models.NewRecordData(recordFromTokens(req)), nil
	})

	addTool(srv, &mcp.Tool{
		Name:        "ekyc_merge",
		Description: "Extract the front and back token streams of one identity card and merge them into one record.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"front": tokenStream,
				"back":  tokenStream,
			},
			"required": []string{"front", "back"},
		},
	}, func(_ context.Context, req models.MergeTokensRequest) (any, error) {
		return mergeTokens(req, now()), nil
	})

	addTool(srv, &mcp.Tool{
		Name:        "ekyc_classify_id",
		Description: "Map a Brunei identity card number to its card color and holder type.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"id_number": map[string]any{"type": "string", "description": "ID number such as 00-127039"},
			},
			"required": []string{"id_number"},
		},
	}, func(_ context.Context, req classifyIDReq) (any, error) {
		id := document.ExtractIDNumber([]string{req.IDNumber})
		if id == "" {
			return nil, fmt.Errorf("%q is not a valid ID number", req.IDNumber)
		}
		color, holder := document.ClassifyID(id)
		return classifyIDResp{IDNumber: id, Valid: true, CardColor: color, HolderType: holder}, nil
	})

	return srv
}

// addTool decodes the arguments into Req and returns the endpoint's response
// as JSON text. Failures become tool errors, never protocol errors.
func addTool[Req any](srv *mcp.Server, tool *mcp.Tool, endpoint func(context.Context, Req) (any, error)) {
	srv.AddTool(tool, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var r Req
		if err := json.Unmarshal(req.Params.Arguments, &r); err != nil {
			var res mcp.CallToolResult
			res.SetError(fmt.Errorf("invalid arguments: %w", err))
			return &res, nil
		}

		resp, err := endpoint(ctx, r)
		if err != nil {
			slog.Debug("MCP tool failed", "tool", tool.Name, "error", err)
			var res mcp.CallToolResult
			res.SetError(err)
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

// runMCP serves the tools on stdin/stdout until the client disconnects.
func runMCP(ctx context.Context) error {
	slog.Info("Serving MCP tools on stdio")
	return newMCPServer(time.Now).Run(ctx, &mcp.StdioTransport{})
}
