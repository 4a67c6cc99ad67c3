package main

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"go-ekyc-ocr/document"
	"go-ekyc-ocr/models"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

func mcpSession(t *testing.T) *mcp.ClientSession {
	t.Helper()
	srv := newMCPServer(func() time.Time { return testNow })

	serverT, clientT := mcp.NewInMemoryTransports()
	ctx := context.Background()
	go func() { _ = srv.Run(ctx, serverT) }()

	client := mcp.NewClient(&mcp.Implementation{Name: "ekyc-ocr-test", Version: "0.1.0"}, nil)
	session, err := client.Connect(ctx, clientT, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session
}

// callTool returns the text content of the result and whether it is a tool error.
func callTool(t *testing.T, session *mcp.ClientSession, name string, args any) (string, bool) {
	t.Helper()
	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.Content)

	tc, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok, "expected text content")
	return tc.Text, result.IsError
}

func TestMCP_ListTools(t *testing.T) {
	session := mcpSession(t)

	tools, err := session.ListTools(context.Background(), nil)
	require.NoError(t, err)

	var names []string
	for _, tool := range tools.Tools {
		names = append(names, tool.Name)
	}
	require.ElementsMatch(t, []string{"ekyc_extract", "ekyc_merge", "ekyc_classify_id"}, names)
}

func TestMCP_Extract(t *testing.T) {
	session := mcpSession(t)

	text, isErr := callTool(t, session, "ekyc_extract", map[string]any{
		"tokens":     frontTokens,
		"confidence": 0.914,
	})
	require.False(t, isErr, text)

	var record models.RecordData
	require.NoError(t, json.Unmarshal([]byte(text), &record))
	require.Equal(t, string(document.NationalID), *record.DocumentType)
	require.Equal(t, "00-127039", *record.IDNumber)
	require.Equal(t, "AHMAD", *record.FirstName)
	require.Equal(t, 0.91, *record.Confidence)
}

func TestMCP_Merge(t *testing.T) {
	session := mcpSession(t)

	text, isErr := callTool(t, session, "ekyc_merge", map[string]any{
		"front": map[string]any{"tokens": frontTokens},
		"back":  map[string]any{"tokens": backTokens},
	})
	require.False(t, isErr, text)

	var response models.EKYCResponse
	require.NoError(t, json.Unmarshal([]byte(text), &response))
	require.Equal(t, models.StatusSuccess, response.Status)
	require.Equal(t, "10-10-2020", *response.OCRData.DateOfIssue)
	require.Equal(t, "00-127039", *response.OCRData.IDNumber)
	require.False(t, *response.IsExpired)
}

func TestMCP_ClassifyID(t *testing.T) {
	session := mcpSession(t)

	t.Run("valid", func(t *testing.T) {
		text, isErr := callTool(t, session, "ekyc_classify_id", map[string]any{"id_number": "30-123456"})
		require.False(t, isErr, text)

		var resp classifyIDResp
		require.NoError(t, json.Unmarshal([]byte(text), &resp))
		require.True(t, resp.Valid)
		require.Equal(t, document.ColorRed, resp.CardColor)
		require.Equal(t, document.HolderPermanentResident, resp.HolderType)
	})

	t.Run("invalid", func(t *testing.T) {
		text, isErr := callTool(t, session, "ekyc_classify_id", map[string]any{"id_number": "99-123456"})
		require.True(t, isErr)
		require.Contains(t, text, "not a valid ID number")
	})
}
