//go:build unit

package mcpserver_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/gitbridge/internal/domain/commands"
	"github.com/rios0rios0/gitbridge/internal/domain/entities"
	"github.com/rios0rios0/gitbridge/internal/infrastructure/mcpserver"
	commanddoubles "github.com/rios0rios0/gitbridge/test/domain/commanddoubles"
)

func textOf(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()

	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func callRequest(arguments map[string]any) mcp.CallToolRequest {
	var request mcp.CallToolRequest
	request.Params.Arguments = arguments
	return request
}

func TestHandler(t *testing.T) {
	t.Parallel()

	t.Run("should forward the arguments and answer with the envelope", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubToolCommand{
			Result: entities.NewSuccessResult("branch.get", "branch.get succeeded on GitHub",
				map[string]string{"name": "main"}),
		}
		handler := mcpserver.Handler(stub, commands.ToolBranch)
		arguments := map[string]any{"action": "get", "owner": "octo", "repo": "demo", "branch": "main"}

		// when
		result, err := handler(context.Background(), callRequest(arguments))

		// then
		require.NoError(t, err)
		assert.False(t, result.IsError)
		assert.Equal(t, commands.ToolBranch, stub.LastTool)
		assert.Equal(t, arguments, stub.LastValues)

		var envelope map[string]any
		require.NoError(t, json.Unmarshal([]byte(textOf(t, result)), &envelope))
		assert.Equal(t, true, envelope["success"])
		assert.Equal(t, "branch.get", envelope["action"])
		assert.Equal(t, map[string]any{"name": "main"}, envelope["data"])
	})

	t.Run("should flag failed calls as tool errors and keep the code", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubToolCommand{
			Result: entities.NewFailureResult("repository.get", "repository.get failed on Gitea",
				&entities.APIError{Code: entities.ErrorCodeNotFound, Message: "Gitea: Resource not found: Not Found"}),
		}
		handler := mcpserver.Handler(stub, commands.ToolRepository)

		// when
		result, err := handler(context.Background(), callRequest(map[string]any{"action": "get"}))

		// then
		require.NoError(t, err)
		assert.True(t, result.IsError)
		text := textOf(t, result)
		assert.Contains(t, text, `"code":"NOT_FOUND"`)
		assert.Contains(t, text, `"error":"Gitea: Resource not found: Not Found"`)
	})
}

func TestBuildTool(t *testing.T) {
	t.Parallel()

	t.Run("should declare action as a required enum and map parameter types", func(t *testing.T) {
		t.Parallel()

		// given
		definition := commands.ToolDefinition{
			Name:        "sample",
			Description: "Sample tool",
			Actions:     []string{"list", "get"},
			Parameters: []commands.ToolParameter{
				{Name: "owner", Type: commands.ParamString, Description: "Owner"},
				{Name: "page", Type: commands.ParamInteger, Description: "Page"},
				{Name: "draft", Type: commands.ParamBoolean, Description: "Draft"},
				{Name: "labels", Type: commands.ParamArray, Description: "Labels"},
				{Name: "inputs", Type: commands.ParamObject, Description: "Inputs"},
			},
		}

		// when
		tool := mcpserver.BuildTool(definition)

		// then
		assert.Equal(t, "sample", tool.Name)
		assert.Equal(t, "Sample tool", tool.Description)
		assert.Equal(t, []string{"action"}, tool.InputSchema.Required)

		action, ok := tool.InputSchema.Properties["action"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, []string{"list", "get"}, action["enum"])

		expected := map[string]string{
			"provider": "string",
			"owner":    "string",
			"page":     "number",
			"draft":    "boolean",
			"labels":   "array",
			"inputs":   "object",
		}
		for name, kind := range expected {
			property, found := tool.InputSchema.Properties[name].(map[string]any)
			require.True(t, found, name)
			assert.Equal(t, kind, property["type"], name)
		}
	})

	t.Run("should register one MCP tool per definition", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubToolCommand{}
		mcpServer := mcpserver.NewServer(stub).MCPServer()

		// when
		response := mcpServer.HandleMessage(context.Background(),
			json.RawMessage(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`))

		// then
		encoded, err := json.Marshal(response)
		require.NoError(t, err)
		for _, definition := range commands.Definitions() {
			assert.Contains(t, string(encoded), `"name":"`+definition.Name+`"`)
		}
	})
}
