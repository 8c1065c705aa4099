// Package mcpserver exposes the tool dispatcher as MCP tools over stdio JSON-RPC.
// Every tool family becomes one MCP tool whose arguments are forwarded untouched;
// the answer is the JSON envelope produced by the dispatcher.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/gitbridge/internal/domain/commands"
)

const serverName = "gitbridge"

// Version is reported to MCP clients; overridden at build time with -ldflags.
var Version = "dev" //nolint:gochecknoglobals // set by the linker

// Server serves the tool dispatcher to one MCP client.
type Server struct {
	tool commands.Tool
}

// NewServer creates a Server backed by the given dispatcher.
func NewServer(tool commands.Tool) *Server {
	return &Server{tool: tool}
}

// MCPServer builds the MCP server with one tool per tool definition.
func (s *Server) MCPServer() *server.MCPServer {
	mcpServer := server.NewMCPServer(
		serverName,
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)

	definitions := s.tool.Definitions()
	tools := make([]server.ServerTool, 0, len(definitions))
	for _, definition := range definitions {
		tools = append(tools, server.ServerTool{
			Tool:    BuildTool(definition),
			Handler: Handler(s.tool, definition.Name),
		})
	}
	mcpServer.AddTools(tools...)
	return mcpServer
}

// Serve answers JSON-RPC requests read from in until ctx is cancelled or in is closed.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	errorWriter := logger.StandardLogger().WriterLevel(logger.ErrorLevel)
	defer errorWriter.Close()

	stdio := server.NewStdioServer(s.MCPServer())
	stdio.SetErrorLogger(log.New(errorWriter, "[mcp] ", 0))

	logger.Infof("Serving %d tools over stdio", len(s.tool.Definitions()))
	return stdio.Listen(ctx, in, out)
}

// BuildTool converts a tool definition into its MCP declaration.
func BuildTool(definition commands.ToolDefinition) mcp.Tool {
	options := []mcp.ToolOption{
		mcp.WithDescription(definition.Description),
		mcp.WithString("action",
			mcp.Required(),
			mcp.Description("Operation to run"),
			mcp.Enum(definition.Actions...),
		),
		mcp.WithString("provider",
			mcp.Description("Configured backend name, empty for the default backend"),
		),
	}
	for _, parameter := range definition.Parameters {
		options = append(options, parameterOption(parameter))
	}
	return mcp.NewTool(definition.Name, options...)
}

func parameterOption(parameter commands.ToolParameter) mcp.ToolOption {
	properties := []mcp.PropertyOption{mcp.Description(parameter.Description)}
	if len(parameter.Enum) > 0 {
		properties = append(properties, mcp.Enum(parameter.Enum...))
	}

	switch parameter.Type {
	case commands.ParamInteger:
		return mcp.WithNumber(parameter.Name, properties...)
	case commands.ParamBoolean:
		return mcp.WithBoolean(parameter.Name, properties...)
	case commands.ParamArray:
		items := parameter.Items
		if items == "" {
			items = commands.ParamString
		}
		properties = append(properties, mcp.Items(map[string]any{"type": items}))
		return mcp.WithArray(parameter.Name, properties...)
	case commands.ParamObject:
		return mcp.WithObject(parameter.Name, properties...)
	default:
		return mcp.WithString(parameter.Name, properties...)
	}
}

// Handler runs one tool call and answers with the JSON envelope. Failed calls are
// flagged as tool errors but still carry the full envelope.
func Handler(tool commands.Tool, name string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result := tool.Execute(ctx, name, request.GetArguments())

		data, err := json.Marshal(result)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to encode result of %s: %v", result.Action, err)), nil
		}
		if !result.Success {
			return mcp.NewToolResultError(string(data)), nil
		}
		return mcp.NewToolResultText(string(data)), nil
	}
}
