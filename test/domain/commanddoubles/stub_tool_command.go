//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/gitbridge/internal/domain/commands"
	"github.com/rios0rios0/gitbridge/internal/domain/entities"
)

// StubToolCommand is a stub implementation of commands.Tool.
type StubToolCommand struct {
	ExecuteCallCount int
	Result           entities.Result
	LastTool         string
	LastValues       map[string]any
}

var _ commands.Tool = (*StubToolCommand)(nil)

func (s *StubToolCommand) Definitions() []commands.ToolDefinition {
	return commands.Definitions()
}

func (s *StubToolCommand) Execute(_ context.Context, tool string, values map[string]any) entities.Result {
	s.ExecuteCallCount++
	s.LastTool = tool
	s.LastValues = values
	return s.Result
}
