//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/gitbridge/internal/domain/commands"
	"github.com/rios0rios0/gitbridge/internal/domain/repositories"
)

// StubUploadCommand is a stub implementation of commands.Upload.
type StubUploadCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	Result           *commands.UploadResult
	LastOpts         commands.UploadOptions
}

var _ commands.Upload = (*StubUploadCommand)(nil)

func (s *StubUploadCommand) Execute(
	_ context.Context,
	_ repositories.ProviderRepository,
	opts commands.UploadOptions,
) (*commands.UploadResult, error) {
	s.ExecuteCallCount++
	s.LastOpts = opts
	if s.ExecuteErr != nil {
		return nil, s.ExecuteErr
	}
	if s.Result != nil {
		return s.Result, nil
	}
	return &commands.UploadResult{Uploaded: []string{}}, nil
}
