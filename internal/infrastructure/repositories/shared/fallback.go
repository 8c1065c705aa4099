package shared

import (
	"context"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/gitbridge/internal/domain/entities"
)

// Fallback runs a read that is allowed to degrade. When call fails the error is
// logged and replaced by the placeholder built from a mock payload, so the caller
// always receives a value. Only ListUsers, GetCurrentUser, GetUserOrganizations and
// GetUserRepositories go through here.
func Fallback[T any](
	ctx context.Context,
	provider, operation string,
	call func(context.Context) (T, error),
	placeholder func(raw entities.Raw) T,
) T {
	result, err := call(ctx)
	if err == nil {
		return result
	}

	logger.WithFields(logger.Fields{
		"provider":  provider,
		"operation": operation,
	}).Warnf("%s failed, returning a placeholder: %v", operation, err)

	return placeholder(entities.NewMockRaw(provider, operation, err))
}
