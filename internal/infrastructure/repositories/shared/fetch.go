package shared

import (
	"context"
	"encoding/json"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/gitbridge/internal/domain/entities"
	"github.com/rios0rios0/gitbridge/internal/infrastructure/httpclient"
)

// Fetch performs one call and normalizes the single entity in its response.
func Fetch[T any](
	ctx context.Context,
	client *httpclient.Client,
	method, path string,
	query, body any,
	normalize func(json.RawMessage) (T, error),
) (*T, error) {
	var payload json.RawMessage
	if err := client.Do(ctx, method, path, query, body, &payload); err != nil {
		return nil, err
	}
	entity, err := normalize(payload)
	if err != nil {
		return nil, entities.NewDecodeError(client.Provider(), err)
	}
	return &entity, nil
}

// FetchList performs one call and normalizes every element of the list it returns.
func FetchList[T any](
	ctx context.Context,
	client *httpclient.Client,
	method, path string,
	query, body any,
	normalize func(json.RawMessage) (T, error),
) ([]T, error) {
	var payload json.RawMessage
	if err := client.Do(ctx, method, path, query, body, &payload); err != nil {
		return nil, err
	}
	list, err := MapList(payload, normalize)
	if err != nil {
		return nil, entities.NewDecodeError(client.Provider(), err)
	}
	return list, nil
}

// DeleteIdempotent deletes path and treats an already missing resource as success.
// Other failures are returned unchanged. isMissing recognizes backend specific
// "already gone" answers on top of NOT_FOUND and may be nil.
func DeleteIdempotent(
	ctx context.Context,
	client *httpclient.Client,
	path string,
	body any,
	isMissing func(*entities.APIError) bool,
) error {
	err := client.Delete(ctx, path, body, nil)
	if err == nil {
		return nil
	}
	apiErr, ok := entities.AsAPIError(err)
	if ok && (apiErr.Code == entities.ErrorCodeNotFound || (isMissing != nil && isMissing(apiErr))) {
		logger.WithFields(logger.Fields{
			"provider": client.Provider(),
			"path":     path,
		}).Warn("resource is already gone, nothing to delete")
		return nil
	}
	return err
}
