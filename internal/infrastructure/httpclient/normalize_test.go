//go:build unit

package httpclient_test

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/gitbridge/internal/domain/entities"
	"github.com/rios0rios0/gitbridge/internal/infrastructure/httpclient"
)

func responseFailure(status int, body string) error {
	return &httpclient.ResponseError{
		Method:     http.MethodGet,
		URL:        "https://api.example.com/repos/octo/demo",
		StatusCode: status,
		Body:       []byte(body),
	}
}

func TestNormalizeStatusTable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status    int
		code      entities.ErrorCode
		retryable bool
	}{
		{http.StatusBadRequest, entities.ErrorCodeBadRequest, false},
		{http.StatusUnauthorized, entities.ErrorCodeUnauthorized, false},
		{http.StatusForbidden, entities.ErrorCodeForbidden, false},
		{http.StatusNotFound, entities.ErrorCodeNotFound, false},
		{http.StatusConflict, entities.ErrorCodeConflict, false},
		{http.StatusUnprocessableEntity, entities.ErrorCodeValidation, false},
		{http.StatusTooManyRequests, entities.ErrorCodeRateLimited, true},
		{http.StatusInternalServerError, entities.ErrorCodeInternalServer, true},
		{http.StatusBadGateway, entities.ErrorCodeBadGateway, true},
		{http.StatusServiceUnavailable, entities.ErrorCodeServiceUnavailable, true},
		{http.StatusGatewayTimeout, entities.ErrorCodeGatewayTimeout, true},
		{http.StatusTeapot, "HTTP_418", false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("should map status %d to %s", tt.status, tt.code), func(t *testing.T) {
			t.Parallel()

			// given
			failure := responseFailure(tt.status, `{"message":"boom"}`)

			// when
			result := httpclient.Normalize(failure, "GitHub", false)

			// then
			require.NotNil(t, result)
			assert.Equal(t, tt.code, result.Code)
			assert.Equal(t, tt.retryable, result.Retryable)
			assert.Equal(t, tt.status, result.StatusCode)
			assert.Equal(t, "GitHub", result.Provider)
			assert.Contains(t, result.Message, "GitHub: ")
			assert.Contains(t, result.Message, "boom")
		})
	}
}

func TestNormalizeMessages(t *testing.T) {
	t.Parallel()

	t.Run("should prefer the message field over the error field", func(t *testing.T) {
		t.Parallel()

		// given
		failure := responseFailure(http.StatusBadRequest, `{"message":"bad title","error":"ignored"}`)

		// when
		result := httpclient.Normalize(failure, "Gitea", false)

		// then
		assert.Equal(t, "Gitea: Bad request: bad title", result.Message)
	})

	t.Run("should fall back to the error field", func(t *testing.T) {
		t.Parallel()

		// given
		failure := responseFailure(http.StatusForbidden, `{"error":"token lacks scope"}`)

		// when
		result := httpclient.Normalize(failure, "Gitea", false)

		// then
		assert.Equal(t, "Gitea: Access forbidden: token lacks scope", result.Message)
	})

	t.Run("should use the user template when a 404 mentions a user", func(t *testing.T) {
		t.Parallel()

		// given
		failure := responseFailure(http.StatusNotFound, `{"message":"user does not exist [uid: 0, name: ghost]"}`)

		// when
		result := httpclient.Normalize(failure, "Gitea", false)

		// then
		assert.Equal(t, entities.ErrorCodeNotFound, result.Code)
		assert.Contains(t, result.Message, "User not found")
	})

	t.Run("should use the resource template for other 404s", func(t *testing.T) {
		t.Parallel()

		// given
		failure := responseFailure(http.StatusNotFound, `{"message":"Not Found"}`)

		// when
		result := httpclient.Normalize(failure, "GitHub", false)

		// then
		assert.Equal(t, "GitHub: Resource not found: Not Found", result.Message)
	})

	t.Run("should use the already exists template for duplicate resources", func(t *testing.T) {
		t.Parallel()

		// given
		failure := responseFailure(http.StatusConflict, `{"message":"repository already exists"}`)

		// when
		result := httpclient.Normalize(failure, "Gitea", false)

		// then
		assert.Contains(t, result.Message, "Resource already exists")
	})

	t.Run("should use the conflict template when the body says Conflict", func(t *testing.T) {
		t.Parallel()

		// given
		failure := responseFailure(http.StatusConflict, `{"message":"Conflict: branch was updated"}`)

		// when
		result := httpclient.Normalize(failure, "GitHub", false)

		// then
		assert.Equal(t, "GitHub: Conflict: Conflict: branch was updated", result.Message)
	})

	t.Run("should use the status text when the body is empty", func(t *testing.T) {
		t.Parallel()

		// given
		failure := responseFailure(http.StatusBadGateway, "")

		// when
		result := httpclient.Normalize(failure, "GitHub", false)

		// then
		assert.Equal(t, "GitHub: Bad gateway: Bad Gateway", result.Message)
	})

	t.Run("should shorten long plain text bodies without splitting characters", func(t *testing.T) {
		t.Parallel()

		// given
		failure := responseFailure(http.StatusBadRequest, "x"+strings.Repeat("é", 400))

		// when
		result := httpclient.Normalize(failure, "Gitea", false)

		// then
		assert.True(t, utf8.ValidString(result.Message))
		assert.True(t, strings.HasSuffix(result.Message, "é..."))
		assert.Less(t, len(result.Message), 400)
	})
}

func TestNormalizeWithoutResponse(t *testing.T) {
	t.Parallel()

	t.Run("should classify a sent request without response as a retryable network error", func(t *testing.T) {
		t.Parallel()

		// given
		failure := &httpclient.RequestError{
			Method: http.MethodGet,
			URL:    "https://gitea.example.com/api/v1/user",
			Cause:  errors.New("connection refused"),
		}

		// when
		result := httpclient.Normalize(failure, "Gitea", false)

		// then
		assert.Equal(t, entities.ErrorCodeNetwork, result.Code)
		assert.True(t, result.Retryable)
		assert.Zero(t, result.StatusCode)
		assert.Contains(t, result.Message, "connection refused")
	})

	t.Run("should classify a failure before any request as unknown and not retryable", func(t *testing.T) {
		t.Parallel()

		// given
		failure := errors.New("failed to encode request body")

		// when
		result := httpclient.Normalize(failure, "Gitea", false)

		// then
		assert.Equal(t, entities.ErrorCodeUnknown, result.Code)
		assert.False(t, result.Retryable)
		assert.Equal(t, "Gitea: failed to encode request body", result.Message)
	})

	t.Run("should return nil for a nil error", func(t *testing.T) {
		t.Parallel()

		// when
		result := httpclient.Normalize(nil, "Gitea", false)

		// then
		assert.Nil(t, result)
	})
}

func TestNormalizeIdempotence(t *testing.T) {
	t.Parallel()

	t.Run("should produce identical records for the same 404 twice", func(t *testing.T) {
		t.Parallel()

		// given
		failure := responseFailure(http.StatusNotFound, `{"message":"Not Found"}`)

		// when
		first := httpclient.Normalize(failure, "GitHub", true)
		second := httpclient.Normalize(failure, "GitHub", true)

		// then
		assert.Equal(t, first, second)
		assert.True(t, first.Equal(second))
	})

	t.Run("should pass an already normalized record through", func(t *testing.T) {
		t.Parallel()

		// given
		first := httpclient.Normalize(responseFailure(http.StatusTooManyRequests, ""), "GitHub", false)

		// when
		second := httpclient.Normalize(fmt.Errorf("wrapped: %w", first), "Other", false)

		// then
		assert.Same(t, first, second)
	})
}
