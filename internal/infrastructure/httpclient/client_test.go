//go:build unit

package httpclient_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/gitbridge/internal/domain/entities"
	"github.com/rios0rios0/gitbridge/internal/infrastructure/httpclient"
	"github.com/rios0rios0/gitbridge/internal/infrastructure/metrics"
)

type pageQuery struct {
	Page    int `url:"page,omitempty"`
	PerPage int `url:"per_page,omitempty"`
}

func newTestClient(serverURL string, opts ...httpclient.Option) *httpclient.Client {
	return httpclient.New(httpclient.Config{
		Backend:  "github",
		Provider: "GitHub",
		BaseURL:  serverURL,
		Headers: map[string]string{
			"Authorization": "Bearer test-token",
			"Accept":        "application/vnd.github+json",
		},
	}, opts...)
}

func TestClientRequests(t *testing.T) {
	t.Parallel()

	t.Run("should send backend headers, request id and encoded query", func(t *testing.T) {
		t.Parallel()

		// given
		var captured *http.Request
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			captured = r
			_, _ = w.Write([]byte(`[{"id":1}]`))
		}))
		defer server.Close()
		client := newTestClient(server.URL)

		// when
		var out json.RawMessage
		err := client.Get(context.Background(), "/user/repos", pageQuery{Page: 2, PerPage: 30}, &out)

		// then
		require.NoError(t, err)
		require.NotNil(t, captured)
		assert.Equal(t, "/user/repos", captured.URL.Path)
		assert.Equal(t, "2", captured.URL.Query().Get("page"))
		assert.Equal(t, "30", captured.URL.Query().Get("per_page"))
		assert.Equal(t, "Bearer test-token", captured.Header.Get("Authorization"))
		assert.Equal(t, "application/vnd.github+json", captured.Header.Get("Accept"))
		assert.NotEmpty(t, captured.Header.Get(httpclient.RequestIDHeader))
		assert.JSONEq(t, `[{"id":1}]`, string(out))
	})

	t.Run("should merge url.Values with a query already present in the path", func(t *testing.T) {
		t.Parallel()

		// given
		var query url.Values
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			query = r.URL.Query()
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()
		client := newTestClient(server.URL)

		// when
		err := client.Get(context.Background(), "/repos/o/r/commits?sha=main", url.Values{"limit": {"5"}}, nil)

		// then
		require.NoError(t, err)
		assert.Equal(t, "main", query.Get("sha"))
		assert.Equal(t, "5", query.Get("limit"))
	})

	t.Run("should send a JSON body with DELETE", func(t *testing.T) {
		t.Parallel()

		// given
		var method string
		var body map[string]any
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			method = r.Method
			data, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(data, &body)
			w.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()
		client := newTestClient(server.URL)

		// when
		err := client.Delete(context.Background(), "/repos/o/r/contents/README.md",
			map[string]string{"sha": "abc", "message": "remove"}, nil)

		// then
		require.NoError(t, err)
		assert.Equal(t, http.MethodDelete, method)
		assert.Equal(t, "abc", body["sha"])
		assert.Equal(t, "remove", body["message"])
	})

	t.Run("should decode into typed targets", func(t *testing.T) {
		t.Parallel()

		// given
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"login":"octocat"}`))
		}))
		defer server.Close()
		client := newTestClient(server.URL)

		// when
		var out struct {
			Login string `json:"login"`
		}
		err := client.Get(context.Background(), "/user", nil, &out)

		// then
		require.NoError(t, err)
		assert.Equal(t, "octocat", out.Login)
	})
}

func TestClientFailures(t *testing.T) {
	t.Parallel()

	t.Run("should normalize a non-2xx response", func(t *testing.T) {
		t.Parallel()

		// given
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"message":"maintenance"}`))
		}))
		defer server.Close()
		client := newTestClient(server.URL)

		// when
		err := client.Get(context.Background(), "/user", nil, nil)

		// then
		require.Error(t, err)
		apiErr, ok := entities.AsAPIError(err)
		require.True(t, ok)
		assert.Equal(t, entities.ErrorCodeServiceUnavailable, apiErr.Code)
		assert.True(t, apiErr.Retryable)
		assert.Equal(t, "GitHub: Service unavailable: maintenance", apiErr.Message)
	})

	t.Run("should report a network error when the backend is unreachable", func(t *testing.T) {
		t.Parallel()

		// given
		server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		serverURL := server.URL
		server.Close()
		client := newTestClient(serverURL)

		// when
		err := client.Get(context.Background(), "/user", nil, nil)

		// then
		require.Error(t, err)
		assert.True(t, entities.IsErrorCode(err, entities.ErrorCodeNetwork))
		assert.True(t, entities.IsRetryable(err))
	})

	t.Run("should report an unknown error when the body cannot be encoded", func(t *testing.T) {
		t.Parallel()

		// given
		client := newTestClient("https://api.example.com")

		// when
		err := client.Post(context.Background(), "/user/repos", map[string]any{"bad": make(chan int)}, nil)

		// then
		require.Error(t, err)
		assert.True(t, entities.IsErrorCode(err, entities.ErrorCodeUnknown))
		assert.False(t, entities.IsRetryable(err))
	})

	t.Run("should report a decode error for an unexpected payload", func(t *testing.T) {
		t.Parallel()

		// given
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`<html>login</html>`))
		}))
		defer server.Close()
		client := newTestClient(server.URL)

		// when
		var out map[string]any
		err := client.Get(context.Background(), "/user", nil, &out)

		// then
		require.Error(t, err)
		assert.True(t, entities.IsErrorCode(err, entities.ErrorCodeDecode))
	})

	t.Run("should record calls on the metrics collector", func(t *testing.T) {
		t.Parallel()

		// given
		collector, err := metrics.NewCollector()
		require.NoError(t, err)
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()
		client := newTestClient(server.URL, httpclient.WithCollector(collector))

		// when
		callErr := client.Get(context.Background(), "/repos/o/missing", nil, nil)

		// then
		require.Error(t, callErr)
		families, gatherErr := collector.Registry().Gather()
		require.NoError(t, gatherErr)
		assert.NotEmpty(t, families)
	})
}

func TestEscapePath(t *testing.T) {
	t.Parallel()

	t.Run("should escape each segment and keep separators", func(t *testing.T) {
		t.Parallel()

		// when
		escaped := httpclient.EscapePath("/docs/my notes/a#b.md")

		// then
		assert.Equal(t, "docs/my%20notes/a%23b.md", escaped)
	})
}
