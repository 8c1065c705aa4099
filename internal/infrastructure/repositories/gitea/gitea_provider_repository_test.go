//go:build unit

package gitea_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/gitbridge/internal/domain/entities"
	"github.com/rios0rios0/gitbridge/internal/infrastructure/repositories/gitea"
)

func newTestProvider(t *testing.T, mux *http.ServeMux) *gitea.GiteaProviderRepository {
	t.Helper()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return gitea.NewGiteaProviderRepository(entities.BackendConfig{
		Name:   "gitea",
		Type:   entities.BackendTypeGitea,
		APIURL: server.URL,
		Token:  "test-token",
	})
}

func readBody(t *testing.T, r *http.Request) map[string]any {
	t.Helper()
	data, err := io.ReadAll(r.Body)
	require.NoError(t, err)
	body := map[string]any{}
	require.NoError(t, json.Unmarshal(data, &body))
	return body
}

func TestGiteaRepositories(t *testing.T) {
	t.Parallel()

	t.Run("should authenticate with the token scheme and read owner usernames", func(t *testing.T) {
		t.Parallel()

		// given
		payload := `{"id":3,"name":"demo","full_name":"octo/demo","owner":{"id":1,"username":"octo"},` +
			`"stars_count":4,"default_branch":"main"}`
		var auth string
		mux := http.NewServeMux()
		mux.HandleFunc("GET /api/v1/repos/octo/demo", func(w http.ResponseWriter, r *http.Request) {
			auth = r.Header.Get("Authorization")
			_, _ = w.Write([]byte(payload))
		})
		provider := newTestProvider(t, mux)

		// when
		repo, err := provider.GetRepository(context.Background(), "octo", "demo")

		// then
		require.NoError(t, err)
		assert.Equal(t, "token test-token", auth)
		assert.Equal(t, "octo", repo.Owner.Login)
		assert.Equal(t, entities.DefaultOwnerType, repo.Owner.Type)
		assert.Equal(t, 4, repo.Stars)
		assert.JSONEq(t, payload, string(repo.Raw))
	})

	t.Run("should page with limit and unwrap the search envelope", func(t *testing.T) {
		t.Parallel()

		// given
		var limit string
		mux := http.NewServeMux()
		mux.HandleFunc("GET /api/v1/repos/search", func(w http.ResponseWriter, r *http.Request) {
			limit = r.URL.Query().Get("limit")
			_, _ = w.Write([]byte(`{"ok":true,"data":[{"id":1,"name":"a"},{"id":2,"name":"b"}]}`))
		})
		provider := newTestProvider(t, mux)

		// when
		repos, err := provider.SearchRepositories(context.Background(), "a", entities.ListOptions{Limit: 10})

		// then
		require.NoError(t, err)
		assert.Len(t, repos, 2)
		assert.Equal(t, "10", limit)
	})

	t.Run("should simulate archiving without writing to the backend", func(t *testing.T) {
		t.Parallel()

		// given
		writes := 0
		mux := http.NewServeMux()
		mux.HandleFunc("/api/v1/repos/octo/demo", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				writes++
			}
			_, _ = w.Write([]byte(`{"id":3,"name":"demo","owner":{"login":"octo"},"archived":false}`))
		})
		provider := newTestProvider(t, mux)

		// when
		repo, err := provider.ArchiveRepository(context.Background(), "octo", "demo")

		// then
		require.NoError(t, err)
		assert.True(t, repo.Archived)
		assert.True(t, repo.Simulated)
		assert.NotNil(t, repo.ArchivedAt)
		assert.Zero(t, writes)
	})

	t.Run("should simulate a transfer under the new owner", func(t *testing.T) {
		t.Parallel()

		// given
		mux := http.NewServeMux()
		mux.HandleFunc("GET /api/v1/repos/octo/demo", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"id":3,"name":"demo","full_name":"octo/demo","owner":{"login":"octo"}}`))
		})
		provider := newTestProvider(t, mux)

		// when
		repo, err := provider.TransferRepository(context.Background(), "octo", "demo", "acme")

		// then
		require.NoError(t, err)
		assert.Equal(t, "acme", repo.Owner.Login)
		assert.Equal(t, "acme/demo", repo.FullName)
		assert.True(t, repo.Simulated)
	})
}

func TestGiteaCommits(t *testing.T) {
	t.Parallel()

	t.Run("should reject a pre-built tree as not supported", func(t *testing.T) {
		t.Parallel()

		// given
		provider := newTestProvider(t, http.NewServeMux())

		// when
		commit, err := provider.CreateCommit(context.Background(), "octo", "demo", entities.CreateCommitInput{
			Branch: "main",
			Tree:   "abc",
		})

		// then
		require.Error(t, err)
		assert.Nil(t, commit)
		assert.True(t, entities.IsErrorCode(err, entities.ErrorCodeNotSupported))
	})

	t.Run("should create and update files in one change and verify the branch moved", func(t *testing.T) {
		t.Parallel()

		// given
		var request map[string]any
		branchReads := 0
		mux := http.NewServeMux()
		mux.HandleFunc("GET /api/v1/repos/octo/demo/branches/main", func(w http.ResponseWriter, _ *http.Request) {
			branchReads++
			sha := "head1"
			if branchReads > 1 {
				sha = "new1"
			}
			_, _ = w.Write([]byte(`{"name":"main","commit":{"id":"` + sha + `"}}`))
		})
		mux.HandleFunc("GET /api/v1/repos/octo/demo/contents/README.md", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"name":"README.md","path":"README.md","sha":"blob1","type":"file"}`))
		})
		mux.HandleFunc("GET /api/v1/repos/octo/demo/contents/NEW.md", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"object does not exist"}`))
		})
		mux.HandleFunc("POST /api/v1/repos/octo/demo/contents", func(w http.ResponseWriter, r *http.Request) {
			request = readBody(t, r)
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"files":[],"commit":{"sha":"new1","message":"msg","parents":[{"sha":"head1"}]}}`))
		})
		provider := newTestProvider(t, mux)

		// when
		commit, err := provider.CreateCommit(context.Background(), "octo", "demo", entities.CreateCommitInput{
			Branch:  "main",
			Message: "msg",
			Files: []entities.FileChange{
				{Path: "README.md", Content: "updated"},
				{Path: "NEW.md", Content: "created"},
			},
		})

		// then
		require.NoError(t, err)
		assert.Equal(t, "new1", commit.SHA)
		assert.Equal(t, []string{"head1"}, commit.Parents)
		files, ok := request["files"].([]any)
		require.True(t, ok)
		require.Len(t, files, 2)
		first, _ := files[0].(map[string]any)
		second, _ := files[1].(map[string]any)
		assert.Equal(t, "update", first["operation"])
		assert.Equal(t, "blob1", first["sha"])
		assert.Equal(t, "create", second["operation"])
	})

	t.Run("should report a conflict when the branch does not point at the new commit", func(t *testing.T) {
		t.Parallel()

		// given
		mux := http.NewServeMux()
		mux.HandleFunc("GET /api/v1/repos/octo/demo/branches/main", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"name":"main","commit":{"id":"someone-else"}}`))
		})
		mux.HandleFunc("GET /api/v1/repos/octo/demo/contents/a.txt", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})
		mux.HandleFunc("POST /api/v1/repos/octo/demo/contents", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"commit":{"sha":"new1"}}`))
		})
		provider := newTestProvider(t, mux)

		// when
		commit, err := provider.CreateCommit(context.Background(), "octo", "demo", entities.CreateCommitInput{
			Branch:  "main",
			Message: "msg",
			Files:   []entities.FileChange{{Path: "a.txt", Content: "a"}},
		})

		// then
		require.Error(t, err)
		assert.Nil(t, commit)
		assert.True(t, entities.IsErrorCode(err, entities.ErrorCodeConflict))
		assert.Contains(t, err.Error(), "Gitea: ")
	})
}

func TestGiteaCapabilityGaps(t *testing.T) {
	t.Parallel()

	t.Run("should answer NOT_SUPPORTED for workflows", func(t *testing.T) {
		t.Parallel()

		// given
		provider := newTestProvider(t, http.NewServeMux())
		ctx := context.Background()

		// when
		_, listErr := provider.ListWorkflows(ctx, "octo", "demo", entities.ListOptions{})
		_, runsErr := provider.ListWorkflowRuns(ctx, "octo", "demo", entities.WorkflowRunListOptions{})
		triggerErr := provider.TriggerWorkflow(ctx, "octo", "demo", "ci.yml", entities.TriggerWorkflowInput{Ref: "main"})

		// then
		for _, err := range []error{listErr, runsErr, triggerErr} {
			require.Error(t, err)
			assert.True(t, entities.IsErrorCode(err, entities.ErrorCodeNotSupported))
			assert.False(t, entities.IsRetryable(err))
		}
	})

	t.Run("should treat an already deleted tag as success", func(t *testing.T) {
		t.Parallel()

		// given
		mux := http.NewServeMux()
		mux.HandleFunc("DELETE /api/v1/repos/octo/demo/tags/v1.0.0", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})
		provider := newTestProvider(t, mux)

		// when
		err := provider.DeleteTag(context.Background(), "octo", "demo", "v1.0.0")

		// then
		require.NoError(t, err)
	})

	t.Run("should return one placeholder organization when the listing always fails", func(t *testing.T) {
		t.Parallel()

		// given
		calls := 0
		mux := http.NewServeMux()
		mux.HandleFunc("GET /api/v1/users/octo/orgs", func(w http.ResponseWriter, _ *http.Request) {
			calls++
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"message":"database is locked"}`))
		})
		provider := newTestProvider(t, mux)

		// when
		orgs, err := provider.GetUserOrganizations(context.Background(), "octo")

		// then
		require.NoError(t, err)
		require.Len(t, orgs, 1)
		assert.Equal(t, 1, calls)
		assert.True(t, orgs[0].Raw.IsMock())
		message, ok := orgs[0].Raw.Field("error")
		require.True(t, ok)
		assert.Contains(t, message, "database is locked")
	})

	t.Run("should map Gitea organizations that only carry a username", func(t *testing.T) {
		t.Parallel()

		// given
		mux := http.NewServeMux()
		mux.HandleFunc("GET /api/v1/user/orgs", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`[{"id":9,"username":"acme","full_name":"Acme Corp"}]`))
		})
		provider := newTestProvider(t, mux)

		// when
		orgs, err := provider.GetUserOrganizations(context.Background(), "")

		// then
		require.NoError(t, err)
		require.Len(t, orgs, 1)
		assert.Equal(t, "acme", orgs[0].Login)
		assert.Equal(t, "Acme Corp", orgs[0].Name)
	})
}

func TestGiteaPullRequests(t *testing.T) {
	t.Parallel()

	t.Run("should merge and read the merge commit back", func(t *testing.T) {
		t.Parallel()

		// given
		var mergeBody map[string]any
		mux := http.NewServeMux()
		mux.HandleFunc("POST /api/v1/repos/octo/demo/pulls/5/merge", func(w http.ResponseWriter, r *http.Request) {
			mergeBody = readBody(t, r)
			w.WriteHeader(http.StatusOK)
		})
		mux.HandleFunc("GET /api/v1/repos/octo/demo/pulls/5", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"id":50,"number":5,"merged":true,"merge_commit_sha":"m1"}`))
		})
		provider := newTestProvider(t, mux)

		// when
		result, err := provider.MergePullRequest(context.Background(), "octo", "demo", 5, entities.MergeInput{
			Method: "squash",
		})

		// then
		require.NoError(t, err)
		assert.True(t, result.Merged)
		assert.Equal(t, "m1", result.SHA)
		assert.Equal(t, "squash", mergeBody["Do"])
	})

	t.Run("should mark drafts with the WIP prefix", func(t *testing.T) {
		t.Parallel()

		// given
		var body map[string]any
		mux := http.NewServeMux()
		mux.HandleFunc("POST /api/v1/repos/octo/demo/pulls", func(w http.ResponseWriter, r *http.Request) {
			body = readBody(t, r)
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"id":1,"number":1,"title":"WIP: feature","user":{"login":"octo"}}`))
		})
		provider := newTestProvider(t, mux)

		// when
		pr, err := provider.CreatePullRequest(context.Background(), "octo", "demo", entities.CreatePullRequestInput{
			Title: "feature",
			Head:  "feature",
			Base:  "main",
			Draft: true,
		})

		// then
		require.NoError(t, err)
		assert.Equal(t, "WIP: feature", body["title"])
		assert.True(t, pr.Draft)
		assert.Equal(t, "octo", pr.Author)
	})
}

func TestGiteaIssues(t *testing.T) {
	t.Parallel()

	t.Run("should send the IDs of the requested labels across label pages", func(t *testing.T) {
		t.Parallel()

		// given
		var body map[string]any
		mux := http.NewServeMux()
		mux.HandleFunc("GET /api/v1/repos/octo/demo/labels", func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("page") != "1" {
				_, _ = w.Write([]byte(`[{"id":77,"name":"bug"}]`))
				return
			}
			labels := make([]string, 0, 50)
			for id := 1; id <= 50; id++ {
				labels = append(labels, fmt.Sprintf(`{"id":%d,"name":"l%d"}`, id, id))
			}
			_, _ = w.Write([]byte("[" + strings.Join(labels, ",") + "]"))
		})
		mux.HandleFunc("POST /api/v1/repos/octo/demo/issues", func(w http.ResponseWriter, r *http.Request) {
			body = readBody(t, r)
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"id":1,"number":9,"title":"t","labels":[{"id":77,"name":"bug"},{"id":3,"name":"l3"}]}`))
		})
		provider := newTestProvider(t, mux)

		// when
		issue, err := provider.CreateIssue(context.Background(), "octo", "demo", entities.CreateIssueInput{
			Title:  "t",
			Labels: []string{"bug", "l3"},
		})

		// then
		require.NoError(t, err)
		assert.Equal(t, []any{float64(77), float64(3)}, body["labels"])
		assert.Equal(t, []string{"bug", "l3"}, issue.Labels)
	})

	t.Run("should reject labels the repository does not define", func(t *testing.T) {
		t.Parallel()

		// given
		created := false
		mux := http.NewServeMux()
		mux.HandleFunc("GET /api/v1/repos/octo/demo/labels", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`[{"id":77,"name":"bug"}]`))
		})
		mux.HandleFunc("POST /api/v1/repos/octo/demo/issues", func(w http.ResponseWriter, _ *http.Request) {
			created = true
			w.WriteHeader(http.StatusCreated)
		})
		provider := newTestProvider(t, mux)

		// when
		issue, err := provider.CreateIssue(context.Background(), "octo", "demo", entities.CreateIssueInput{
			Title:  "t",
			Labels: []string{"bug", "triage"},
		})

		// then
		require.Error(t, err)
		assert.Nil(t, issue)
		assert.True(t, entities.IsErrorCode(err, entities.ErrorCodeInvalidInput))
		assert.Contains(t, err.Error(), "triage")
		assert.False(t, created)
	})

	t.Run("should not read labels when none are requested", func(t *testing.T) {
		t.Parallel()

		// given
		var body map[string]any
		mux := http.NewServeMux()
		mux.HandleFunc("POST /api/v1/repos/octo/demo/issues", func(w http.ResponseWriter, r *http.Request) {
			body = readBody(t, r)
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"id":1,"number":10,"title":"t"}`))
		})
		provider := newTestProvider(t, mux)

		// when
		_, err := provider.CreateIssue(context.Background(), "octo", "demo", entities.CreateIssueInput{Title: "t"})

		// then
		require.NoError(t, err)
		assert.NotContains(t, body, "labels")
	})
}

func TestGiteaUpdates(t *testing.T) {
	t.Parallel()

	t.Run("should send cleared release flags", func(t *testing.T) {
		t.Parallel()

		// given
		var body map[string]any
		mux := http.NewServeMux()
		mux.HandleFunc("PATCH /api/v1/repos/octo/demo/releases/5", func(w http.ResponseWriter, r *http.Request) {
			body = readBody(t, r)
			_, _ = w.Write([]byte(`{"id":5,"tag_name":"v1","draft":false,"prerelease":false}`))
		})
		provider := newTestProvider(t, mux)
		published := false

		// when
		release, err := provider.UpdateRelease(context.Background(), "octo", "demo", 5, entities.UpdateReleaseInput{
			Draft:      &published,
			Prerelease: &published,
		})

		// then
		require.NoError(t, err)
		assert.False(t, release.Draft)
		assert.Equal(t, map[string]any{"draft": false, "prerelease": false}, body)
	})

	t.Run("should keep the content type of a webhook unless it is given", func(t *testing.T) {
		t.Parallel()

		// given
		var body map[string]any
		mux := http.NewServeMux()
		mux.HandleFunc("PATCH /api/v1/repos/octo/demo/hooks/4", func(w http.ResponseWriter, r *http.Request) {
			body = readBody(t, r)
			_, _ = w.Write([]byte(`{"id":4,"active":true,"config":{"url":"https://hooks.example.com","content_type":"form"}}`))
		})
		provider := newTestProvider(t, mux)

		// when
		_, err := provider.UpdateWebhook(context.Background(), "octo", "demo", 4, entities.WebhookInput{
			Events: []string{"issues"},
		})

		// then
		require.NoError(t, err)
		assert.NotContains(t, body, "config")
		assert.Equal(t, []any{"issues"}, body["events"])
	})

	t.Run("should list the authenticated account repositories for an empty username", func(t *testing.T) {
		t.Parallel()

		// given
		mux := http.NewServeMux()
		mux.HandleFunc("GET /api/v1/user/repos", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`[{"id":8,"name":"mine","owner":{"id":1,"login":"me"}}]`))
		})
		provider := newTestProvider(t, mux)

		// when
		repos, err := provider.GetUserRepositories(context.Background(), "", entities.ListOptions{})

		// then
		require.NoError(t, err)
		require.Len(t, repos, 1)
		assert.Equal(t, "mine", repos[0].Name)
		assert.False(t, repos[0].Raw.IsMock())
	})
}
