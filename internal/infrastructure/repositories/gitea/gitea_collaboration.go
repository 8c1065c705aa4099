package gitea

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/rios0rios0/gitbridge/internal/domain/entities"
	"github.com/rios0rios0/gitbridge/internal/infrastructure/repositories/shared"
)

const (
	draftPrefix        = "WIP: "
	defaultMergeMethod = "merge"
	labelPageSize      = 50
)

type issueQuery struct {
	State  string `url:"state,omitempty"`
	Labels string `url:"labels,omitempty"`
	Type   string `url:"type,omitempty"`
	Page   int    `url:"page,omitempty"`
	Limit  int    `url:"limit,omitempty"`
}

type stateQuery struct {
	State string `url:"state,omitempty"`
	Page  int    `url:"page,omitempty"`
	Limit int    `url:"limit,omitempty"`
}

// --- issues ---

func issuePath(owner, repo string, number int) string {
	return repoPath(owner, repo) + "/issues/" + strconv.Itoa(number)
}

// ListIssues excludes pull requests, which Gitea lists as issues too.
func (p *GiteaProviderRepository) ListIssues(
	ctx context.Context,
	owner, repo string,
	opts entities.IssueListOptions,
) ([]entities.Issue, error) {
	page := paginate(opts.ListOptions)
	query := issueQuery{
		State:  opts.State,
		Labels: strings.Join(opts.Labels, ","),
		Type:   "issues",
		Page:   page.Page,
		Limit:  page.Limit,
	}
	return shared.FetchList(ctx, p.client, http.MethodGet, repoPath(owner, repo)+"/issues", query, nil, normalizeIssue)
}

func (p *GiteaProviderRepository) GetIssue(
	ctx context.Context,
	owner, repo string,
	number int,
) (*entities.Issue, error) {
	return shared.Fetch(ctx, p.client, http.MethodGet, issuePath(owner, repo, number), nil, nil, normalizeIssue)
}

// CreateIssue resolves label names to the IDs Gitea expects before creating the issue.
func (p *GiteaProviderRepository) CreateIssue(
	ctx context.Context,
	owner, repo string,
	input entities.CreateIssueInput,
) (*entities.Issue, error) {
	body := map[string]any{
		"title": input.Title,
		"body":  input.Body,
	}
	if len(input.Assignees) > 0 {
		body["assignees"] = input.Assignees
	}
	if len(input.Labels) > 0 {
		ids, err := p.resolveLabels(ctx, owner, repo, input.Labels)
		if err != nil {
			return nil, err
		}
		body["labels"] = ids
	}
	return shared.Fetch(ctx, p.client, http.MethodPost, repoPath(owner, repo)+"/issues", nil, body, normalizeIssue)
}

// resolveLabels pages through the repository labels; a name with no label is INVALID_INPUT.
func (p *GiteaProviderRepository) resolveLabels(
	ctx context.Context,
	owner, repo string,
	names []string,
) ([]int64, error) {
	known := map[string]int64{}
	for page := entities.DefaultPage; ; page++ {
		labels, err := shared.FetchList(ctx, p.client, http.MethodGet, repoPath(owner, repo)+"/labels",
			pageQuery{Page: page, Limit: labelPageSize}, nil, decodeLabel)
		if err != nil {
			return nil, err
		}
		for _, label := range labels {
			known[label.Name] = label.ID
		}
		if len(labels) < labelPageSize {
			break
		}
	}

	ids := make([]int64, 0, len(names))
	var unknown []string
	for _, name := range names {
		id, ok := known[name]
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		ids = append(ids, id)
	}
	if len(unknown) > 0 {
		return nil, entities.NewInvalidInputError(p.DisplayName(),
			fmt.Errorf("unknown labels: %s", strings.Join(unknown, ", ")))
	}
	return ids, nil
}

func (p *GiteaProviderRepository) UpdateIssue(
	ctx context.Context,
	owner, repo string,
	number int,
	input entities.UpdateIssueInput,
) (*entities.Issue, error) {
	return shared.Fetch(ctx, p.client, http.MethodPatch, issuePath(owner, repo, number), nil, input, normalizeIssue)
}

func (p *GiteaProviderRepository) CreateIssueComment(
	ctx context.Context,
	owner, repo string,
	number int,
	body string,
) (*entities.Comment, error) {
	return shared.Fetch(ctx, p.client, http.MethodPost,
		issuePath(owner, repo, number)+"/comments", nil, map[string]string{"body": body}, normalizeComment)
}

func (p *GiteaProviderRepository) ListIssueComments(
	ctx context.Context,
	owner, repo string,
	number int,
	opts entities.ListOptions,
) ([]entities.Comment, error) {
	return shared.FetchList(ctx, p.client, http.MethodGet,
		issuePath(owner, repo, number)+"/comments", paginate(opts), nil, normalizeComment)
}

// SearchIssues searches across every repository visible to the token.
func (p *GiteaProviderRepository) SearchIssues(
	ctx context.Context,
	query string,
	opts entities.ListOptions,
) ([]entities.Issue, error) {
	page := paginate(opts)
	params := searchQuery{Query: query, Page: page.Page, Limit: page.Limit}
	return shared.FetchList(ctx, p.client, http.MethodGet, "/repos/issues/search", params, nil, normalizeIssue)
}

// --- pull requests ---

func pullPath(owner, repo string, number int) string {
	return repoPath(owner, repo) + "/pulls/" + strconv.Itoa(number)
}

func (p *GiteaProviderRepository) ListPullRequests(
	ctx context.Context,
	owner, repo string,
	opts entities.PullRequestListOptions,
) ([]entities.PullRequest, error) {
	page := paginate(opts.ListOptions)
	query := stateQuery{State: opts.State, Page: page.Page, Limit: page.Limit}
	return shared.FetchList(ctx, p.client, http.MethodGet,
		repoPath(owner, repo)+"/pulls", query, nil, normalizePullRequest)
}

func (p *GiteaProviderRepository) GetPullRequest(
	ctx context.Context,
	owner, repo string,
	number int,
) (*entities.PullRequest, error) {
	return shared.Fetch(ctx, p.client, http.MethodGet, pullPath(owner, repo, number), nil, nil, normalizePullRequest)
}

// CreatePullRequest marks drafts with the WIP title prefix Gitea recognizes.
func (p *GiteaProviderRepository) CreatePullRequest(
	ctx context.Context,
	owner, repo string,
	input entities.CreatePullRequestInput,
) (*entities.PullRequest, error) {
	title := input.Title
	if input.Draft && !strings.HasPrefix(strings.ToUpper(title), "WIP:") {
		title = draftPrefix + title
	}
	body := map[string]string{
		"title": title,
		"body":  input.Body,
		"head":  input.Head,
		"base":  input.Base,
	}
	return shared.Fetch(ctx, p.client, http.MethodPost, repoPath(owner, repo)+"/pulls", nil, body, normalizePullRequest)
}

func (p *GiteaProviderRepository) UpdatePullRequest(
	ctx context.Context,
	owner, repo string,
	number int,
	input entities.UpdatePullRequestInput,
) (*entities.PullRequest, error) {
	return shared.Fetch(ctx, p.client, http.MethodPatch, pullPath(owner, repo, number), nil, input, normalizePullRequest)
}

// MergePullRequest merges and then reads the pull request back for the merge commit.
func (p *GiteaProviderRepository) MergePullRequest(
	ctx context.Context,
	owner, repo string,
	number int,
	input entities.MergeInput,
) (*entities.MergeResult, error) {
	body := map[string]string{
		"Do":                  shared.FirstNonEmpty(input.Method, defaultMergeMethod),
		"merge_title_field":   input.Title,
		"merge_message_field": input.Message,
	}
	if err := p.client.Post(ctx, pullPath(owner, repo, number)+"/merge", body, nil); err != nil {
		return nil, err
	}
	return shared.Fetch(ctx, p.client, http.MethodGet, pullPath(owner, repo, number), nil, nil, normalizeMergeResult)
}
