package github

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/rios0rios0/gitbridge/internal/domain/entities"
	"github.com/rios0rios0/gitbridge/internal/infrastructure/repositories/shared"
)

type issueQuery struct {
	State   string `url:"state,omitempty"`
	Labels  string `url:"labels,omitempty"`
	Page    int    `url:"page,omitempty"`
	PerPage int    `url:"per_page,omitempty"`
}

func issuePath(owner, repo string, number int) string {
	return repoPath(owner, repo) + "/issues/" + strconv.Itoa(number)
}

// --- issues ---

func (p *GitHubProviderRepository) ListIssues(
	ctx context.Context,
	owner, repo string,
	opts entities.IssueListOptions,
) ([]entities.Issue, error) {
	page := paginate(opts.ListOptions)
	query := issueQuery{
		State:   opts.State,
		Labels:  strings.Join(opts.Labels, ","),
		Page:    page.Page,
		PerPage: page.PerPage,
	}
	return shared.FetchList(ctx, p.client, http.MethodGet, repoPath(owner, repo)+"/issues", query, nil, normalizeIssue)
}

func (p *GitHubProviderRepository) GetIssue(
	ctx context.Context,
	owner, repo string,
	number int,
) (*entities.Issue, error) {
	return shared.Fetch(ctx, p.client, http.MethodGet, issuePath(owner, repo, number), nil, nil, normalizeIssue)
}

func (p *GitHubProviderRepository) CreateIssue(
	ctx context.Context,
	owner, repo string,
	input entities.CreateIssueInput,
) (*entities.Issue, error) {
	return shared.Fetch(ctx, p.client, http.MethodPost, repoPath(owner, repo)+"/issues", nil, input, normalizeIssue)
}

func (p *GitHubProviderRepository) UpdateIssue(
	ctx context.Context,
	owner, repo string,
	number int,
	input entities.UpdateIssueInput,
) (*entities.Issue, error) {
	return shared.Fetch(ctx, p.client, http.MethodPatch, issuePath(owner, repo, number), nil, input, normalizeIssue)
}

func (p *GitHubProviderRepository) CreateIssueComment(
	ctx context.Context,
	owner, repo string,
	number int,
	body string,
) (*entities.Comment, error) {
	return shared.Fetch(ctx, p.client, http.MethodPost,
		issuePath(owner, repo, number)+"/comments", nil, map[string]string{"body": body}, normalizeComment)
}

func (p *GitHubProviderRepository) ListIssueComments(
	ctx context.Context,
	owner, repo string,
	number int,
	opts entities.ListOptions,
) ([]entities.Comment, error) {
	return shared.FetchList(ctx, p.client, http.MethodGet,
		issuePath(owner, repo, number)+"/comments", paginate(opts), nil, normalizeComment)
}

func (p *GitHubProviderRepository) SearchIssues(
	ctx context.Context,
	query string,
	opts entities.ListOptions,
) ([]entities.Issue, error) {
	page := paginate(opts)
	params := searchQuery{Query: query, Page: page.Page, PerPage: page.PerPage}
	return shared.FetchList(ctx, p.client, http.MethodGet, "/search/issues", params, nil, normalizeIssue)
}

// --- pull requests ---

func pullPath(owner, repo string, number int) string {
	return repoPath(owner, repo) + "/pulls/" + strconv.Itoa(number)
}

func (p *GitHubProviderRepository) ListPullRequests(
	ctx context.Context,
	owner, repo string,
	opts entities.PullRequestListOptions,
) ([]entities.PullRequest, error) {
	page := paginate(opts.ListOptions)
	query := issueQuery{State: opts.State, Page: page.Page, PerPage: page.PerPage}
	return shared.FetchList(ctx, p.client, http.MethodGet,
		repoPath(owner, repo)+"/pulls", query, nil, normalizePullRequest)
}

func (p *GitHubProviderRepository) GetPullRequest(
	ctx context.Context,
	owner, repo string,
	number int,
) (*entities.PullRequest, error) {
	return shared.Fetch(ctx, p.client, http.MethodGet, pullPath(owner, repo, number), nil, nil, normalizePullRequest)
}

func (p *GitHubProviderRepository) CreatePullRequest(
	ctx context.Context,
	owner, repo string,
	input entities.CreatePullRequestInput,
) (*entities.PullRequest, error) {
	return shared.Fetch(ctx, p.client, http.MethodPost,
		repoPath(owner, repo)+"/pulls", nil, input, normalizePullRequest)
}

func (p *GitHubProviderRepository) UpdatePullRequest(
	ctx context.Context,
	owner, repo string,
	number int,
	input entities.UpdatePullRequestInput,
) (*entities.PullRequest, error) {
	return shared.Fetch(ctx, p.client, http.MethodPatch, pullPath(owner, repo, number), nil, input, normalizePullRequest)
}

func (p *GitHubProviderRepository) MergePullRequest(
	ctx context.Context,
	owner, repo string,
	number int,
	input entities.MergeInput,
) (*entities.MergeResult, error) {
	body := map[string]string{"merge_method": shared.FirstNonEmpty(input.Method, "merge")}
	if input.Title != "" {
		body["commit_title"] = input.Title
	}
	if input.Message != "" {
		body["commit_message"] = input.Message
	}
	return shared.Fetch(ctx, p.client, http.MethodPut,
		pullPath(owner, repo, number)+"/merge", nil, body, normalizeMergeResult)
}
