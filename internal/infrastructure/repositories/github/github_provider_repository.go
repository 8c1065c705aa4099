package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/rios0rios0/gitbridge/internal/domain/entities"
	"github.com/rios0rios0/gitbridge/internal/domain/repositories"
	"github.com/rios0rios0/gitbridge/internal/infrastructure/httpclient"
	"github.com/rios0rios0/gitbridge/internal/infrastructure/repositories/shared"
)

const (
	// DefaultAPIURL is the public GitHub REST endpoint.
	DefaultAPIURL      = "https://api.github.com"
	defaultDisplayName = "GitHub"
	apiVersion         = "2022-11-28"
	cloneUsername      = "x-access-token"
)

// pageQuery is GitHub's pagination: page + per_page.
type pageQuery struct {
	Page    int `url:"page,omitempty"`
	PerPage int `url:"per_page,omitempty"`
}

type searchQuery struct {
	Query   string `url:"q"`
	Page    int    `url:"page,omitempty"`
	PerPage int    `url:"per_page,omitempty"`
}

func paginate(opts entities.ListOptions) pageQuery {
	normalized := opts.Normalize()
	return pageQuery{Page: normalized.Page, PerPage: normalized.Limit}
}

// GitHubProviderRepository implements repositories.ProviderRepository over the
// GitHub REST v3 API.
type GitHubProviderRepository struct {
	repositories.UnimplementedProvider

	config entities.BackendConfig
	client *httpclient.Client
}

// NewProviderRepository creates a GitHub adapter for the given backend.
func NewProviderRepository(
	config entities.BackendConfig,
	opts ...httpclient.Option,
) repositories.ProviderRepository {
	return NewGitHubProviderRepository(config, opts...)
}

// NewGitHubProviderRepository creates the concrete GitHub adapter.
func NewGitHubProviderRepository(
	config entities.BackendConfig,
	opts ...httpclient.Option,
) *GitHubProviderRepository {
	if config.APIURL == "" {
		config.APIURL = DefaultAPIURL
	}
	if config.DisplayName == "" {
		config.DisplayName = defaultDisplayName
	}

	headers := map[string]string{
		"Accept":               "application/vnd.github+json",
		"X-GitHub-Api-Version": apiVersion,
	}
	if config.Token != "" {
		headers["Authorization"] = "Bearer " + config.Token
	}

	return &GitHubProviderRepository{
		UnimplementedProvider: repositories.UnimplementedProvider{Provider: config.DisplayName},
		config:                config,
		client: httpclient.New(httpclient.Config{
			Backend:  config.Name,
			Provider: config.DisplayName,
			BaseURL:  config.APIURL,
			Headers:  headers,
		}, opts...),
	}
}

func (p *GitHubProviderRepository) Name() string        { return p.config.Name }
func (p *GitHubProviderRepository) DisplayName() string { return p.config.DisplayName }

// CloneURL returns the HTTPS clone URL with the token embedded.
func (p *GitHubProviderRepository) CloneURL(repo entities.Repository) string {
	cloneURL := repo.CloneURL
	if cloneURL == "" {
		cloneURL = fmt.Sprintf("https://github.com/%s/%s.git", repo.Owner.Login, repo.Name)
	}
	return shared.AuthenticatedCloneURL(cloneURL, cloneUsername, p.config.Token)
}

func repoPath(owner, repo string) string {
	return fmt.Sprintf("/repos/%s/%s", url.PathEscape(owner), url.PathEscape(repo))
}

// --- repositories ---

// ListRepositories lists an organization's repositories, falling back to the user
// listing when owner is not an organization.
func (p *GitHubProviderRepository) ListRepositories(
	ctx context.Context,
	owner string,
	opts entities.ListOptions,
) ([]entities.Repository, error) {
	query := paginate(opts)
	if owner == "" {
		return shared.FetchList(ctx, p.client, http.MethodGet, "/user/repos", query, nil, normalizeRepository)
	}

	repos, err := shared.FetchList(ctx, p.client, http.MethodGet,
		"/orgs/"+url.PathEscape(owner)+"/repos", query, nil, normalizeRepository)
	if entities.IsErrorCode(err, entities.ErrorCodeNotFound) {
		return p.listUserRepositories(ctx, owner, opts)
	}
	return repos, err
}

// listUserRepositories lists the authenticated account's repositories for an empty username.
func (p *GitHubProviderRepository) listUserRepositories(
	ctx context.Context,
	username string,
	opts entities.ListOptions,
) ([]entities.Repository, error) {
	path := "/user/repos"
	if username != "" {
		path = "/users/" + url.PathEscape(username) + "/repos"
	}
	return shared.FetchList(ctx, p.client, http.MethodGet, path, paginate(opts), nil, normalizeRepository)
}

func (p *GitHubProviderRepository) GetRepository(
	ctx context.Context,
	owner, repo string,
) (*entities.Repository, error) {
	return shared.Fetch(ctx, p.client, http.MethodGet, repoPath(owner, repo), nil, nil, normalizeRepository)
}

func (p *GitHubProviderRepository) CreateRepository(
	ctx context.Context,
	input entities.CreateRepositoryInput,
) (*entities.Repository, error) {
	path := "/user/repos"
	if input.Organization != "" {
		path = "/orgs/" + url.PathEscape(input.Organization) + "/repos"
	}
	body := map[string]any{
		"name":        input.Name,
		"description": input.Description,
		"private":     input.Private,
		"auto_init":   input.AutoInit,
	}
	return shared.Fetch(ctx, p.client, http.MethodPost, path, nil, body, normalizeRepository)
}

func (p *GitHubProviderRepository) UpdateRepository(
	ctx context.Context,
	owner, repo string,
	input entities.UpdateRepositoryInput,
) (*entities.Repository, error) {
	return shared.Fetch(ctx, p.client, http.MethodPatch, repoPath(owner, repo), nil, input, normalizeRepository)
}

func (p *GitHubProviderRepository) DeleteRepository(ctx context.Context, owner, repo string) error {
	return p.client.Delete(ctx, repoPath(owner, repo), nil, nil)
}

func (p *GitHubProviderRepository) ForkRepository(
	ctx context.Context,
	owner, repo string,
	input entities.ForkInput,
) (*entities.Repository, error) {
	return shared.Fetch(ctx, p.client, http.MethodPost, repoPath(owner, repo)+"/forks", nil, input, normalizeRepository)
}

func (p *GitHubProviderRepository) SearchRepositories(
	ctx context.Context,
	query string,
	opts entities.ListOptions,
) ([]entities.Repository, error) {
	page := paginate(opts)
	params := searchQuery{Query: query, Page: page.Page, PerPage: page.PerPage}
	return shared.FetchList(ctx, p.client, http.MethodGet, "/search/repositories", params, nil, normalizeRepository)
}

func (p *GitHubProviderRepository) ArchiveRepository(
	ctx context.Context,
	owner, repo string,
) (*entities.Repository, error) {
	archived := true
	return p.UpdateRepository(ctx, owner, repo, entities.UpdateRepositoryInput{Archived: &archived})
}

func (p *GitHubProviderRepository) TransferRepository(
	ctx context.Context,
	owner, repo, newOwner string,
) (*entities.Repository, error) {
	body := map[string]string{"new_owner": newOwner}
	return shared.Fetch(ctx, p.client, http.MethodPost, repoPath(owner, repo)+"/transfer", nil, body, normalizeRepository)
}
