package gitea

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/gitbridge/internal/domain/entities"
	"github.com/rios0rios0/gitbridge/internal/domain/repositories"
	"github.com/rios0rios0/gitbridge/internal/infrastructure/httpclient"
	"github.com/rios0rios0/gitbridge/internal/infrastructure/repositories/shared"
)

const (
	defaultDisplayName = "Gitea"
	apiPrefix          = "/api/v1"
)

// pageQuery is Gitea's pagination: page + limit.
type pageQuery struct {
	Page  int `url:"page,omitempty"`
	Limit int `url:"limit,omitempty"`
}

type searchQuery struct {
	Query string `url:"q"`
	Page  int    `url:"page,omitempty"`
	Limit int    `url:"limit,omitempty"`
}

func paginate(opts entities.ListOptions) pageQuery {
	normalized := opts.Normalize()
	return pageQuery{Page: normalized.Page, Limit: normalized.Limit}
}

// GiteaProviderRepository implements repositories.ProviderRepository over the
// Gitea /api/v1 API.
type GiteaProviderRepository struct {
	repositories.UnimplementedProvider

	config entities.BackendConfig
	client *httpclient.Client
	now    func() time.Time
}

// NewProviderRepository creates a Gitea adapter for the given backend.
func NewProviderRepository(
	config entities.BackendConfig,
	opts ...httpclient.Option,
) repositories.ProviderRepository {
	return NewGiteaProviderRepository(config, opts...)
}

// NewGiteaProviderRepository creates the concrete Gitea adapter. APIURL is the
// instance root; the /api/v1 prefix is appended when missing.
func NewGiteaProviderRepository(
	config entities.BackendConfig,
	opts ...httpclient.Option,
) *GiteaProviderRepository {
	config.APIURL = strings.TrimRight(config.APIURL, "/")
	if !strings.HasSuffix(config.APIURL, apiPrefix) {
		config.APIURL += apiPrefix
	}
	if config.DisplayName == "" {
		config.DisplayName = defaultDisplayName
	}

	headers := map[string]string{"Accept": "application/json"}
	if config.Token != "" {
		headers["Authorization"] = "token " + config.Token
	}

	return &GiteaProviderRepository{
		UnimplementedProvider: repositories.UnimplementedProvider{Provider: config.DisplayName},
		config:                config,
		client: httpclient.New(httpclient.Config{
			Backend:  config.Name,
			Provider: config.DisplayName,
			BaseURL:  config.APIURL,
			Headers:  headers,
		}, opts...),
		now: time.Now,
	}
}

func (p *GiteaProviderRepository) Name() string        { return p.config.Name }
func (p *GiteaProviderRepository) DisplayName() string { return p.config.DisplayName }

// CloneURL returns the HTTPS clone URL with the token embedded.
func (p *GiteaProviderRepository) CloneURL(repo entities.Repository) string {
	cloneURL := repo.CloneURL
	if cloneURL == "" {
		host := strings.TrimSuffix(p.config.APIURL, apiPrefix)
		cloneURL = fmt.Sprintf("%s/%s/%s.git", host, repo.Owner.Login, repo.Name)
	}
	return shared.AuthenticatedCloneURL(cloneURL, repo.Owner.Login, p.config.Token)
}

func repoPath(owner, repo string) string {
	return fmt.Sprintf("/repos/%s/%s", url.PathEscape(owner), url.PathEscape(repo))
}

// --- repositories ---

// ListRepositories lists an organization's repositories, falling back to the user
// listing when owner is not an organization.
func (p *GiteaProviderRepository) ListRepositories(
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
func (p *GiteaProviderRepository) listUserRepositories(
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

func (p *GiteaProviderRepository) GetRepository(
	ctx context.Context,
	owner, repo string,
) (*entities.Repository, error) {
	return shared.Fetch(ctx, p.client, http.MethodGet, repoPath(owner, repo), nil, nil, normalizeRepository)
}

func (p *GiteaProviderRepository) CreateRepository(
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
	if input.DefaultBranch != "" {
		body["default_branch"] = input.DefaultBranch
	}
	return shared.Fetch(ctx, p.client, http.MethodPost, path, nil, body, normalizeRepository)
}

func (p *GiteaProviderRepository) UpdateRepository(
	ctx context.Context,
	owner, repo string,
	input entities.UpdateRepositoryInput,
) (*entities.Repository, error) {
	return shared.Fetch(ctx, p.client, http.MethodPatch, repoPath(owner, repo), nil, input, normalizeRepository)
}

func (p *GiteaProviderRepository) DeleteRepository(ctx context.Context, owner, repo string) error {
	return p.client.Delete(ctx, repoPath(owner, repo), nil, nil)
}

func (p *GiteaProviderRepository) ForkRepository(
	ctx context.Context,
	owner, repo string,
	input entities.ForkInput,
) (*entities.Repository, error) {
	return shared.Fetch(ctx, p.client, http.MethodPost, repoPath(owner, repo)+"/forks", nil, input, normalizeRepository)
}

// SearchRepositories unwraps the {ok, data} envelope of /repos/search.
func (p *GiteaProviderRepository) SearchRepositories(
	ctx context.Context,
	query string,
	opts entities.ListOptions,
) ([]entities.Repository, error) {
	page := paginate(opts)
	params := searchQuery{Query: query, Page: page.Page, Limit: page.Limit}
	return shared.FetchList(ctx, p.client, http.MethodGet, "/repos/search", params, nil, normalizeRepository)
}

// ArchiveRepository reports the repository as archived without persisting anything.
func (p *GiteaProviderRepository) ArchiveRepository(
	ctx context.Context,
	owner, repo string,
) (*entities.Repository, error) {
	current, err := p.GetRepository(ctx, owner, repo)
	if err != nil {
		return nil, err
	}
	current.Archived = true
	current.ArchivedAt = shared.TimePtr(p.now().UTC())
	current.Simulated = true
	p.warnSimulated("ArchiveRepository", owner, repo)
	return current, nil
}

// TransferRepository reports the repository under newOwner without persisting anything.
func (p *GiteaProviderRepository) TransferRepository(
	ctx context.Context,
	owner, repo, newOwner string,
) (*entities.Repository, error) {
	current, err := p.GetRepository(ctx, owner, repo)
	if err != nil {
		return nil, err
	}
	current.Owner = entities.Owner{Login: newOwner, Type: entities.DefaultOwnerType}
	current.FullName = newOwner + "/" + current.Name
	current.Simulated = true
	p.warnSimulated("TransferRepository", owner, repo)
	return current, nil
}

func (p *GiteaProviderRepository) warnSimulated(operation, owner, repo string) {
	logger.WithFields(logger.Fields{
		"provider":   p.DisplayName(),
		"operation":  operation,
		"repository": owner + "/" + repo,
	}).Warnf("%s is simulated on %s, the change was not persisted", operation, p.DisplayName())
}
