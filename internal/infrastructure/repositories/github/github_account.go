package github

import (
	"context"
	"net/http"
	"net/url"

	"github.com/rios0rios0/gitbridge/internal/domain/entities"
	"github.com/rios0rios0/gitbridge/internal/infrastructure/repositories/shared"
)

func (p *GitHubProviderRepository) GetUser(ctx context.Context, username string) (*entities.User, error) {
	return shared.Fetch(ctx, p.client, http.MethodGet, "/users/"+url.PathEscape(username), nil, nil, normalizeUser)
}

func (p *GitHubProviderRepository) GetCurrentUser(ctx context.Context) (*entities.User, error) {
	user := shared.Fallback(ctx, p.DisplayName(), "GetCurrentUser",
		func(ctx context.Context) (*entities.User, error) {
			return shared.Fetch(ctx, p.client, http.MethodGet, "/user", nil, nil, normalizeUser)
		},
		func(raw entities.Raw) *entities.User {
			return &entities.User{Login: "unknown", Type: entities.DefaultOwnerType, Raw: raw}
		},
	)
	return user, nil
}

// ListUsers pages through all accounts; GitHub only honours per_page here.
func (p *GitHubProviderRepository) ListUsers(ctx context.Context, opts entities.ListOptions) ([]entities.User, error) {
	users := shared.Fallback(ctx, p.DisplayName(), "ListUsers",
		func(ctx context.Context) ([]entities.User, error) {
			return shared.FetchList(ctx, p.client, http.MethodGet, "/users", paginate(opts), nil, normalizeUser)
		},
		func(raw entities.Raw) []entities.User {
			return []entities.User{{Login: "unknown", Type: entities.DefaultOwnerType, Raw: raw}}
		},
	)
	return users, nil
}

// GetUserOrganizations lists the organizations of username, or of the
// authenticated account when username is empty.
func (p *GitHubProviderRepository) GetUserOrganizations(
	ctx context.Context,
	username string,
) ([]entities.Organization, error) {
	path := "/user/orgs"
	if username != "" {
		path = "/users/" + url.PathEscape(username) + "/orgs"
	}
	orgs := shared.Fallback(ctx, p.DisplayName(), "GetUserOrganizations",
		func(ctx context.Context) ([]entities.Organization, error) {
			return shared.FetchList(ctx, p.client, http.MethodGet, path, nil, nil, normalizeOrganization)
		},
		func(raw entities.Raw) []entities.Organization {
			return []entities.Organization{{Login: "unknown", Name: "Unavailable organization", Raw: raw}}
		},
	)
	return orgs, nil
}

func (p *GitHubProviderRepository) GetUserRepositories(
	ctx context.Context,
	username string,
	opts entities.ListOptions,
) ([]entities.Repository, error) {
	repos := shared.Fallback(ctx, p.DisplayName(), "GetUserRepositories",
		func(ctx context.Context) ([]entities.Repository, error) {
			return p.listUserRepositories(ctx, username, opts)
		},
		func(raw entities.Raw) []entities.Repository {
			return []entities.Repository{{
				Name:  "unknown",
				Owner: entities.Owner{Login: username, Type: entities.DefaultOwnerType},
				Raw:   raw,
			}}
		},
	)
	return repos, nil
}

func (p *GitHubProviderRepository) GetOrganization(ctx context.Context, org string) (*entities.Organization, error) {
	return shared.Fetch(ctx, p.client, http.MethodGet, "/orgs/"+url.PathEscape(org), nil, nil, normalizeOrganization)
}

func (p *GitHubProviderRepository) ListOrganizations(
	ctx context.Context,
	opts entities.ListOptions,
) ([]entities.Organization, error) {
	return shared.FetchList(ctx, p.client, http.MethodGet, "/organizations", paginate(opts), nil, normalizeOrganization)
}
