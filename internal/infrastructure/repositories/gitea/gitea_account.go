package gitea

import (
	"context"
	"net/http"
	"net/url"

	"github.com/rios0rios0/gitbridge/internal/domain/entities"
	"github.com/rios0rios0/gitbridge/internal/infrastructure/repositories/shared"
)

func (p *GiteaProviderRepository) GetUser(ctx context.Context, username string) (*entities.User, error) {
	return shared.Fetch(ctx, p.client, http.MethodGet, "/users/"+url.PathEscape(username), nil, nil, normalizeUser)
}

func (p *GiteaProviderRepository) GetCurrentUser(ctx context.Context) (*entities.User, error) {
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

// ListUsers reads the {ok, data} envelope of /users/search.
func (p *GiteaProviderRepository) ListUsers(ctx context.Context, opts entities.ListOptions) ([]entities.User, error) {
	users := shared.Fallback(ctx, p.DisplayName(), "ListUsers",
		func(ctx context.Context) ([]entities.User, error) {
			return shared.FetchList(ctx, p.client, http.MethodGet, "/users/search", paginate(opts), nil, normalizeUser)
		},
		func(raw entities.Raw) []entities.User {
			return []entities.User{{Login: "unknown", Type: entities.DefaultOwnerType, Raw: raw}}
		},
	)
	return users, nil
}

func (p *GiteaProviderRepository) GetUserOrganizations(
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

func (p *GiteaProviderRepository) GetUserRepositories(
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

func (p *GiteaProviderRepository) GetOrganization(ctx context.Context, org string) (*entities.Organization, error) {
	return shared.Fetch(ctx, p.client, http.MethodGet, "/orgs/"+url.PathEscape(org), nil, nil, normalizeOrganization)
}

func (p *GiteaProviderRepository) ListOrganizations(
	ctx context.Context,
	opts entities.ListOptions,
) ([]entities.Organization, error) {
	return shared.FetchList(ctx, p.client, http.MethodGet, "/orgs", paginate(opts), nil, normalizeOrganization)
}
