package gitea

import (
	"context"
	"net/http"
	"strconv"

	"github.com/rios0rios0/gitbridge/internal/domain/entities"
	"github.com/rios0rios0/gitbridge/internal/infrastructure/httpclient"
	"github.com/rios0rios0/gitbridge/internal/infrastructure/repositories/shared"
)

func releasePath(owner, repo string, id int64) string {
	return repoPath(owner, repo) + "/releases/" + strconv.FormatInt(id, 10)
}

func (p *GiteaProviderRepository) ListReleases(
	ctx context.Context,
	owner, repo string,
	opts entities.ListOptions,
) ([]entities.Release, error) {
	return shared.FetchList(ctx, p.client, http.MethodGet,
		repoPath(owner, repo)+"/releases", paginate(opts), nil, normalizeRelease)
}

func (p *GiteaProviderRepository) GetRelease(
	ctx context.Context,
	owner, repo string,
	id int64,
) (*entities.Release, error) {
	return shared.Fetch(ctx, p.client, http.MethodGet, releasePath(owner, repo, id), nil, nil, normalizeRelease)
}

func (p *GiteaProviderRepository) GetLatestRelease(
	ctx context.Context,
	owner, repo string,
) (*entities.Release, error) {
	return shared.Fetch(ctx, p.client, http.MethodGet,
		repoPath(owner, repo)+"/releases/latest", nil, nil, normalizeRelease)
}

func (p *GiteaProviderRepository) CreateRelease(
	ctx context.Context,
	owner, repo string,
	input entities.ReleaseInput,
) (*entities.Release, error) {
	return shared.Fetch(ctx, p.client, http.MethodPost,
		repoPath(owner, repo)+"/releases", nil, input, normalizeRelease)
}

func (p *GiteaProviderRepository) UpdateRelease(
	ctx context.Context,
	owner, repo string,
	id int64,
	input entities.UpdateReleaseInput,
) (*entities.Release, error) {
	return shared.Fetch(ctx, p.client, http.MethodPatch, releasePath(owner, repo, id), nil, input, normalizeRelease)
}

func (p *GiteaProviderRepository) DeleteRelease(ctx context.Context, owner, repo string, id int64) error {
	return shared.DeleteIdempotent(ctx, p.client, releasePath(owner, repo, id), nil, nil)
}

// --- tags ---

func (p *GiteaProviderRepository) ListTags(
	ctx context.Context,
	owner, repo string,
	opts entities.ListOptions,
) ([]entities.Tag, error) {
	return shared.FetchList(ctx, p.client, http.MethodGet, repoPath(owner, repo)+"/tags", paginate(opts), nil, normalizeTag)
}

// CreateTag creates the tag in one call; a message makes it annotated.
func (p *GiteaProviderRepository) CreateTag(
	ctx context.Context,
	owner, repo string,
	input entities.CreateTagInput,
) (*entities.Tag, error) {
	body := map[string]string{
		"tag_name": input.Name,
		"target":   input.Target,
		"message":  input.Message,
	}
	return shared.Fetch(ctx, p.client, http.MethodPost, repoPath(owner, repo)+"/tags", nil, body, normalizeTag)
}

func (p *GiteaProviderRepository) DeleteTag(ctx context.Context, owner, repo, tag string) error {
	return shared.DeleteIdempotent(ctx, p.client,
		repoPath(owner, repo)+"/tags/"+httpclient.EscapePath(tag), nil, nil)
}
