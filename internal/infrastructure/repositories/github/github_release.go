package github

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

func (p *GitHubProviderRepository) ListReleases(
	ctx context.Context,
	owner, repo string,
	opts entities.ListOptions,
) ([]entities.Release, error) {
	return shared.FetchList(ctx, p.client, http.MethodGet,
		repoPath(owner, repo)+"/releases", paginate(opts), nil, normalizeRelease)
}

func (p *GitHubProviderRepository) GetRelease(
	ctx context.Context,
	owner, repo string,
	id int64,
) (*entities.Release, error) {
	return shared.Fetch(ctx, p.client, http.MethodGet, releasePath(owner, repo, id), nil, nil, normalizeRelease)
}

func (p *GitHubProviderRepository) GetLatestRelease(
	ctx context.Context,
	owner, repo string,
) (*entities.Release, error) {
	return shared.Fetch(ctx, p.client, http.MethodGet,
		repoPath(owner, repo)+"/releases/latest", nil, nil, normalizeRelease)
}

func (p *GitHubProviderRepository) CreateRelease(
	ctx context.Context,
	owner, repo string,
	input entities.ReleaseInput,
) (*entities.Release, error) {
	return shared.Fetch(ctx, p.client, http.MethodPost,
		repoPath(owner, repo)+"/releases", nil, input, normalizeRelease)
}

func (p *GitHubProviderRepository) UpdateRelease(
	ctx context.Context,
	owner, repo string,
	id int64,
	input entities.UpdateReleaseInput,
) (*entities.Release, error) {
	return shared.Fetch(ctx, p.client, http.MethodPatch, releasePath(owner, repo, id), nil, input, normalizeRelease)
}

func (p *GitHubProviderRepository) DeleteRelease(ctx context.Context, owner, repo string, id int64) error {
	return shared.DeleteIdempotent(ctx, p.client, releasePath(owner, repo, id), nil, nil)
}

// --- tags ---

func (p *GitHubProviderRepository) ListTags(
	ctx context.Context,
	owner, repo string,
	opts entities.ListOptions,
) ([]entities.Tag, error) {
	return shared.FetchList(ctx, p.client, http.MethodGet, repoPath(owner, repo)+"/tags", paginate(opts), nil, normalizeTag)
}

// CreateTag creates a lightweight tag, or an annotated tag object first when a
// message is given. Target may be a branch name or a commit SHA.
func (p *GitHubProviderRepository) CreateTag(
	ctx context.Context,
	owner, repo string,
	input entities.CreateTagInput,
) (*entities.Tag, error) {
	target, err := p.resolveSHA(ctx, owner, repo, input.Target)
	if err != nil {
		return nil, err
	}

	refTarget := target
	if input.Message != "" {
		var tagObject struct {
			SHA string `json:"sha"`
		}
		body := map[string]string{
			"tag":     input.Name,
			"message": input.Message,
			"object":  target,
			"type":    "commit",
		}
		if err = p.client.Post(ctx, repoPath(owner, repo)+"/git/tags", body, &tagObject); err != nil {
			return nil, err
		}
		refTarget = tagObject.SHA
	}

	ref, err := shared.Fetch(ctx, p.client, http.MethodPost, repoPath(owner, repo)+"/git/refs", nil,
		map[string]string{"ref": "refs/tags/" + input.Name, "sha": refTarget}, normalizeReference)
	if err != nil {
		return nil, err
	}
	return &entities.Tag{
		Name:      input.Name,
		CommitSHA: target,
		Message:   input.Message,
		Raw:       ref.Raw,
	}, nil
}

func (p *GitHubProviderRepository) DeleteTag(ctx context.Context, owner, repo, tag string) error {
	return shared.DeleteIdempotent(ctx, p.client,
		repoPath(owner, repo)+"/git/refs/tags/"+httpclient.EscapePath(tag), nil, missingRef)
}
