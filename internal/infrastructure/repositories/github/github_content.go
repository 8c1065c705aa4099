package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/gitbridge/internal/domain/entities"
	"github.com/rios0rios0/gitbridge/internal/infrastructure/httpclient"
	"github.com/rios0rios0/gitbridge/internal/infrastructure/repositories/shared"
)

const (
	blobMode = "100644"
	blobType = "blob"
)

var commitSHAPattern = regexp.MustCompile(`^[0-9a-f]{40}$`) //nolint:gochecknoglobals // compiled once

type refQuery struct {
	Ref string `url:"ref,omitempty"`
}

type commitQuery struct {
	SHA     string `url:"sha,omitempty"`
	Path    string `url:"path,omitempty"`
	Page    int    `url:"page,omitempty"`
	PerPage int    `url:"per_page,omitempty"`
}

// missingRef recognizes GitHub's 422 answer for refs that no longer exist.
func missingRef(apiErr *entities.APIError) bool {
	return apiErr.Code == entities.ErrorCodeValidation && strings.Contains(apiErr.Message, "does not exist")
}

// --- branches ---

func (p *GitHubProviderRepository) ListBranches(
	ctx context.Context,
	owner, repo string,
	opts entities.ListOptions,
) ([]entities.Branch, error) {
	return shared.FetchList(ctx, p.client, http.MethodGet,
		repoPath(owner, repo)+"/branches", paginate(opts), nil, normalizeBranch)
}

func (p *GitHubProviderRepository) GetBranch(
	ctx context.Context,
	owner, repo, branch string,
) (*entities.Branch, error) {
	return shared.Fetch(ctx, p.client, http.MethodGet,
		repoPath(owner, repo)+"/branches/"+httpclient.EscapePath(branch), nil, nil, normalizeBranch)
}

// CreateBranch creates a ref pointing at input.From, which may be a branch name, a
// commit SHA or empty for the default branch.
func (p *GitHubProviderRepository) CreateBranch(
	ctx context.Context,
	owner, repo string,
	input entities.CreateBranchInput,
) (*entities.Branch, error) {
	sha, err := p.resolveSHA(ctx, owner, repo, input.From)
	if err != nil {
		return nil, err
	}
	body := map[string]string{
		"ref": "refs/heads/" + input.Name,
		"sha": sha,
	}
	return shared.Fetch(ctx, p.client, http.MethodPost,
		repoPath(owner, repo)+"/git/refs", nil, body, normalizeReference)
}

func (p *GitHubProviderRepository) DeleteBranch(ctx context.Context, owner, repo, branch string) error {
	return shared.DeleteIdempotent(ctx, p.client,
		repoPath(owner, repo)+"/git/refs/heads/"+httpclient.EscapePath(branch), nil, missingRef)
}

func (p *GitHubProviderRepository) CompareBranches(
	ctx context.Context,
	owner, repo, base, head string,
) (*entities.Comparison, error) {
	path := fmt.Sprintf("%s/compare/%s...%s", repoPath(owner, repo), url.PathEscape(base), url.PathEscape(head))
	comparison, err := shared.Fetch(ctx, p.client, http.MethodGet, path, nil, nil, normalizeComparison)
	if err != nil {
		return nil, err
	}
	comparison.Base = base
	comparison.Head = head
	return comparison, nil
}

func (p *GitHubProviderRepository) resolveSHA(ctx context.Context, owner, repo, ref string) (string, error) {
	if commitSHAPattern.MatchString(ref) {
		return ref, nil
	}
	if ref == "" {
		repository, err := p.GetRepository(ctx, owner, repo)
		if err != nil {
			return "", err
		}
		ref = repository.DefaultBranch
	}
	head, err := shared.Fetch(ctx, p.client, http.MethodGet,
		repoPath(owner, repo)+"/git/ref/heads/"+httpclient.EscapePath(ref), nil, nil, normalizeReference)
	if err != nil {
		return "", err
	}
	return head.CommitSHA, nil
}

// --- files ---

func contentsPath(owner, repo, path string) string {
	return repoPath(owner, repo) + "/contents/" + httpclient.EscapePath(path)
}

func (p *GitHubProviderRepository) GetFile(
	ctx context.Context,
	owner, repo, path, ref string,
) (*entities.FileEntry, error) {
	var payload json.RawMessage
	if err := p.client.Get(ctx, contentsPath(owner, repo, path), refQuery{Ref: ref}, &payload); err != nil {
		return nil, err
	}
	if trimmed := bytes.TrimSpace(payload); len(trimmed) > 0 && trimmed[0] == '[' {
		return nil, entities.NewInvalidInputError(p.DisplayName(), fmt.Errorf("%q is a directory", path))
	}
	file, err := normalizeFileEntry(payload)
	if err != nil {
		return nil, entities.NewDecodeError(p.DisplayName(), err)
	}
	return &file, nil
}

func (p *GitHubProviderRepository) ListDirectory(
	ctx context.Context,
	owner, repo, path, ref string,
) ([]entities.FileEntry, error) {
	var payload json.RawMessage
	if err := p.client.Get(ctx, contentsPath(owner, repo, path), refQuery{Ref: ref}, &payload); err != nil {
		return nil, err
	}
	if trimmed := bytes.TrimSpace(payload); len(trimmed) > 0 && trimmed[0] == '{' {
		file, err := normalizeFileEntry(payload)
		if err != nil {
			return nil, entities.NewDecodeError(p.DisplayName(), err)
		}
		return []entities.FileEntry{file}, nil
	}
	entries, err := shared.MapList(payload, normalizeFileEntry)
	if err != nil {
		return nil, entities.NewDecodeError(p.DisplayName(), err)
	}
	return entries, nil
}

func fileBody(input entities.FileInput, withContent bool) map[string]string {
	body := map[string]string{"message": input.Message}
	if withContent {
		body["content"] = shared.EncodeContent(input.Content)
	}
	if input.Branch != "" {
		body["branch"] = input.Branch
	}
	if input.SHA != "" {
		body["sha"] = input.SHA
	}
	return body
}

func (p *GitHubProviderRepository) CreateFile(
	ctx context.Context,
	owner, repo string,
	input entities.FileInput,
) (*entities.FileWrite, error) {
	return shared.Fetch(ctx, p.client, http.MethodPut,
		contentsPath(owner, repo, input.Path), nil, fileBody(input, true), normalizeFileWrite)
}

// UpdateFile replaces a file; input.SHA must name the blob being replaced.
func (p *GitHubProviderRepository) UpdateFile(
	ctx context.Context,
	owner, repo string,
	input entities.FileInput,
) (*entities.FileWrite, error) {
	return shared.Fetch(ctx, p.client, http.MethodPut,
		contentsPath(owner, repo, input.Path), nil, fileBody(input, true), normalizeFileWrite)
}

func (p *GitHubProviderRepository) DeleteFile(
	ctx context.Context,
	owner, repo string,
	input entities.FileInput,
) (*entities.FileWrite, error) {
	return shared.Fetch(ctx, p.client, http.MethodDelete,
		contentsPath(owner, repo, input.Path), nil, fileBody(input, false), normalizeFileWrite)
}

// --- commits ---

func (p *GitHubProviderRepository) ListCommits(
	ctx context.Context,
	owner, repo string,
	opts entities.CommitListOptions,
) ([]entities.Commit, error) {
	page := paginate(opts.ListOptions)
	query := commitQuery{SHA: opts.Ref, Path: opts.Path, Page: page.Page, PerPage: page.PerPage}
	return shared.FetchList(ctx, p.client, http.MethodGet, repoPath(owner, repo)+"/commits", query, nil, normalizeCommit)
}

func (p *GitHubProviderRepository) GetCommit(
	ctx context.Context,
	owner, repo, sha string,
) (*entities.Commit, error) {
	return shared.Fetch(ctx, p.client, http.MethodGet,
		repoPath(owner, repo)+"/commits/"+url.PathEscape(sha), nil, nil, normalizeCommit)
}

// CreateCommit runs three dependent calls: read the branch head, create the commit
// object with the head as parent, then move the branch. A failure in the last step
// leaves an unreferenced commit behind and is returned as is.
func (p *GitHubProviderRepository) CreateCommit(
	ctx context.Context,
	owner, repo string,
	input entities.CreateCommitInput,
) (*entities.Commit, error) {
	base := repoPath(owner, repo)
	refPath := "/git/refs/heads/" + httpclient.EscapePath(input.Branch)

	head, err := shared.Fetch(ctx, p.client, http.MethodGet,
		base+"/git/ref/heads/"+httpclient.EscapePath(input.Branch), nil, nil, normalizeReference)
	if err != nil {
		return nil, err
	}

	tree := input.Tree
	if tree == "" {
		tree, err = p.buildTree(ctx, base, head.CommitSHA, input.Files)
		if err != nil {
			return nil, err
		}
	}

	commitBody := map[string]any{
		"message": input.Message,
		"tree":    tree,
		"parents": []string{head.CommitSHA},
	}
	commit, err := shared.Fetch(ctx, p.client, http.MethodPost, base+"/git/commits", nil, commitBody, normalizeCommit)
	if err != nil {
		return nil, err
	}

	if err = p.client.Patch(ctx, base+refPath, map[string]any{"sha": commit.SHA, "force": false}, nil); err != nil {
		logger.WithFields(logger.Fields{
			"provider": p.DisplayName(),
			"branch":   input.Branch,
			"commit":   commit.SHA,
		}).Warn("commit was created but the branch was not moved")
		return nil, err
	}
	return commit, nil
}

// buildTree returns the tree of headSHA when there are no changes, otherwise a new
// tree with the changes applied on top of it.
func (p *GitHubProviderRepository) buildTree(
	ctx context.Context,
	base, headSHA string,
	files []entities.FileChange,
) (string, error) {
	headCommit, err := shared.Fetch(ctx, p.client, http.MethodGet,
		base+"/git/commits/"+url.PathEscape(headSHA), nil, nil, normalizeCommit)
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		return headCommit.TreeSHA, nil
	}

	entries := make([]map[string]any, 0, len(files))
	for _, change := range files {
		entry := map[string]any{
			"path": change.Path,
			"mode": blobMode,
			"type": blobType,
		}
		if change.Delete {
			entry["sha"] = nil
		} else {
			entry["content"] = change.Content
		}
		entries = append(entries, entry)
	}

	var created struct {
		SHA string `json:"sha"`
	}
	body := map[string]any{"base_tree": headCommit.TreeSHA, "tree": entries}
	if err = p.client.Post(ctx, base+"/git/trees", body, &created); err != nil {
		return "", err
	}
	return created.SHA, nil
}
