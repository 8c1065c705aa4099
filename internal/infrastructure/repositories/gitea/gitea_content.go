package gitea

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/gitbridge/internal/domain/entities"
	"github.com/rios0rios0/gitbridge/internal/infrastructure/httpclient"
	"github.com/rios0rios0/gitbridge/internal/infrastructure/repositories/shared"
)

const (
	operationCreate = "create"
	operationUpdate = "update"
	operationDelete = "delete"
)

var commitSHAPattern = regexp.MustCompile(`^[0-9a-f]{40}$`) //nolint:gochecknoglobals // compiled once

type refQuery struct {
	Ref string `url:"ref,omitempty"`
}

type commitQuery struct {
	SHA   string `url:"sha,omitempty"`
	Path  string `url:"path,omitempty"`
	Page  int    `url:"page,omitempty"`
	Limit int    `url:"limit,omitempty"`
}

// changeFileOperation is one entry of a multi-file change request.
type changeFileOperation struct {
	Operation string `json:"operation"`
	Path      string `json:"path"`
	Content   string `json:"content,omitempty"`
	SHA       string `json:"sha,omitempty"`
}

type changeFilesRequest struct {
	Branch  string                `json:"branch"`
	Message string                `json:"message"`
	Files   []changeFileOperation `json:"files"`
}

// --- branches ---

func branchPath(owner, repo, branch string) string {
	return repoPath(owner, repo) + "/branches/" + httpclient.EscapePath(branch)
}

func (p *GiteaProviderRepository) ListBranches(
	ctx context.Context,
	owner, repo string,
	opts entities.ListOptions,
) ([]entities.Branch, error) {
	return shared.FetchList(ctx, p.client, http.MethodGet,
		repoPath(owner, repo)+"/branches", paginate(opts), nil, normalizeBranch)
}

func (p *GiteaProviderRepository) GetBranch(
	ctx context.Context,
	owner, repo, branch string,
) (*entities.Branch, error) {
	return shared.Fetch(ctx, p.client, http.MethodGet, branchPath(owner, repo, branch), nil, nil, normalizeBranch)
}

// CreateBranch creates input.Name from a branch name, a commit SHA, or the default
// branch when From is empty.
func (p *GiteaProviderRepository) CreateBranch(
	ctx context.Context,
	owner, repo string,
	input entities.CreateBranchInput,
) (*entities.Branch, error) {
	body := map[string]string{"new_branch_name": input.Name}
	switch {
	case commitSHAPattern.MatchString(input.From):
		body["old_ref_name"] = input.From
	case input.From != "":
		body["old_branch_name"] = input.From
	}
	return shared.Fetch(ctx, p.client, http.MethodPost,
		repoPath(owner, repo)+"/branches", nil, body, normalizeBranch)
}

func (p *GiteaProviderRepository) DeleteBranch(ctx context.Context, owner, repo, branch string) error {
	return shared.DeleteIdempotent(ctx, p.client, branchPath(owner, repo, branch), nil, nil)
}

func (p *GiteaProviderRepository) CompareBranches(
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

// --- files ---

func contentsPath(owner, repo, path string) string {
	return repoPath(owner, repo) + "/contents/" + httpclient.EscapePath(path)
}

func (p *GiteaProviderRepository) getContents(
	ctx context.Context,
	owner, repo, path, ref string,
) (json.RawMessage, error) {
	var payload json.RawMessage
	if err := p.client.Get(ctx, contentsPath(owner, repo, path), refQuery{Ref: ref}, &payload); err != nil {
		return nil, err
	}
	return bytes.TrimSpace(payload), nil
}

func (p *GiteaProviderRepository) GetFile(
	ctx context.Context,
	owner, repo, path, ref string,
) (*entities.FileEntry, error) {
	payload, err := p.getContents(ctx, owner, repo, path, ref)
	if err != nil {
		return nil, err
	}
	if len(payload) > 0 && payload[0] == '[' {
		return nil, entities.NewInvalidInputError(p.DisplayName(), fmt.Errorf("%q is a directory", path))
	}
	file, err := normalizeFileEntry(payload)
	if err != nil {
		return nil, entities.NewDecodeError(p.DisplayName(), err)
	}
	return &file, nil
}

func (p *GiteaProviderRepository) ListDirectory(
	ctx context.Context,
	owner, repo, path, ref string,
) ([]entities.FileEntry, error) {
	payload, err := p.getContents(ctx, owner, repo, path, ref)
	if err != nil {
		return nil, err
	}
	if len(payload) > 0 && payload[0] == '{' {
		file, decodeErr := normalizeFileEntry(payload)
		if decodeErr != nil {
			return nil, entities.NewDecodeError(p.DisplayName(), decodeErr)
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

// CreateFile uses POST; Gitea reserves PUT for updates.
func (p *GiteaProviderRepository) CreateFile(
	ctx context.Context,
	owner, repo string,
	input entities.FileInput,
) (*entities.FileWrite, error) {
	return shared.Fetch(ctx, p.client, http.MethodPost,
		contentsPath(owner, repo, input.Path), nil, fileBody(input, true), normalizeFileWrite)
}

// UpdateFile replaces a file. Without input.SHA the current blob is looked up first.
func (p *GiteaProviderRepository) UpdateFile(
	ctx context.Context,
	owner, repo string,
	input entities.FileInput,
) (*entities.FileWrite, error) {
	if input.SHA == "" {
		current, err := p.GetFile(ctx, owner, repo, input.Path, input.Branch)
		if err != nil {
			return nil, err
		}
		input.SHA = current.SHA
	}
	return shared.Fetch(ctx, p.client, http.MethodPut,
		contentsPath(owner, repo, input.Path), nil, fileBody(input, true), normalizeFileWrite)
}

func (p *GiteaProviderRepository) DeleteFile(
	ctx context.Context,
	owner, repo string,
	input entities.FileInput,
) (*entities.FileWrite, error) {
	if input.SHA == "" {
		current, err := p.GetFile(ctx, owner, repo, input.Path, input.Branch)
		if err != nil {
			return nil, err
		}
		input.SHA = current.SHA
	}
	return shared.Fetch(ctx, p.client, http.MethodDelete,
		contentsPath(owner, repo, input.Path), nil, fileBody(input, false), normalizeFileWrite)
}

// --- commits ---

func (p *GiteaProviderRepository) ListCommits(
	ctx context.Context,
	owner, repo string,
	opts entities.CommitListOptions,
) ([]entities.Commit, error) {
	page := paginate(opts.ListOptions)
	query := commitQuery{SHA: opts.Ref, Path: opts.Path, Page: page.Page, Limit: page.Limit}
	return shared.FetchList(ctx, p.client, http.MethodGet, repoPath(owner, repo)+"/commits", query, nil, normalizeCommit)
}

func (p *GiteaProviderRepository) GetCommit(
	ctx context.Context,
	owner, repo, sha string,
) (*entities.Commit, error) {
	return shared.Fetch(ctx, p.client, http.MethodGet,
		repoPath(owner, repo)+"/git/commits/"+url.PathEscape(sha), nil, nil, normalizeCommit)
}

// CreateCommit applies input.Files on top of the branch head through the
// multi-file contents API, then re-reads the branch and reports a conflict when
// it does not point at the new commit. Pre-built trees are not available.
func (p *GiteaProviderRepository) CreateCommit(
	ctx context.Context,
	owner, repo string,
	input entities.CreateCommitInput,
) (*entities.Commit, error) {
	if input.Tree != "" {
		return nil, entities.NewNotSupportedError(p.DisplayName(), "creating a commit from a pre-built tree")
	}
	if len(input.Files) == 0 {
		return nil, entities.NewInvalidInputError(p.DisplayName(), errors.New("at least one file change is required"))
	}

	head, err := p.GetBranch(ctx, owner, repo, input.Branch)
	if err != nil {
		return nil, err
	}

	operations, err := p.fileOperations(ctx, owner, repo, head.CommitSHA, input.Files)
	if err != nil {
		return nil, err
	}

	request := changeFilesRequest{Branch: input.Branch, Message: input.Message, Files: operations}
	commit, err := shared.Fetch(ctx, p.client, http.MethodPost,
		repoPath(owner, repo)+"/contents", nil, request, normalizeFilesCommit)
	if err != nil {
		return nil, err
	}
	if len(commit.Parents) == 0 {
		commit.Parents = []string{head.CommitSHA}
	}

	moved, err := p.GetBranch(ctx, owner, repo, input.Branch)
	if err != nil {
		return nil, err
	}
	if moved.CommitSHA != commit.SHA {
		logger.WithFields(logger.Fields{
			"provider": p.DisplayName(),
			"branch":   input.Branch,
			"commit":   commit.SHA,
			"head":     moved.CommitSHA,
		}).Warn("branch head does not match the created commit")
		return nil, entities.NewConflictError(p.DisplayName(),
			fmt.Sprintf("branch %q points at %s instead of %s", input.Branch, moved.CommitSHA, commit.SHA))
	}
	return commit, nil
}

// fileOperations decides create, update or delete per path by looking up the blob
// each path currently has at ref.
func (p *GiteaProviderRepository) fileOperations(
	ctx context.Context,
	owner, repo, ref string,
	changes []entities.FileChange,
) ([]changeFileOperation, error) {
	operations := make([]changeFileOperation, 0, len(changes))
	for _, change := range changes {
		current, err := p.GetFile(ctx, owner, repo, change.Path, ref)
		missing := entities.IsErrorCode(err, entities.ErrorCodeNotFound)
		if err != nil && !missing {
			return nil, err
		}

		operation := changeFileOperation{Path: change.Path}
		switch {
		case change.Delete && missing:
			return nil, entities.NewInvalidInputError(p.DisplayName(),
				fmt.Errorf("cannot delete %q, it does not exist", change.Path))
		case change.Delete:
			operation.Operation = operationDelete
			operation.SHA = current.SHA
		case missing:
			operation.Operation = operationCreate
			operation.Content = shared.EncodeContent(change.Content)
		default:
			operation.Operation = operationUpdate
			operation.SHA = current.SHA
			operation.Content = shared.EncodeContent(change.Content)
		}
		operations = append(operations, operation)
	}
	return operations, nil
}
