package repositories

import (
	"context"

	"github.com/rios0rios0/gitbridge/internal/domain/entities"
)

// RepositoryOperations manages repositories themselves.
type RepositoryOperations interface {
	// ListRepositories lists repositories of an organization or user. An empty owner
	// lists the repositories of the authenticated account.
	ListRepositories(ctx context.Context, owner string, opts entities.ListOptions) ([]entities.Repository, error)
	GetRepository(ctx context.Context, owner, repo string) (*entities.Repository, error)
	CreateRepository(ctx context.Context, input entities.CreateRepositoryInput) (*entities.Repository, error)
	UpdateRepository(
		ctx context.Context, owner, repo string, input entities.UpdateRepositoryInput,
	) (*entities.Repository, error)
	DeleteRepository(ctx context.Context, owner, repo string) error
	ForkRepository(ctx context.Context, owner, repo string, input entities.ForkInput) (*entities.Repository, error)
	SearchRepositories(ctx context.Context, query string, opts entities.ListOptions) ([]entities.Repository, error)
	ArchiveRepository(ctx context.Context, owner, repo string) (*entities.Repository, error)
	TransferRepository(ctx context.Context, owner, repo, newOwner string) (*entities.Repository, error)
}

// BranchOperations manages branches.
type BranchOperations interface {
	ListBranches(ctx context.Context, owner, repo string, opts entities.ListOptions) ([]entities.Branch, error)
	GetBranch(ctx context.Context, owner, repo, branch string) (*entities.Branch, error)
	CreateBranch(ctx context.Context, owner, repo string, input entities.CreateBranchInput) (*entities.Branch, error)
	DeleteBranch(ctx context.Context, owner, repo, branch string) error
	CompareBranches(ctx context.Context, owner, repo, base, head string) (*entities.Comparison, error)
}

// FileOperations reads and writes single files through the contents API.
type FileOperations interface {
	GetFile(ctx context.Context, owner, repo, path, ref string) (*entities.FileEntry, error)
	ListDirectory(ctx context.Context, owner, repo, path, ref string) ([]entities.FileEntry, error)
	CreateFile(ctx context.Context, owner, repo string, input entities.FileInput) (*entities.FileWrite, error)
	UpdateFile(ctx context.Context, owner, repo string, input entities.FileInput) (*entities.FileWrite, error)
	DeleteFile(ctx context.Context, owner, repo string, input entities.FileInput) (*entities.FileWrite, error)
}

// CommitOperations reads and creates commits.
type CommitOperations interface {
	ListCommits(ctx context.Context, owner, repo string, opts entities.CommitListOptions) ([]entities.Commit, error)
	GetCommit(ctx context.Context, owner, repo, sha string) (*entities.Commit, error)
	// CreateCommit resolves the branch head, creates a commit on top of it and moves
	// the branch. The steps are not atomic and nothing is rolled back.
	CreateCommit(ctx context.Context, owner, repo string, input entities.CreateCommitInput) (*entities.Commit, error)
}

// IssueOperations manages issues and their comments.
type IssueOperations interface {
	ListIssues(ctx context.Context, owner, repo string, opts entities.IssueListOptions) ([]entities.Issue, error)
	GetIssue(ctx context.Context, owner, repo string, number int) (*entities.Issue, error)
	CreateIssue(ctx context.Context, owner, repo string, input entities.CreateIssueInput) (*entities.Issue, error)
	UpdateIssue(
		ctx context.Context, owner, repo string, number int, input entities.UpdateIssueInput,
	) (*entities.Issue, error)
	CreateIssueComment(ctx context.Context, owner, repo string, number int, body string) (*entities.Comment, error)
	ListIssueComments(
		ctx context.Context, owner, repo string, number int, opts entities.ListOptions,
	) ([]entities.Comment, error)
	SearchIssues(ctx context.Context, query string, opts entities.ListOptions) ([]entities.Issue, error)
}

// PullRequestOperations manages pull requests.
type PullRequestOperations interface {
	ListPullRequests(
		ctx context.Context, owner, repo string, opts entities.PullRequestListOptions,
	) ([]entities.PullRequest, error)
	GetPullRequest(ctx context.Context, owner, repo string, number int) (*entities.PullRequest, error)
	CreatePullRequest(
		ctx context.Context, owner, repo string, input entities.CreatePullRequestInput,
	) (*entities.PullRequest, error)
	UpdatePullRequest(
		ctx context.Context, owner, repo string, number int, input entities.UpdatePullRequestInput,
	) (*entities.PullRequest, error)
	MergePullRequest(
		ctx context.Context, owner, repo string, number int, input entities.MergeInput,
	) (*entities.MergeResult, error)
}

// ReleaseOperations manages releases and tags.
type ReleaseOperations interface {
	ListReleases(ctx context.Context, owner, repo string, opts entities.ListOptions) ([]entities.Release, error)
	GetRelease(ctx context.Context, owner, repo string, id int64) (*entities.Release, error)
	GetLatestRelease(ctx context.Context, owner, repo string) (*entities.Release, error)
	CreateRelease(ctx context.Context, owner, repo string, input entities.ReleaseInput) (*entities.Release, error)
	UpdateRelease(
		ctx context.Context, owner, repo string, id int64, input entities.UpdateReleaseInput,
	) (*entities.Release, error)
	DeleteRelease(ctx context.Context, owner, repo string, id int64) error
	ListTags(ctx context.Context, owner, repo string, opts entities.ListOptions) ([]entities.Tag, error)
	CreateTag(ctx context.Context, owner, repo string, input entities.CreateTagInput) (*entities.Tag, error)
	DeleteTag(ctx context.Context, owner, repo, tag string) error
}

// AccountOperations reads users and organizations. ListUsers, GetCurrentUser,
// GetUserOrganizations and GetUserRepositories never fail: on a backend error they
// return a single placeholder whose Raw reports IsMock.
type AccountOperations interface {
	GetUser(ctx context.Context, username string) (*entities.User, error)
	GetCurrentUser(ctx context.Context) (*entities.User, error)
	ListUsers(ctx context.Context, opts entities.ListOptions) ([]entities.User, error)
	GetUserOrganizations(ctx context.Context, username string) ([]entities.Organization, error)
	GetUserRepositories(
		ctx context.Context, username string, opts entities.ListOptions,
	) ([]entities.Repository, error)
	GetOrganization(ctx context.Context, org string) (*entities.Organization, error)
	ListOrganizations(ctx context.Context, opts entities.ListOptions) ([]entities.Organization, error)
}

// WebhookOperations manages repository webhooks.
type WebhookOperations interface {
	ListWebhooks(ctx context.Context, owner, repo string, opts entities.ListOptions) ([]entities.Webhook, error)
	GetWebhook(ctx context.Context, owner, repo string, id int64) (*entities.Webhook, error)
	CreateWebhook(ctx context.Context, owner, repo string, input entities.WebhookInput) (*entities.Webhook, error)
	UpdateWebhook(
		ctx context.Context, owner, repo string, id int64, input entities.WebhookInput,
	) (*entities.Webhook, error)
	DeleteWebhook(ctx context.Context, owner, repo string, id int64) error
}

// WorkflowOperations drives CI workflows.
type WorkflowOperations interface {
	ListWorkflows(ctx context.Context, owner, repo string, opts entities.ListOptions) ([]entities.Workflow, error)
	ListWorkflowRuns(
		ctx context.Context, owner, repo string, opts entities.WorkflowRunListOptions,
	) ([]entities.WorkflowRun, error)
	TriggerWorkflow(ctx context.Context, owner, repo, workflowID string, input entities.TriggerWorkflowInput) error
}

// ProviderRepository abstracts a Git hosting backend (GitHub, Gitea, ...).
// Every method returns *entities.APIError on failure.
type ProviderRepository interface {
	// Name is the configured backend name, used for registry lookups.
	Name() string
	// DisplayName prefixes every error message.
	DisplayName() string
	// CloneURL returns an HTTPS clone URL with embedded credentials.
	CloneURL(repo entities.Repository) string

	RepositoryOperations
	BranchOperations
	FileOperations
	CommitOperations
	IssueOperations
	PullRequestOperations
	ReleaseOperations
	AccountOperations
	WebhookOperations
	WorkflowOperations
}
