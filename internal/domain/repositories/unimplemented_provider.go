package repositories

import (
	"context"

	"github.com/rios0rios0/gitbridge/internal/domain/entities"
)

// UnimplementedProvider satisfies ProviderRepository with methods that all fail with
// a NOT_IMPLEMENTED error. Adapters embed it and override what their backend supports.
type UnimplementedProvider struct {
	Provider string
}

var _ ProviderRepository = UnimplementedProvider{}

func (u UnimplementedProvider) fail(operation string) *entities.APIError {
	provider := u.Provider
	if provider == "" {
		provider = "provider"
	}
	return entities.NewNotImplementedError(provider, operation)
}

func (u UnimplementedProvider) Name() string                            { return u.Provider }
func (u UnimplementedProvider) DisplayName() string                     { return u.Provider }
func (u UnimplementedProvider) CloneURL(repo entities.Repository) string { return repo.CloneURL }

func (u UnimplementedProvider) ListRepositories(
	context.Context, string, entities.ListOptions,
) ([]entities.Repository, error) {
	return nil, u.fail("ListRepositories")
}

func (u UnimplementedProvider) GetRepository(context.Context, string, string) (*entities.Repository, error) {
	return nil, u.fail("GetRepository")
}

func (u UnimplementedProvider) CreateRepository(
	context.Context, entities.CreateRepositoryInput,
) (*entities.Repository, error) {
	return nil, u.fail("CreateRepository")
}

func (u UnimplementedProvider) UpdateRepository(
	context.Context, string, string, entities.UpdateRepositoryInput,
) (*entities.Repository, error) {
	return nil, u.fail("UpdateRepository")
}

func (u UnimplementedProvider) DeleteRepository(context.Context, string, string) error {
	return u.fail("DeleteRepository")
}

func (u UnimplementedProvider) ForkRepository(
	context.Context, string, string, entities.ForkInput,
) (*entities.Repository, error) {
	return nil, u.fail("ForkRepository")
}

func (u UnimplementedProvider) SearchRepositories(
	context.Context, string, entities.ListOptions,
) ([]entities.Repository, error) {
	return nil, u.fail("SearchRepositories")
}

func (u UnimplementedProvider) ArchiveRepository(context.Context, string, string) (*entities.Repository, error) {
	return nil, u.fail("ArchiveRepository")
}

func (u UnimplementedProvider) TransferRepository(
	context.Context, string, string, string,
) (*entities.Repository, error) {
	return nil, u.fail("TransferRepository")
}

func (u UnimplementedProvider) ListBranches(
	context.Context, string, string, entities.ListOptions,
) ([]entities.Branch, error) {
	return nil, u.fail("ListBranches")
}

func (u UnimplementedProvider) GetBranch(context.Context, string, string, string) (*entities.Branch, error) {
	return nil, u.fail("GetBranch")
}

func (u UnimplementedProvider) CreateBranch(
	context.Context, string, string, entities.CreateBranchInput,
) (*entities.Branch, error) {
	return nil, u.fail("CreateBranch")
}

func (u UnimplementedProvider) DeleteBranch(context.Context, string, string, string) error {
	return u.fail("DeleteBranch")
}

func (u UnimplementedProvider) CompareBranches(
	context.Context, string, string, string, string,
) (*entities.Comparison, error) {
	return nil, u.fail("CompareBranches")
}

func (u UnimplementedProvider) GetFile(
	context.Context, string, string, string, string,
) (*entities.FileEntry, error) {
	return nil, u.fail("GetFile")
}

func (u UnimplementedProvider) ListDirectory(
	context.Context, string, string, string, string,
) ([]entities.FileEntry, error) {
	return nil, u.fail("ListDirectory")
}

func (u UnimplementedProvider) CreateFile(
	context.Context, string, string, entities.FileInput,
) (*entities.FileWrite, error) {
	return nil, u.fail("CreateFile")
}

func (u UnimplementedProvider) UpdateFile(
	context.Context, string, string, entities.FileInput,
) (*entities.FileWrite, error) {
	return nil, u.fail("UpdateFile")
}

func (u UnimplementedProvider) DeleteFile(
	context.Context, string, string, entities.FileInput,
) (*entities.FileWrite, error) {
	return nil, u.fail("DeleteFile")
}

func (u UnimplementedProvider) ListCommits(
	context.Context, string, string, entities.CommitListOptions,
) ([]entities.Commit, error) {
	return nil, u.fail("ListCommits")
}

func (u UnimplementedProvider) GetCommit(context.Context, string, string, string) (*entities.Commit, error) {
	return nil, u.fail("GetCommit")
}

func (u UnimplementedProvider) CreateCommit(
	context.Context, string, string, entities.CreateCommitInput,
) (*entities.Commit, error) {
	return nil, u.fail("CreateCommit")
}

func (u UnimplementedProvider) ListIssues(
	context.Context, string, string, entities.IssueListOptions,
) ([]entities.Issue, error) {
	return nil, u.fail("ListIssues")
}

func (u UnimplementedProvider) GetIssue(context.Context, string, string, int) (*entities.Issue, error) {
	return nil, u.fail("GetIssue")
}

func (u UnimplementedProvider) CreateIssue(
	context.Context, string, string, entities.CreateIssueInput,
) (*entities.Issue, error) {
	return nil, u.fail("CreateIssue")
}

func (u UnimplementedProvider) UpdateIssue(
	context.Context, string, string, int, entities.UpdateIssueInput,
) (*entities.Issue, error) {
	return nil, u.fail("UpdateIssue")
}

func (u UnimplementedProvider) CreateIssueComment(
	context.Context, string, string, int, string,
) (*entities.Comment, error) {
	return nil, u.fail("CreateIssueComment")
}

func (u UnimplementedProvider) ListIssueComments(
	context.Context, string, string, int, entities.ListOptions,
) ([]entities.Comment, error) {
	return nil, u.fail("ListIssueComments")
}

func (u UnimplementedProvider) SearchIssues(
	context.Context, string, entities.ListOptions,
) ([]entities.Issue, error) {
	return nil, u.fail("SearchIssues")
}

func (u UnimplementedProvider) ListPullRequests(
	context.Context, string, string, entities.PullRequestListOptions,
) ([]entities.PullRequest, error) {
	return nil, u.fail("ListPullRequests")
}

func (u UnimplementedProvider) GetPullRequest(
	context.Context, string, string, int,
) (*entities.PullRequest, error) {
	return nil, u.fail("GetPullRequest")
}

func (u UnimplementedProvider) CreatePullRequest(
	context.Context, string, string, entities.CreatePullRequestInput,
) (*entities.PullRequest, error) {
	return nil, u.fail("CreatePullRequest")
}

func (u UnimplementedProvider) UpdatePullRequest(
	context.Context, string, string, int, entities.UpdatePullRequestInput,
) (*entities.PullRequest, error) {
	return nil, u.fail("UpdatePullRequest")
}

func (u UnimplementedProvider) MergePullRequest(
	context.Context, string, string, int, entities.MergeInput,
) (*entities.MergeResult, error) {
	return nil, u.fail("MergePullRequest")
}

func (u UnimplementedProvider) ListReleases(
	context.Context, string, string, entities.ListOptions,
) ([]entities.Release, error) {
	return nil, u.fail("ListReleases")
}

func (u UnimplementedProvider) GetRelease(context.Context, string, string, int64) (*entities.Release, error) {
	return nil, u.fail("GetRelease")
}

func (u UnimplementedProvider) GetLatestRelease(context.Context, string, string) (*entities.Release, error) {
	return nil, u.fail("GetLatestRelease")
}

func (u UnimplementedProvider) CreateRelease(
	context.Context, string, string, entities.ReleaseInput,
) (*entities.Release, error) {
	return nil, u.fail("CreateRelease")
}

func (u UnimplementedProvider) UpdateRelease(
	context.Context, string, string, int64, entities.UpdateReleaseInput,
) (*entities.Release, error) {
	return nil, u.fail("UpdateRelease")
}

func (u UnimplementedProvider) DeleteRelease(context.Context, string, string, int64) error {
	return u.fail("DeleteRelease")
}

func (u UnimplementedProvider) ListTags(
	context.Context, string, string, entities.ListOptions,
) ([]entities.Tag, error) {
	return nil, u.fail("ListTags")
}

func (u UnimplementedProvider) CreateTag(
	context.Context, string, string, entities.CreateTagInput,
) (*entities.Tag, error) {
	return nil, u.fail("CreateTag")
}

func (u UnimplementedProvider) DeleteTag(context.Context, string, string, string) error {
	return u.fail("DeleteTag")
}

func (u UnimplementedProvider) GetUser(context.Context, string) (*entities.User, error) {
	return nil, u.fail("GetUser")
}

func (u UnimplementedProvider) GetCurrentUser(context.Context) (*entities.User, error) {
	return nil, u.fail("GetCurrentUser")
}

func (u UnimplementedProvider) ListUsers(context.Context, entities.ListOptions) ([]entities.User, error) {
	return nil, u.fail("ListUsers")
}

func (u UnimplementedProvider) GetUserOrganizations(context.Context, string) ([]entities.Organization, error) {
	return nil, u.fail("GetUserOrganizations")
}

func (u UnimplementedProvider) GetUserRepositories(
	context.Context, string, entities.ListOptions,
) ([]entities.Repository, error) {
	return nil, u.fail("GetUserRepositories")
}

func (u UnimplementedProvider) GetOrganization(context.Context, string) (*entities.Organization, error) {
	return nil, u.fail("GetOrganization")
}

func (u UnimplementedProvider) ListOrganizations(
	context.Context, entities.ListOptions,
) ([]entities.Organization, error) {
	return nil, u.fail("ListOrganizations")
}

func (u UnimplementedProvider) ListWebhooks(
	context.Context, string, string, entities.ListOptions,
) ([]entities.Webhook, error) {
	return nil, u.fail("ListWebhooks")
}

func (u UnimplementedProvider) GetWebhook(context.Context, string, string, int64) (*entities.Webhook, error) {
	return nil, u.fail("GetWebhook")
}

func (u UnimplementedProvider) CreateWebhook(
	context.Context, string, string, entities.WebhookInput,
) (*entities.Webhook, error) {
	return nil, u.fail("CreateWebhook")
}

func (u UnimplementedProvider) UpdateWebhook(
	context.Context, string, string, int64, entities.WebhookInput,
) (*entities.Webhook, error) {
	return nil, u.fail("UpdateWebhook")
}

func (u UnimplementedProvider) DeleteWebhook(context.Context, string, string, int64) error {
	return u.fail("DeleteWebhook")
}

func (u UnimplementedProvider) ListWorkflows(
	context.Context, string, string, entities.ListOptions,
) ([]entities.Workflow, error) {
	return nil, u.fail("ListWorkflows")
}

func (u UnimplementedProvider) ListWorkflowRuns(
	context.Context, string, string, entities.WorkflowRunListOptions,
) ([]entities.WorkflowRun, error) {
	return nil, u.fail("ListWorkflowRuns")
}

func (u UnimplementedProvider) TriggerWorkflow(
	context.Context, string, string, string, entities.TriggerWorkflowInput,
) error {
	return u.fail("TriggerWorkflow")
}
