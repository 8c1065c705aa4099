//go:build integration || unit || test

// Package repositorydoubles provides test doubles (spies, stubs, dummies) for
// repository interfaces. These are hand-crafted implementations, no mock frameworks.
package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"sync"

	"github.com/rios0rios0/gitbridge/internal/domain/entities"
	"github.com/rios0rios0/gitbridge/internal/domain/repositories"
	"github.com/rios0rios0/gitbridge/test/domain/entitybuilders"
)

// SpyProviderRepository implements repositories.ProviderRepository as a configurable spy.
// Operations without a configured response fail with NOT_IMPLEMENTED through the
// embedded UnimplementedProvider.
type SpyProviderRepository struct {
	repositories.UnimplementedProvider

	mu sync.Mutex

	// --- GetRepository ---
	Repository    *entities.Repository
	GetRepoErr    error
	RequestedRepo []string

	// --- ListTags ---
	Tags       []entities.Tag
	ListTagErr error

	// --- CreateBranch ---
	CreatedBranch   *entities.Branch
	CreateBranchErr error
	BranchInputs    []entities.CreateBranchInput

	// --- CreateCommit ---
	CreatedCommit   *entities.Commit
	CreateCommitErr error
	CommitInputs    []entities.CreateCommitInput

	// --- CreateFile ---
	CreateFileErrs map[string]error // path -> error
	FileInputs     []entities.FileInput

	// --- DeleteBranch ---
	DeleteBranchErr error
	DeletedBranches []string

	// --- CreateIssue ---
	CreatedIssue *entities.Issue
	IssueInputs  []entities.CreateIssueInput

	// --- UpdateRelease ---
	UpdatedRelease *entities.Release
	ReleaseUpdates []entities.UpdateReleaseInput

	// --- GetUserOrganizations ---
	Organizations []entities.Organization
	OrgsErr       error

	// --- ListRepositories ---
	Repositories   []entities.Repository
	ListReposErr   error
	ListReposOpts  []entities.ListOptions
	ListReposOwner []string
}

var _ repositories.ProviderRepository = (*SpyProviderRepository)(nil)

// NewSpyProviderRepository creates a spy named name.
func NewSpyProviderRepository(name string) *SpyProviderRepository {
	return &SpyProviderRepository{
		UnimplementedProvider: repositories.UnimplementedProvider{Provider: name},
	}
}

func (p *SpyProviderRepository) GetRepository(
	_ context.Context, owner, repo string,
) (*entities.Repository, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.RequestedRepo = append(p.RequestedRepo, owner+"/"+repo)
	if p.GetRepoErr != nil {
		return nil, p.GetRepoErr
	}
	if p.Repository != nil {
		return p.Repository, nil
	}
	repository := entitybuilders.NewRepositoryBuilder().WithOwner(owner).WithName(repo).BuildRepository()
	return &repository, nil
}

func (p *SpyProviderRepository) ListRepositories(
	_ context.Context, owner string, opts entities.ListOptions,
) ([]entities.Repository, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ListReposOwner = append(p.ListReposOwner, owner)
	p.ListReposOpts = append(p.ListReposOpts, opts)
	return p.Repositories, p.ListReposErr
}

func (p *SpyProviderRepository) ListTags(
	_ context.Context, _, _ string, _ entities.ListOptions,
) ([]entities.Tag, error) {
	if p.ListTagErr != nil {
		return nil, p.ListTagErr
	}
	tags := make([]entities.Tag, len(p.Tags))
	copy(tags, p.Tags)
	return tags, nil
}

func (p *SpyProviderRepository) CreateBranch(
	_ context.Context, _, _ string, input entities.CreateBranchInput,
) (*entities.Branch, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.BranchInputs = append(p.BranchInputs, input)
	if p.CreateBranchErr != nil {
		return nil, p.CreateBranchErr
	}
	if p.CreatedBranch != nil {
		return p.CreatedBranch, nil
	}
	return &entities.Branch{Name: input.Name}, nil
}

func (p *SpyProviderRepository) DeleteBranch(_ context.Context, _, _, branch string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.DeletedBranches = append(p.DeletedBranches, branch)
	return p.DeleteBranchErr
}

func (p *SpyProviderRepository) CreateCommit(
	_ context.Context, _, _ string, input entities.CreateCommitInput,
) (*entities.Commit, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.CommitInputs = append(p.CommitInputs, input)
	if p.CreateCommitErr != nil {
		return nil, p.CreateCommitErr
	}
	if p.CreatedCommit != nil {
		return p.CreatedCommit, nil
	}
	return &entities.Commit{SHA: "0000000000000000000000000000000000000001", Message: input.Message}, nil
}

func (p *SpyProviderRepository) CreateFile(
	_ context.Context, _, _ string, input entities.FileInput,
) (*entities.FileWrite, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.FileInputs = append(p.FileInputs, input)
	if err := p.CreateFileErrs[input.Path]; err != nil {
		return nil, err
	}
	return &entities.FileWrite{
		File:   &entities.FileEntry{Name: input.Path, Path: input.Path, Type: "file"},
		Commit: entities.Commit{Message: input.Message},
	}, nil
}

func (p *SpyProviderRepository) GetUserOrganizations(
	_ context.Context, _ string,
) ([]entities.Organization, error) {
	return p.Organizations, p.OrgsErr
}

func (p *SpyProviderRepository) UpdateRelease(
	_ context.Context,
	_, _ string,
	_ int64,
	input entities.UpdateReleaseInput,
) (*entities.Release, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ReleaseUpdates = append(p.ReleaseUpdates, input)
	return p.UpdatedRelease, nil
}

func (p *SpyProviderRepository) CreateIssue(
	_ context.Context,
	_, _ string,
	input entities.CreateIssueInput,
) (*entities.Issue, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.IssueInputs = append(p.IssueInputs, input)
	return p.CreatedIssue, nil
}
