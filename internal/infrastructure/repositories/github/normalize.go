package github

import (
	"encoding/json"
	"strings"
	"time"

	gh "github.com/google/go-github/v66/github"

	"github.com/rios0rios0/gitbridge/internal/domain/entities"
	"github.com/rios0rios0/gitbridge/internal/infrastructure/repositories/shared"
)

// Payloads are decoded into go-github model types and mapped through their nil-safe
// getters. The untouched bytes are kept in Raw.

func timestamp(ts gh.Timestamp) *time.Time {
	return shared.TimePtr(ts.Time)
}

func stringValue(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func normalizeRepository(payload json.RawMessage) (entities.Repository, error) {
	var repo gh.Repository
	if err := json.Unmarshal(payload, &repo); err != nil {
		return entities.Repository{}, err
	}
	owner := repo.GetOwner()
	return entities.Repository{
		ID:            repo.GetID(),
		Name:          repo.GetName(),
		FullName:      repo.GetFullName(),
		Description:   repo.GetDescription(),
		Owner:         entities.Owner{ID: owner.GetID(), Login: owner.GetLogin(), Type: shared.OwnerType(owner.GetType())},
		Private:       repo.GetPrivate(),
		Fork:          repo.GetFork(),
		Archived:      repo.GetArchived(),
		DefaultBranch: repo.GetDefaultBranch(),
		HTMLURL:       repo.GetHTMLURL(),
		CloneURL:      repo.GetCloneURL(),
		SSHURL:        repo.GetSSHURL(),
		Stars:         repo.GetStargazersCount(),
		Forks:         repo.GetForksCount(),
		CreatedAt:     timestamp(repo.GetCreatedAt()),
		UpdatedAt:     timestamp(repo.GetUpdatedAt()),
		Raw:           entities.Raw(payload),
	}, nil
}

func normalizeBranch(payload json.RawMessage) (entities.Branch, error) {
	var branch gh.Branch
	if err := json.Unmarshal(payload, &branch); err != nil {
		return entities.Branch{}, err
	}
	return entities.Branch{
		Name:      branch.GetName(),
		CommitSHA: branch.GetCommit().GetSHA(),
		Protected: branch.GetProtected(),
		Raw:       entities.Raw(payload),
	}, nil
}

// normalizeReference maps a git ref (refs/heads/x) onto a branch.
func normalizeReference(payload json.RawMessage) (entities.Branch, error) {
	var ref gh.Reference
	if err := json.Unmarshal(payload, &ref); err != nil {
		return entities.Branch{}, err
	}
	return entities.Branch{
		Name:      strings.TrimPrefix(ref.GetRef(), "refs/heads/"),
		CommitSHA: ref.GetObject().GetSHA(),
		Raw:       entities.Raw(payload),
	}, nil
}

func normalizeFileEntry(payload json.RawMessage) (entities.FileEntry, error) {
	var content gh.RepositoryContent
	if err := json.Unmarshal(payload, &content); err != nil {
		return entities.FileEntry{}, err
	}
	return entities.FileEntry{
		Name:        content.GetName(),
		Path:        content.GetPath(),
		SHA:         content.GetSHA(),
		Size:        int64(content.GetSize()),
		Type:        content.GetType(),
		Content:     shared.DecodeContent(stringValue(content.Content), content.GetEncoding()),
		Encoding:    content.GetEncoding(),
		HTMLURL:     content.GetHTMLURL(),
		DownloadURL: content.GetDownloadURL(),
		Raw:         entities.Raw(payload),
	}, nil
}

// normalizeFileWrite maps the {content, commit} answer of the contents API.
func normalizeFileWrite(payload json.RawMessage) (entities.FileWrite, error) {
	var envelope struct {
		Content json.RawMessage `json:"content"`
		Commit  json.RawMessage `json:"commit"`
	}
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return entities.FileWrite{}, err
	}

	write := entities.FileWrite{Raw: entities.Raw(payload)}
	if len(envelope.Content) > 0 && string(envelope.Content) != "null" {
		file, err := normalizeFileEntry(envelope.Content)
		if err != nil {
			return entities.FileWrite{}, err
		}
		write.File = &file
	}
	if len(envelope.Commit) > 0 {
		commit, err := normalizeCommit(envelope.Commit)
		if err != nil {
			return entities.FileWrite{}, err
		}
		write.Commit = commit
	}
	return write, nil
}

// normalizeCommit accepts both the REST commit shape (message and author nested
// under "commit", account under "author") and the git data shape (message and
// author at the top level). The nested author wins when both are present.
func normalizeCommit(payload json.RawMessage) (entities.Commit, error) {
	var repoCommit gh.RepositoryCommit
	if err := json.Unmarshal(payload, &repoCommit); err != nil {
		return entities.Commit{}, err
	}
	var gitCommit gh.Commit
	if err := json.Unmarshal(payload, &gitCommit); err != nil {
		return entities.Commit{}, err
	}

	nested := repoCommit.GetCommit()
	author := nested.GetAuthor()
	if author == nil {
		author = gitCommit.GetAuthor()
	}
	committer := nested.GetCommitter()
	if committer == nil {
		committer = gitCommit.GetCommitter()
	}

	parents := make([]string, 0, len(gitCommit.Parents))
	for _, parent := range gitCommit.Parents {
		parents = append(parents, parent.GetSHA())
	}

	return entities.Commit{
		SHA:       shared.FirstNonEmpty(repoCommit.GetSHA(), gitCommit.GetSHA()),
		Message:   shared.FirstNonEmpty(nested.GetMessage(), gitCommit.GetMessage()),
		Author:    commitPerson(author, repoCommit.GetAuthor()),
		Committer: commitPerson(committer, repoCommit.GetCommitter()),
		Parents:   parents,
		TreeSHA:   shared.FirstNonEmpty(nested.GetTree().GetSHA(), gitCommit.GetTree().GetSHA()),
		HTMLURL:   shared.FirstNonEmpty(repoCommit.GetHTMLURL(), gitCommit.GetHTMLURL()),
		Raw:       entities.Raw(payload),
	}, nil
}

func commitPerson(author *gh.CommitAuthor, account *gh.User) entities.CommitPerson {
	return entities.CommitPerson{
		Name:  author.GetName(),
		Email: author.GetEmail(),
		Login: shared.FirstNonEmpty(account.GetLogin(), author.GetLogin()),
		Date:  timestamp(author.GetDate()),
	}
}

func normalizeComparison(payload json.RawMessage) (entities.Comparison, error) {
	var comparison gh.CommitsComparison
	if err := json.Unmarshal(payload, &comparison); err != nil {
		return entities.Comparison{}, err
	}
	var rawCommits struct {
		Commits []json.RawMessage `json:"commits"`
	}
	if err := json.Unmarshal(payload, &rawCommits); err != nil {
		return entities.Comparison{}, err
	}

	commits := make([]entities.Commit, 0, len(rawCommits.Commits))
	for _, item := range rawCommits.Commits {
		commit, err := normalizeCommit(item)
		if err != nil {
			return entities.Comparison{}, err
		}
		commits = append(commits, commit)
	}
	files := make([]string, 0, len(comparison.Files))
	for _, file := range comparison.Files {
		files = append(files, file.GetFilename())
	}

	return entities.Comparison{
		Status:       comparison.GetStatus(),
		AheadBy:      comparison.GetAheadBy(),
		BehindBy:     comparison.GetBehindBy(),
		TotalCommits: comparison.GetTotalCommits(),
		Commits:      commits,
		Files:        files,
		HTMLURL:      comparison.GetHTMLURL(),
		Raw:          entities.Raw(payload),
	}, nil
}

func logins(users []*gh.User) []string {
	result := make([]string, 0, len(users))
	for _, user := range users {
		result = append(result, user.GetLogin())
	}
	return result
}

func normalizeIssue(payload json.RawMessage) (entities.Issue, error) {
	var issue gh.Issue
	if err := json.Unmarshal(payload, &issue); err != nil {
		return entities.Issue{}, err
	}
	labels := make([]string, 0, len(issue.Labels))
	for _, label := range issue.Labels {
		labels = append(labels, label.GetName())
	}
	return entities.Issue{
		ID:            issue.GetID(),
		Number:        issue.GetNumber(),
		Title:         issue.GetTitle(),
		Body:          issue.GetBody(),
		State:         issue.GetState(),
		Labels:        labels,
		Assignees:     logins(issue.Assignees),
		Author:        issue.GetUser().GetLogin(),
		Comments:      issue.GetComments(),
		IsPullRequest: issue.IsPullRequest(),
		HTMLURL:       issue.GetHTMLURL(),
		CreatedAt:     timestamp(issue.GetCreatedAt()),
		UpdatedAt:     timestamp(issue.GetUpdatedAt()),
		ClosedAt:      timestamp(issue.GetClosedAt()),
		Raw:           entities.Raw(payload),
	}, nil
}

func normalizeComment(payload json.RawMessage) (entities.Comment, error) {
	var comment gh.IssueComment
	if err := json.Unmarshal(payload, &comment); err != nil {
		return entities.Comment{}, err
	}
	return entities.Comment{
		ID:        comment.GetID(),
		Body:      comment.GetBody(),
		Author:    comment.GetUser().GetLogin(),
		HTMLURL:   comment.GetHTMLURL(),
		CreatedAt: timestamp(comment.GetCreatedAt()),
		UpdatedAt: timestamp(comment.GetUpdatedAt()),
		Raw:       entities.Raw(payload),
	}, nil
}

func branchRef(branch *gh.PullRequestBranch) entities.BranchRef {
	return entities.BranchRef{Ref: branch.GetRef(), SHA: branch.GetSHA(), Label: branch.GetLabel()}
}

func normalizePullRequest(payload json.RawMessage) (entities.PullRequest, error) {
	var pr gh.PullRequest
	if err := json.Unmarshal(payload, &pr); err != nil {
		return entities.PullRequest{}, err
	}
	return entities.PullRequest{
		ID:        pr.GetID(),
		Number:    pr.GetNumber(),
		Title:     pr.GetTitle(),
		Body:      pr.GetBody(),
		State:     pr.GetState(),
		Draft:     pr.GetDraft(),
		Merged:    pr.GetMerged(),
		Mergeable: pr.Mergeable,
		Head:      branchRef(pr.GetHead()),
		Base:      branchRef(pr.GetBase()),
		Author:    pr.GetUser().GetLogin(),
		HTMLURL:   pr.GetHTMLURL(),
		CreatedAt: timestamp(pr.GetCreatedAt()),
		UpdatedAt: timestamp(pr.GetUpdatedAt()),
		MergedAt:  timestamp(pr.GetMergedAt()),
		Raw:       entities.Raw(payload),
	}, nil
}

func normalizeMergeResult(payload json.RawMessage) (entities.MergeResult, error) {
	var result gh.PullRequestMergeResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return entities.MergeResult{}, err
	}
	return entities.MergeResult{
		Merged:  result.GetMerged(),
		SHA:     result.GetSHA(),
		Message: result.GetMessage(),
		Raw:     entities.Raw(payload),
	}, nil
}

func normalizeRelease(payload json.RawMessage) (entities.Release, error) {
	var release gh.RepositoryRelease
	if err := json.Unmarshal(payload, &release); err != nil {
		return entities.Release{}, err
	}
	return entities.Release{
		ID:              release.GetID(),
		TagName:         release.GetTagName(),
		Name:            release.GetName(),
		Body:            release.GetBody(),
		Draft:           release.GetDraft(),
		Prerelease:      release.GetPrerelease(),
		TargetCommitish: release.GetTargetCommitish(),
		Author:          release.GetAuthor().GetLogin(),
		HTMLURL:         release.GetHTMLURL(),
		CreatedAt:       timestamp(release.GetCreatedAt()),
		PublishedAt:     timestamp(release.GetPublishedAt()),
		Raw:             entities.Raw(payload),
	}, nil
}

func normalizeTag(payload json.RawMessage) (entities.Tag, error) {
	var tag gh.RepositoryTag
	if err := json.Unmarshal(payload, &tag); err != nil {
		return entities.Tag{}, err
	}
	return entities.Tag{
		Name:       tag.GetName(),
		CommitSHA:  tag.GetCommit().GetSHA(),
		ZipballURL: tag.GetZipballURL(),
		TarballURL: tag.GetTarballURL(),
		Raw:        entities.Raw(payload),
	}, nil
}

func normalizeUser(payload json.RawMessage) (entities.User, error) {
	var user gh.User
	if err := json.Unmarshal(payload, &user); err != nil {
		return entities.User{}, err
	}
	return entities.User{
		ID:        user.GetID(),
		Login:     user.GetLogin(),
		Name:      user.GetName(),
		Email:     user.GetEmail(),
		Type:      shared.OwnerType(user.GetType()),
		AvatarURL: user.GetAvatarURL(),
		HTMLURL:   user.GetHTMLURL(),
		IsAdmin:   user.GetSiteAdmin(),
		CreatedAt: timestamp(user.GetCreatedAt()),
		Raw:       entities.Raw(payload),
	}, nil
}

func normalizeOrganization(payload json.RawMessage) (entities.Organization, error) {
	var org gh.Organization
	if err := json.Unmarshal(payload, &org); err != nil {
		return entities.Organization{}, err
	}
	return entities.Organization{
		ID:          org.GetID(),
		Login:       org.GetLogin(),
		Name:        org.GetName(),
		Description: org.GetDescription(),
		AvatarURL:   org.GetAvatarURL(),
		HTMLURL:     org.GetHTMLURL(),
		Raw:         entities.Raw(payload),
	}, nil
}

func normalizeWebhook(payload json.RawMessage) (entities.Webhook, error) {
	var hook gh.Hook
	if err := json.Unmarshal(payload, &hook); err != nil {
		return entities.Webhook{}, err
	}
	var settings struct {
		Config struct {
			URL         string `json:"url"`
			ContentType string `json:"content_type"`
		} `json:"config"`
	}
	if err := json.Unmarshal(payload, &settings); err != nil {
		return entities.Webhook{}, err
	}
	return entities.Webhook{
		ID:          hook.GetID(),
		URL:         settings.Config.URL,
		ContentType: settings.Config.ContentType,
		Events:      hook.Events,
		Active:      hook.GetActive(),
		CreatedAt:   timestamp(hook.GetCreatedAt()),
		UpdatedAt:   timestamp(hook.GetUpdatedAt()),
		Raw:         entities.Raw(payload),
	}, nil
}

func normalizeWorkflow(payload json.RawMessage) (entities.Workflow, error) {
	var workflow gh.Workflow
	if err := json.Unmarshal(payload, &workflow); err != nil {
		return entities.Workflow{}, err
	}
	return entities.Workflow{
		ID:      workflow.GetID(),
		Name:    workflow.GetName(),
		Path:    workflow.GetPath(),
		State:   workflow.GetState(),
		HTMLURL: workflow.GetHTMLURL(),
		Raw:     entities.Raw(payload),
	}, nil
}

func normalizeWorkflowRun(payload json.RawMessage) (entities.WorkflowRun, error) {
	var run gh.WorkflowRun
	if err := json.Unmarshal(payload, &run); err != nil {
		return entities.WorkflowRun{}, err
	}
	return entities.WorkflowRun{
		ID:         run.GetID(),
		Name:       run.GetName(),
		WorkflowID: run.GetWorkflowID(),
		RunNumber:  run.GetRunNumber(),
		HeadBranch: run.GetHeadBranch(),
		HeadSHA:    run.GetHeadSHA(),
		Event:      run.GetEvent(),
		Status:     run.GetStatus(),
		Conclusion: run.GetConclusion(),
		HTMLURL:    run.GetHTMLURL(),
		CreatedAt:  timestamp(run.GetCreatedAt()),
		Raw:        entities.Raw(payload),
	}, nil
}
