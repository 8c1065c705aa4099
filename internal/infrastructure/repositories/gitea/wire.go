package gitea

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/rios0rios0/gitbridge/internal/domain/entities"
	"github.com/rios0rios0/gitbridge/internal/infrastructure/repositories/shared"
)

// Gitea names accounts "login" in most payloads but "username" in some, and
// organizations carry their handle in "name" or "username" depending on version.

type wireUser struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	Username  string `json:"username"`
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
	HTMLURL   string `json:"html_url"`
	IsAdmin   bool   `json:"is_admin"`
	Created   string `json:"created"`
}

func (u *wireUser) login() string {
	if u == nil {
		return ""
	}
	return shared.FirstNonEmpty(u.Login, u.Username)
}

type wireRepository struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	FullName      string    `json:"full_name"`
	Description   string    `json:"description"`
	Owner         *wireUser `json:"owner"`
	Private       bool      `json:"private"`
	Fork          bool      `json:"fork"`
	Archived      bool      `json:"archived"`
	ArchivedAt    string    `json:"archived_at"`
	DefaultBranch string    `json:"default_branch"`
	HTMLURL       string    `json:"html_url"`
	CloneURL      string    `json:"clone_url"`
	SSHURL        string    `json:"ssh_url"`
	Stars         int       `json:"stars_count"`
	Forks         int       `json:"forks_count"`
	CreatedAt     string    `json:"created_at"`
	UpdatedAt     string    `json:"updated_at"`
}

func normalizeRepository(payload json.RawMessage) (entities.Repository, error) {
	var repo wireRepository
	if err := json.Unmarshal(payload, &repo); err != nil {
		return entities.Repository{}, err
	}
	owner := entities.Owner{Type: entities.DefaultOwnerType}
	if repo.Owner != nil {
		owner.ID = repo.Owner.ID
		owner.Login = repo.Owner.login()
	}
	return entities.Repository{
		ID:            repo.ID,
		Name:          repo.Name,
		FullName:      repo.FullName,
		Description:   repo.Description,
		Owner:         owner,
		Private:       repo.Private,
		Fork:          repo.Fork,
		Archived:      repo.Archived,
		ArchivedAt:    archivedAt(repo.ArchivedAt),
		DefaultBranch: repo.DefaultBranch,
		HTMLURL:       repo.HTMLURL,
		CloneURL:      repo.CloneURL,
		SSHURL:        repo.SSHURL,
		Stars:         repo.Stars,
		Forks:         repo.Forks,
		CreatedAt:     shared.ParseTime(repo.CreatedAt),
		UpdatedAt:     shared.ParseTime(repo.UpdatedAt),
		Raw:           entities.Raw(payload),
	}, nil
}

// archivedAt ignores the epoch Gitea reports for repositories that were never archived.
func archivedAt(value string) *time.Time {
	parsed := shared.ParseTime(value)
	if parsed == nil || parsed.Unix() <= 0 {
		return nil
	}
	return parsed
}

type wirePayloadCommit struct {
	ID      string `json:"id"`
	SHA     string `json:"sha"`
	Message string `json:"message"`
}

type wireBranch struct {
	Name      string             `json:"name"`
	Commit    *wirePayloadCommit `json:"commit"`
	Protected bool               `json:"protected"`
}

func normalizeBranch(payload json.RawMessage) (entities.Branch, error) {
	var branch wireBranch
	if err := json.Unmarshal(payload, &branch); err != nil {
		return entities.Branch{}, err
	}
	sha := ""
	if branch.Commit != nil {
		sha = shared.FirstNonEmpty(branch.Commit.ID, branch.Commit.SHA)
	}
	return entities.Branch{
		Name:      branch.Name,
		CommitSHA: sha,
		Protected: branch.Protected,
		Raw:       entities.Raw(payload),
	}, nil
}

type wireIdentity struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Date  string `json:"date"`
}

type wireSHA struct {
	SHA string `json:"sha"`
}

type wireGitCommit struct {
	Message   string        `json:"message"`
	Author    *wireIdentity `json:"author"`
	Committer *wireIdentity `json:"committer"`
	Tree      *wireSHA      `json:"tree"`
}

// wireCommit covers both the REST commit (details nested under "commit") and the
// commit embedded in contents answers (details at the top level).
type wireCommit struct {
	SHA       string         `json:"sha"`
	HTMLURL   string         `json:"html_url"`
	Message   string         `json:"message"`
	Commit    *wireGitCommit `json:"commit"`
	Author    *wireIdentity  `json:"author"`
	Committer *wireIdentity  `json:"committer"`
	Parents   []wireSHA      `json:"parents"`
	Tree      *wireSHA       `json:"tree"`
}

// wireAccounts reads the account logins that REST commits carry in place of the
// top-level identities.
type wireAccounts struct {
	Author    *wireUser `json:"author"`
	Committer *wireUser `json:"committer"`
}

func person(identity *wireIdentity, account *wireUser) entities.CommitPerson {
	result := entities.CommitPerson{Login: account.login()}
	if identity != nil {
		result.Name = identity.Name
		result.Email = identity.Email
		result.Date = shared.ParseTime(identity.Date)
	}
	return result
}

func normalizeCommit(payload json.RawMessage) (entities.Commit, error) {
	var commit wireCommit
	if err := json.Unmarshal(payload, &commit); err != nil {
		return entities.Commit{}, err
	}

	result := entities.Commit{
		SHA:     commit.SHA,
		HTMLURL: commit.HTMLURL,
		Parents: make([]string, 0, len(commit.Parents)),
		Raw:     entities.Raw(payload),
	}
	for _, parent := range commit.Parents {
		result.Parents = append(result.Parents, parent.SHA)
	}

	if commit.Commit != nil {
		var accounts wireAccounts
		if err := json.Unmarshal(payload, &accounts); err != nil {
			return entities.Commit{}, err
		}
		result.Message = commit.Commit.Message
		result.Author = person(commit.Commit.Author, accounts.Author)
		result.Committer = person(commit.Commit.Committer, accounts.Committer)
		if commit.Commit.Tree != nil {
			result.TreeSHA = commit.Commit.Tree.SHA
		}
		return result, nil
	}

	result.Message = commit.Message
	result.Author = person(commit.Author, nil)
	result.Committer = person(commit.Committer, nil)
	if commit.Tree != nil {
		result.TreeSHA = commit.Tree.SHA
	}
	return result, nil
}

type wireComparison struct {
	TotalCommits int               `json:"total_commits"`
	Commits      []json.RawMessage `json:"commits"`
	Files        []struct {
		Filename string `json:"filename"`
	} `json:"files"`
}

func normalizeComparison(payload json.RawMessage) (entities.Comparison, error) {
	var comparison wireComparison
	if err := json.Unmarshal(payload, &comparison); err != nil {
		return entities.Comparison{}, err
	}
	result := entities.Comparison{
		TotalCommits: comparison.TotalCommits,
		AheadBy:      comparison.TotalCommits,
		Commits:      make([]entities.Commit, 0, len(comparison.Commits)),
		Raw:          entities.Raw(payload),
	}
	for _, item := range comparison.Commits {
		commit, err := normalizeCommit(item)
		if err != nil {
			return entities.Comparison{}, err
		}
		result.Commits = append(result.Commits, commit)
	}
	for _, file := range comparison.Files {
		result.Files = append(result.Files, file.Filename)
	}
	if result.TotalCommits == 0 {
		result.TotalCommits = len(result.Commits)
		result.AheadBy = result.TotalCommits
	}
	result.Status = "ahead"
	if result.TotalCommits == 0 {
		result.Status = "identical"
	}
	return result, nil
}

type wireContent struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	SHA         string `json:"sha"`
	Size        int64  `json:"size"`
	Type        string `json:"type"`
	Content     string `json:"content"`
	Encoding    string `json:"encoding"`
	HTMLURL     string `json:"html_url"`
	DownloadURL string `json:"download_url"`
}

func normalizeFileEntry(payload json.RawMessage) (entities.FileEntry, error) {
	var content wireContent
	if err := json.Unmarshal(payload, &content); err != nil {
		return entities.FileEntry{}, err
	}
	return entities.FileEntry{
		Name:        content.Name,
		Path:        content.Path,
		SHA:         content.SHA,
		Size:        content.Size,
		Type:        content.Type,
		Content:     shared.DecodeContent(content.Content, content.Encoding),
		Encoding:    content.Encoding,
		HTMLURL:     content.HTMLURL,
		DownloadURL: content.DownloadURL,
		Raw:         entities.Raw(payload),
	}, nil
}

func isNull(payload json.RawMessage) bool {
	return len(payload) == 0 || string(payload) == "null"
}

// normalizeFileWrite maps the {content, commit} answer of single file writes.
func normalizeFileWrite(payload json.RawMessage) (entities.FileWrite, error) {
	var envelope struct {
		Content json.RawMessage `json:"content"`
		Commit  json.RawMessage `json:"commit"`
	}
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return entities.FileWrite{}, err
	}
	write := entities.FileWrite{Raw: entities.Raw(payload)}
	if !isNull(envelope.Content) {
		file, err := normalizeFileEntry(envelope.Content)
		if err != nil {
			return entities.FileWrite{}, err
		}
		write.File = &file
	}
	if !isNull(envelope.Commit) {
		commit, err := normalizeCommit(envelope.Commit)
		if err != nil {
			return entities.FileWrite{}, err
		}
		write.Commit = commit
	}
	return write, nil
}

// normalizeFilesCommit extracts the commit of a multi-file change answer.
func normalizeFilesCommit(payload json.RawMessage) (entities.Commit, error) {
	write, err := normalizeFileWrite(payload)
	if err != nil {
		return entities.Commit{}, err
	}
	return write.Commit, nil
}

type wireLabel struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func decodeLabel(payload json.RawMessage) (wireLabel, error) {
	var label wireLabel
	err := json.Unmarshal(payload, &label)
	return label, err
}

type wireIssue struct {
	ID          int64       `json:"id"`
	Number      int         `json:"number"`
	Title       string      `json:"title"`
	Body        string      `json:"body"`
	State       string      `json:"state"`
	Labels      []wireLabel `json:"labels"`
	Assignees   []wireUser  `json:"assignees"`
	User        *wireUser   `json:"user"`
	Comments    int         `json:"comments"`
	PullRequest any         `json:"pull_request"`
	HTMLURL     string      `json:"html_url"`
	CreatedAt   string      `json:"created_at"`
	UpdatedAt   string      `json:"updated_at"`
	ClosedAt    string      `json:"closed_at"`
}

func logins(users []wireUser) []string {
	result := make([]string, 0, len(users))
	for i := range users {
		result = append(result, users[i].login())
	}
	return result
}

func normalizeIssue(payload json.RawMessage) (entities.Issue, error) {
	var issue wireIssue
	if err := json.Unmarshal(payload, &issue); err != nil {
		return entities.Issue{}, err
	}
	labels := make([]string, 0, len(issue.Labels))
	for _, label := range issue.Labels {
		labels = append(labels, label.Name)
	}
	return entities.Issue{
		ID:            issue.ID,
		Number:        issue.Number,
		Title:         issue.Title,
		Body:          issue.Body,
		State:         issue.State,
		Labels:        labels,
		Assignees:     logins(issue.Assignees),
		Author:        issue.User.login(),
		Comments:      issue.Comments,
		IsPullRequest: issue.PullRequest != nil,
		HTMLURL:       issue.HTMLURL,
		CreatedAt:     shared.ParseTime(issue.CreatedAt),
		UpdatedAt:     shared.ParseTime(issue.UpdatedAt),
		ClosedAt:      shared.ParseTime(issue.ClosedAt),
		Raw:           entities.Raw(payload),
	}, nil
}

type wireComment struct {
	ID        int64     `json:"id"`
	Body      string    `json:"body"`
	User      *wireUser `json:"user"`
	HTMLURL   string    `json:"html_url"`
	CreatedAt string    `json:"created_at"`
	UpdatedAt string    `json:"updated_at"`
}

func normalizeComment(payload json.RawMessage) (entities.Comment, error) {
	var comment wireComment
	if err := json.Unmarshal(payload, &comment); err != nil {
		return entities.Comment{}, err
	}
	return entities.Comment{
		ID:        comment.ID,
		Body:      comment.Body,
		Author:    comment.User.login(),
		HTMLURL:   comment.HTMLURL,
		CreatedAt: shared.ParseTime(comment.CreatedAt),
		UpdatedAt: shared.ParseTime(comment.UpdatedAt),
		Raw:       entities.Raw(payload),
	}, nil
}

type wirePRBranch struct {
	Ref   string `json:"ref"`
	SHA   string `json:"sha"`
	Label string `json:"label"`
}

type wirePullRequest struct {
	ID             int64         `json:"id"`
	Number         int           `json:"number"`
	Title          string        `json:"title"`
	Body           string        `json:"body"`
	State          string        `json:"state"`
	Draft          bool          `json:"draft"`
	Merged         bool          `json:"merged"`
	Mergeable      *bool         `json:"mergeable"`
	MergeCommitSHA string        `json:"merge_commit_sha"`
	Head           *wirePRBranch `json:"head"`
	Base           *wirePRBranch `json:"base"`
	User           *wireUser     `json:"user"`
	HTMLURL        string        `json:"html_url"`
	CreatedAt      string        `json:"created_at"`
	UpdatedAt      string        `json:"updated_at"`
	MergedAt       string        `json:"merged_at"`
}

func branchRef(branch *wirePRBranch) entities.BranchRef {
	if branch == nil {
		return entities.BranchRef{}
	}
	return entities.BranchRef{Ref: branch.Ref, SHA: branch.SHA, Label: branch.Label}
}

func normalizePullRequest(payload json.RawMessage) (entities.PullRequest, error) {
	var pr wirePullRequest
	if err := json.Unmarshal(payload, &pr); err != nil {
		return entities.PullRequest{}, err
	}
	// Gitea flags drafts through a title prefix.
	draft := pr.Draft || strings.HasPrefix(strings.ToUpper(pr.Title), "WIP:")
	return entities.PullRequest{
		ID:        pr.ID,
		Number:    pr.Number,
		Title:     pr.Title,
		Body:      pr.Body,
		State:     pr.State,
		Draft:     draft,
		Merged:    pr.Merged,
		Mergeable: pr.Mergeable,
		Head:      branchRef(pr.Head),
		Base:      branchRef(pr.Base),
		Author:    pr.User.login(),
		HTMLURL:   pr.HTMLURL,
		CreatedAt: shared.ParseTime(pr.CreatedAt),
		UpdatedAt: shared.ParseTime(pr.UpdatedAt),
		MergedAt:  shared.ParseTime(pr.MergedAt),
		Raw:       entities.Raw(payload),
	}, nil
}

// normalizeMergeResult reads the pull request fetched after a merge, since the
// merge endpoint itself answers with an empty body.
func normalizeMergeResult(payload json.RawMessage) (entities.MergeResult, error) {
	var pr wirePullRequest
	if err := json.Unmarshal(payload, &pr); err != nil {
		return entities.MergeResult{}, err
	}
	message := "Pull request successfully merged"
	if !pr.Merged {
		message = "Pull request is not merged"
	}
	return entities.MergeResult{
		Merged:  pr.Merged,
		SHA:     pr.MergeCommitSHA,
		Message: message,
		Raw:     entities.Raw(payload),
	}, nil
}

type wireRelease struct {
	ID              int64     `json:"id"`
	TagName         string    `json:"tag_name"`
	Name            string    `json:"name"`
	Body            string    `json:"body"`
	Draft           bool      `json:"draft"`
	Prerelease      bool      `json:"prerelease"`
	TargetCommitish string    `json:"target_commitish"`
	Author          *wireUser `json:"author"`
	HTMLURL         string    `json:"html_url"`
	CreatedAt       string    `json:"created_at"`
	PublishedAt     string    `json:"published_at"`
}

func normalizeRelease(payload json.RawMessage) (entities.Release, error) {
	var release wireRelease
	if err := json.Unmarshal(payload, &release); err != nil {
		return entities.Release{}, err
	}
	return entities.Release{
		ID:              release.ID,
		TagName:         release.TagName,
		Name:            release.Name,
		Body:            release.Body,
		Draft:           release.Draft,
		Prerelease:      release.Prerelease,
		TargetCommitish: release.TargetCommitish,
		Author:          release.Author.login(),
		HTMLURL:         release.HTMLURL,
		CreatedAt:       shared.ParseTime(release.CreatedAt),
		PublishedAt:     shared.ParseTime(release.PublishedAt),
		Raw:             entities.Raw(payload),
	}, nil
}

type wireTag struct {
	Name       string   `json:"name"`
	Message    string   `json:"message"`
	Commit     *wireSHA `json:"commit"`
	ZipballURL string   `json:"zipball_url"`
	TarballURL string   `json:"tarball_url"`
}

func normalizeTag(payload json.RawMessage) (entities.Tag, error) {
	var tag wireTag
	if err := json.Unmarshal(payload, &tag); err != nil {
		return entities.Tag{}, err
	}
	sha := ""
	if tag.Commit != nil {
		sha = tag.Commit.SHA
	}
	return entities.Tag{
		Name:       tag.Name,
		CommitSHA:  sha,
		Message:    strings.TrimSpace(tag.Message),
		ZipballURL: tag.ZipballURL,
		TarballURL: tag.TarballURL,
		Raw:        entities.Raw(payload),
	}, nil
}

func normalizeUser(payload json.RawMessage) (entities.User, error) {
	var user wireUser
	if err := json.Unmarshal(payload, &user); err != nil {
		return entities.User{}, err
	}
	return entities.User{
		ID:        user.ID,
		Login:     user.login(),
		Name:      user.FullName,
		Email:     user.Email,
		Type:      entities.DefaultOwnerType,
		AvatarURL: user.AvatarURL,
		HTMLURL:   user.HTMLURL,
		IsAdmin:   user.IsAdmin,
		CreatedAt: shared.ParseTime(user.Created),
		Raw:       entities.Raw(payload),
	}, nil
}

type wireOrganization struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Username    string `json:"username"`
	FullName    string `json:"full_name"`
	Description string `json:"description"`
	AvatarURL   string `json:"avatar_url"`
	Website     string `json:"website"`
}

func normalizeOrganization(payload json.RawMessage) (entities.Organization, error) {
	var org wireOrganization
	if err := json.Unmarshal(payload, &org); err != nil {
		return entities.Organization{}, err
	}
	login := shared.FirstNonEmpty(org.Username, org.Name)
	return entities.Organization{
		ID:          org.ID,
		Login:       login,
		Name:        shared.FirstNonEmpty(org.FullName, login),
		Description: org.Description,
		AvatarURL:   org.AvatarURL,
		HTMLURL:     org.Website,
		Raw:         entities.Raw(payload),
	}, nil
}

type wireHook struct {
	ID        int64             `json:"id"`
	Type      string            `json:"type"`
	Config    map[string]string `json:"config"`
	Events    []string          `json:"events"`
	Active    bool              `json:"active"`
	CreatedAt string            `json:"created_at"`
	UpdatedAt string            `json:"updated_at"`
}

func normalizeWebhook(payload json.RawMessage) (entities.Webhook, error) {
	var hook wireHook
	if err := json.Unmarshal(payload, &hook); err != nil {
		return entities.Webhook{}, err
	}
	return entities.Webhook{
		ID:          hook.ID,
		URL:         hook.Config["url"],
		ContentType: hook.Config["content_type"],
		Events:      hook.Events,
		Active:      hook.Active,
		CreatedAt:   shared.ParseTime(hook.CreatedAt),
		UpdatedAt:   shared.ParseTime(hook.UpdatedAt),
		Raw:         entities.Raw(payload),
	}, nil
}
