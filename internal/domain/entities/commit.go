package entities

import "time"

// CommitPerson is the author or committer of a commit.
type CommitPerson struct {
	Name  string     `json:"name"`
	Email string     `json:"email"`
	Login string     `json:"login,omitempty"`
	Date  *time.Time `json:"date,omitempty"`
}

// Commit is the provider-neutral view of a commit.
type Commit struct {
	SHA       string       `json:"sha"`
	Message   string       `json:"message"`
	Author    CommitPerson `json:"author"`
	Committer CommitPerson `json:"committer"`
	Parents   []string     `json:"parents"`
	TreeSHA   string       `json:"tree_sha,omitempty"`
	HTMLURL   string       `json:"html_url,omitempty"`
	Raw       Raw          `json:"raw"`
}

// CommitListOptions filters a commit listing.
type CommitListOptions struct {
	ListOptions
	Ref  string `json:"ref,omitempty"`
	Path string `json:"path,omitempty"`
}

// FileChange is one path changed by CreateCommit. Delete removes the path.
type FileChange struct {
	Path    string `json:"path"`
	Content string `json:"content,omitempty"`
	Delete  bool   `json:"delete,omitempty"`
}

// CreateCommitInput adds a commit on top of Branch. Tree is an optional pre-built
// tree SHA; without it the tree is derived from Files, or from the branch head
// when Files is empty.
type CreateCommitInput struct {
	Branch  string       `json:"branch"`
	Message string       `json:"message"`
	Tree    string       `json:"tree,omitempty"`
	Files   []FileChange `json:"files,omitempty"`
}
