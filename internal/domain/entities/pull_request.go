package entities

import "time"

// BranchRef is one side of a pull request.
type BranchRef struct {
	Ref   string `json:"ref"`
	SHA   string `json:"sha"`
	Label string `json:"label,omitempty"`
}

// PullRequest is the provider-neutral view of a pull request.
type PullRequest struct {
	ID        int64      `json:"id"`
	Number    int        `json:"number"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	State     string     `json:"state"`
	Draft     bool       `json:"draft"`
	Merged    bool       `json:"merged"`
	Mergeable *bool      `json:"mergeable,omitempty"`
	Head      BranchRef  `json:"head"`
	Base      BranchRef  `json:"base"`
	Author    string     `json:"author"`
	HTMLURL   string     `json:"html_url"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
	MergedAt  *time.Time `json:"merged_at,omitempty"`
	Raw       Raw        `json:"raw"`
}

// PullRequestListOptions filters a pull request listing.
type PullRequestListOptions struct {
	ListOptions
	State string `json:"state,omitempty"`
}

// CreatePullRequestInput opens a pull request from Head into Base.
type CreatePullRequestInput struct {
	Title string `json:"title"`
	Body  string `json:"body,omitempty"`
	Head  string `json:"head"`
	Base  string `json:"base"`
	Draft bool   `json:"draft,omitempty"`
}

// UpdatePullRequestInput patches a pull request; nil fields are left untouched.
type UpdatePullRequestInput struct {
	Title *string `json:"title,omitempty"`
	Body  *string `json:"body,omitempty"`
	State *string `json:"state,omitempty"`
	Base  *string `json:"base,omitempty"`
}

// MergeInput selects how a pull request is merged (merge, squash or rebase).
type MergeInput struct {
	Method  string `json:"method,omitempty"`
	Title   string `json:"title,omitempty"`
	Message string `json:"message,omitempty"`
}

// MergeResult reports the outcome of a merge.
type MergeResult struct {
	Merged  bool   `json:"merged"`
	SHA     string `json:"sha,omitempty"`
	Message string `json:"message,omitempty"`
	Raw     Raw    `json:"raw"`
}
