package entities

import "time"

// Issue is the provider-neutral view of an issue.
type Issue struct {
	ID            int64      `json:"id"`
	Number        int        `json:"number"`
	Title         string     `json:"title"`
	Body          string     `json:"body"`
	State         string     `json:"state"`
	Labels        []string   `json:"labels"`
	Assignees     []string   `json:"assignees"`
	Author        string     `json:"author"`
	Comments      int        `json:"comments"`
	IsPullRequest bool       `json:"is_pull_request"`
	HTMLURL       string     `json:"html_url"`
	CreatedAt     *time.Time `json:"created_at,omitempty"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
	ClosedAt      *time.Time `json:"closed_at,omitempty"`
	Raw           Raw        `json:"raw"`
}

// Comment is a comment on an issue or pull request.
type Comment struct {
	ID        int64      `json:"id"`
	Body      string     `json:"body"`
	Author    string     `json:"author"`
	HTMLURL   string     `json:"html_url"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
	Raw       Raw        `json:"raw"`
}

// IssueListOptions filters an issue listing. State is open, closed or all.
type IssueListOptions struct {
	ListOptions
	State  string   `json:"state,omitempty"`
	Labels []string `json:"labels,omitempty"`
}

// CreateIssueInput opens a new issue.
type CreateIssueInput struct {
	Title     string   `json:"title"`
	Body      string   `json:"body,omitempty"`
	Labels    []string `json:"labels,omitempty"`
	Assignees []string `json:"assignees,omitempty"`
}

// UpdateIssueInput patches an issue; nil fields are left untouched.
type UpdateIssueInput struct {
	Title     *string  `json:"title,omitempty"`
	Body      *string  `json:"body,omitempty"`
	State     *string  `json:"state,omitempty"`
	Assignees []string `json:"assignees,omitempty"`
}
