package entities

import "time"

// DefaultOwnerType is assumed when a backend omits the owner kind.
const DefaultOwnerType = "User"

// Owner is the account a repository belongs to.
type Owner struct {
	ID    int64  `json:"id,omitempty"`
	Login string `json:"login"`
	Type  string `json:"type"`
}

// Repository is the provider-neutral view of a hosted repository.
type Repository struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	FullName      string     `json:"full_name"`
	Description   string     `json:"description"`
	Owner         Owner      `json:"owner"`
	Private       bool       `json:"private"`
	Fork          bool       `json:"fork"`
	Archived      bool       `json:"archived"`
	ArchivedAt    *time.Time `json:"archived_at,omitempty"`
	DefaultBranch string     `json:"default_branch"`
	HTMLURL       string     `json:"html_url"`
	CloneURL      string     `json:"clone_url"`
	SSHURL        string     `json:"ssh_url"`
	Stars         int        `json:"stars"`
	Forks         int        `json:"forks"`
	CreatedAt     *time.Time `json:"created_at,omitempty"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
	// Simulated marks a result computed locally instead of persisted by the backend.
	Simulated bool `json:"simulated,omitempty"`
	Raw       Raw  `json:"raw"`
}

// CreateRepositoryInput creates a repository for the authenticated user or for Organization.
type CreateRepositoryInput struct {
	Organization  string `json:"organization,omitempty"`
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	Private       bool   `json:"private"`
	AutoInit      bool   `json:"auto_init"`
	DefaultBranch string `json:"default_branch,omitempty"`
}

// UpdateRepositoryInput patches repository settings; nil fields are left untouched.
type UpdateRepositoryInput struct {
	Name          *string `json:"name,omitempty"`
	Description   *string `json:"description,omitempty"`
	Private       *bool   `json:"private,omitempty"`
	DefaultBranch *string `json:"default_branch,omitempty"`
	Archived      *bool   `json:"archived,omitempty"`
}

// ForkInput selects where a fork is created.
type ForkInput struct {
	Organization string `json:"organization,omitempty"`
	Name         string `json:"name,omitempty"`
}
