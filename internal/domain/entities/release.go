package entities

import "time"

// Release is a published (or draft) release attached to a tag.
type Release struct {
	ID              int64      `json:"id"`
	TagName         string     `json:"tag_name"`
	Name            string     `json:"name"`
	Body            string     `json:"body"`
	Draft           bool       `json:"draft"`
	Prerelease      bool       `json:"prerelease"`
	TargetCommitish string     `json:"target_commitish"`
	Author          string     `json:"author"`
	HTMLURL         string     `json:"html_url"`
	CreatedAt       *time.Time `json:"created_at,omitempty"`
	PublishedAt     *time.Time `json:"published_at,omitempty"`
	Raw             Raw        `json:"raw"`
}

// ReleaseInput creates a release.
type ReleaseInput struct {
	TagName         string `json:"tag_name"`
	Name            string `json:"name,omitempty"`
	Body            string `json:"body,omitempty"`
	TargetCommitish string `json:"target_commitish,omitempty"`
	Draft           bool   `json:"draft,omitempty"`
	Prerelease      bool   `json:"prerelease,omitempty"`
}

// UpdateReleaseInput patches a release; nil fields are left untouched.
type UpdateReleaseInput struct {
	TagName         *string `json:"tag_name,omitempty"`
	Name            *string `json:"name,omitempty"`
	Body            *string `json:"body,omitempty"`
	TargetCommitish *string `json:"target_commitish,omitempty"`
	Draft           *bool   `json:"draft,omitempty"`
	Prerelease      *bool   `json:"prerelease,omitempty"`
}

// Tag is a named pointer to a commit.
type Tag struct {
	Name       string `json:"name"`
	CommitSHA  string `json:"commit_sha"`
	Message    string `json:"message,omitempty"`
	ZipballURL string `json:"zipball_url,omitempty"`
	TarballURL string `json:"tarball_url,omitempty"`
	Raw        Raw    `json:"raw"`
}

// CreateTagInput creates a lightweight tag, or an annotated one when Message is set.
type CreateTagInput struct {
	Name    string `json:"name"`
	Target  string `json:"target"`
	Message string `json:"message,omitempty"`
}
