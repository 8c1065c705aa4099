package entities

// Branch is a named ref and the commit it points to.
type Branch struct {
	Name      string `json:"name"`
	CommitSHA string `json:"commit_sha"`
	Protected bool   `json:"protected"`
	Raw       Raw    `json:"raw"`
}

// CreateBranchInput creates Name from From (a branch name or commit SHA).
type CreateBranchInput struct {
	Name string `json:"name"`
	From string `json:"from"`
}

// Comparison describes how far head diverged from base.
type Comparison struct {
	Base         string   `json:"base"`
	Head         string   `json:"head"`
	Status       string   `json:"status,omitempty"`
	AheadBy      int      `json:"ahead_by"`
	BehindBy     int      `json:"behind_by"`
	TotalCommits int      `json:"total_commits"`
	Commits      []Commit `json:"commits"`
	Files        []string `json:"files,omitempty"`
	HTMLURL      string   `json:"html_url,omitempty"`
	Raw          Raw      `json:"raw"`
}
