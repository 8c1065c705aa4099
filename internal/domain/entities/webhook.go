package entities

import "time"

// Webhook delivers repository events to URL.
type Webhook struct {
	ID          int64      `json:"id"`
	URL         string     `json:"url"`
	ContentType string     `json:"content_type"`
	Events      []string   `json:"events"`
	Active      bool       `json:"active"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
	Raw         Raw        `json:"raw"`
}

// WebhookInput creates or updates a webhook. Active nil keeps the backend default.
type WebhookInput struct {
	URL         string   `json:"url"`
	ContentType string   `json:"content_type,omitempty"`
	Secret      string   `json:"secret,omitempty"`
	Events      []string `json:"events,omitempty"`
	Active      *bool    `json:"active,omitempty"`
}

// Workflow is a CI workflow definition.
type Workflow struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Path    string `json:"path"`
	State   string `json:"state"`
	HTMLURL string `json:"html_url"`
	Raw     Raw    `json:"raw"`
}

// WorkflowRun is one execution of a workflow.
type WorkflowRun struct {
	ID         int64      `json:"id"`
	Name       string     `json:"name"`
	WorkflowID int64      `json:"workflow_id"`
	RunNumber  int        `json:"run_number"`
	HeadBranch string     `json:"head_branch"`
	HeadSHA    string     `json:"head_sha"`
	Event      string     `json:"event"`
	Status     string     `json:"status"`
	Conclusion string     `json:"conclusion"`
	HTMLURL    string     `json:"html_url"`
	CreatedAt  *time.Time `json:"created_at,omitempty"`
	Raw        Raw        `json:"raw"`
}

// WorkflowRunListOptions filters workflow runs. WorkflowID may be an ID or a file name.
type WorkflowRunListOptions struct {
	ListOptions
	WorkflowID string `json:"workflow_id,omitempty"`
	Branch     string `json:"branch,omitempty"`
	Status     string `json:"status,omitempty"`
}

// TriggerWorkflowInput dispatches a workflow on Ref.
type TriggerWorkflowInput struct {
	Ref    string            `json:"ref"`
	Inputs map[string]string `json:"inputs,omitempty"`
}
