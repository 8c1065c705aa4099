package github

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rios0rios0/gitbridge/internal/domain/entities"
	"github.com/rios0rios0/gitbridge/internal/infrastructure/repositories/shared"
)

const defaultContentType = "json"

type workflowRunQuery struct {
	Branch  string `url:"branch,omitempty"`
	Status  string `url:"status,omitempty"`
	Page    int    `url:"page,omitempty"`
	PerPage int    `url:"per_page,omitempty"`
}

func hookPath(owner, repo string, id int64) string {
	return repoPath(owner, repo) + "/hooks/" + strconv.FormatInt(id, 10)
}

// hookBody builds the hook payload; only creation defaults the content type to json.
func hookBody(input entities.WebhookInput, creating bool) map[string]any {
	config := map[string]string{}
	if input.URL != "" || creating {
		config["url"] = input.URL
	}
	if input.ContentType != "" || creating {
		config["content_type"] = shared.FirstNonEmpty(input.ContentType, defaultContentType)
	}
	if input.Secret != "" {
		config["secret"] = input.Secret
	}
	body := map[string]any{}
	if creating {
		body["name"] = "web"
	}
	if len(config) > 0 {
		body["config"] = config
	}
	if len(input.Events) > 0 {
		body["events"] = input.Events
	}
	if input.Active != nil {
		body["active"] = *input.Active
	}
	return body
}

// --- webhooks ---

func (p *GitHubProviderRepository) ListWebhooks(
	ctx context.Context,
	owner, repo string,
	opts entities.ListOptions,
) ([]entities.Webhook, error) {
	return shared.FetchList(ctx, p.client, http.MethodGet,
		repoPath(owner, repo)+"/hooks", paginate(opts), nil, normalizeWebhook)
}

func (p *GitHubProviderRepository) GetWebhook(
	ctx context.Context,
	owner, repo string,
	id int64,
) (*entities.Webhook, error) {
	return shared.Fetch(ctx, p.client, http.MethodGet, hookPath(owner, repo, id), nil, nil, normalizeWebhook)
}

func (p *GitHubProviderRepository) CreateWebhook(
	ctx context.Context,
	owner, repo string,
	input entities.WebhookInput,
) (*entities.Webhook, error) {
	return shared.Fetch(ctx, p.client, http.MethodPost,
		repoPath(owner, repo)+"/hooks", nil, hookBody(input, true), normalizeWebhook)
}

func (p *GitHubProviderRepository) UpdateWebhook(
	ctx context.Context,
	owner, repo string,
	id int64,
	input entities.WebhookInput,
) (*entities.Webhook, error) {
	return shared.Fetch(ctx, p.client, http.MethodPatch, hookPath(owner, repo, id), nil, hookBody(input, false), normalizeWebhook)
}

func (p *GitHubProviderRepository) DeleteWebhook(ctx context.Context, owner, repo string, id int64) error {
	return shared.DeleteIdempotent(ctx, p.client, hookPath(owner, repo, id), nil, nil)
}

// --- workflows ---

func (p *GitHubProviderRepository) ListWorkflows(
	ctx context.Context,
	owner, repo string,
	opts entities.ListOptions,
) ([]entities.Workflow, error) {
	var envelope struct {
		Workflows json.RawMessage `json:"workflows"`
	}
	if err := p.client.Get(ctx, repoPath(owner, repo)+"/actions/workflows", paginate(opts), &envelope); err != nil {
		return nil, err
	}
	workflows, err := shared.MapList(envelope.Workflows, normalizeWorkflow)
	if err != nil {
		return nil, entities.NewDecodeError(p.DisplayName(), err)
	}
	return workflows, nil
}

func (p *GitHubProviderRepository) ListWorkflowRuns(
	ctx context.Context,
	owner, repo string,
	opts entities.WorkflowRunListOptions,
) ([]entities.WorkflowRun, error) {
	path := repoPath(owner, repo) + "/actions/runs"
	if opts.WorkflowID != "" {
		path = repoPath(owner, repo) + "/actions/workflows/" + url.PathEscape(opts.WorkflowID) + "/runs"
	}
	page := paginate(opts.ListOptions)
	query := workflowRunQuery{Branch: opts.Branch, Status: opts.Status, Page: page.Page, PerPage: page.PerPage}

	var envelope struct {
		Runs json.RawMessage `json:"workflow_runs"`
	}
	if err := p.client.Get(ctx, path, query, &envelope); err != nil {
		return nil, err
	}
	runs, err := shared.MapList(envelope.Runs, normalizeWorkflowRun)
	if err != nil {
		return nil, entities.NewDecodeError(p.DisplayName(), err)
	}
	return runs, nil
}

func (p *GitHubProviderRepository) TriggerWorkflow(
	ctx context.Context,
	owner, repo, workflowID string,
	input entities.TriggerWorkflowInput,
) error {
	path := repoPath(owner, repo) + "/actions/workflows/" + url.PathEscape(workflowID) + "/dispatches"
	return p.client.Post(ctx, path, input, nil)
}
