package gitea

import (
	"context"
	"net/http"
	"strconv"

	"github.com/rios0rios0/gitbridge/internal/domain/entities"
	"github.com/rios0rios0/gitbridge/internal/infrastructure/repositories/shared"
)

const (
	hookType           = "gitea"
	defaultContentType = "json"
)

func hookPath(owner, repo string, id int64) string {
	return repoPath(owner, repo) + "/hooks/" + strconv.FormatInt(id, 10)
}

// hookConfig builds the hook config; only creation defaults the content type to json.
func hookConfig(input entities.WebhookInput, creating bool) map[string]string {
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
	return config
}

// --- webhooks ---

func (p *GiteaProviderRepository) ListWebhooks(
	ctx context.Context,
	owner, repo string,
	opts entities.ListOptions,
) ([]entities.Webhook, error) {
	return shared.FetchList(ctx, p.client, http.MethodGet,
		repoPath(owner, repo)+"/hooks", paginate(opts), nil, normalizeWebhook)
}

func (p *GiteaProviderRepository) GetWebhook(
	ctx context.Context,
	owner, repo string,
	id int64,
) (*entities.Webhook, error) {
	return shared.Fetch(ctx, p.client, http.MethodGet, hookPath(owner, repo, id), nil, nil, normalizeWebhook)
}

// CreateWebhook creates an active Gitea hook on push unless told otherwise.
func (p *GiteaProviderRepository) CreateWebhook(
	ctx context.Context,
	owner, repo string,
	input entities.WebhookInput,
) (*entities.Webhook, error) {
	events := input.Events
	if len(events) == 0 {
		events = []string{"push"}
	}
	active := true
	if input.Active != nil {
		active = *input.Active
	}
	body := map[string]any{
		"type":   hookType,
		"config": hookConfig(input, true),
		"events": events,
		"active": active,
	}
	return shared.Fetch(ctx, p.client, http.MethodPost, repoPath(owner, repo)+"/hooks", nil, body, normalizeWebhook)
}

func (p *GiteaProviderRepository) UpdateWebhook(
	ctx context.Context,
	owner, repo string,
	id int64,
	input entities.WebhookInput,
) (*entities.Webhook, error) {
	body := map[string]any{}
	if config := hookConfig(input, false); len(config) > 0 {
		body["config"] = config
	}
	if len(input.Events) > 0 {
		body["events"] = input.Events
	}
	if input.Active != nil {
		body["active"] = *input.Active
	}
	return shared.Fetch(ctx, p.client, http.MethodPatch, hookPath(owner, repo, id), nil, body, normalizeWebhook)
}

func (p *GiteaProviderRepository) DeleteWebhook(ctx context.Context, owner, repo string, id int64) error {
	return shared.DeleteIdempotent(ctx, p.client, hookPath(owner, repo, id), nil, nil)
}

// --- workflows ---

func (p *GiteaProviderRepository) ListWorkflows(
	_ context.Context,
	_, _ string,
	_ entities.ListOptions,
) ([]entities.Workflow, error) {
	return nil, entities.NewNotSupportedError(p.DisplayName(), "listing workflows")
}

func (p *GiteaProviderRepository) ListWorkflowRuns(
	_ context.Context,
	_, _ string,
	_ entities.WorkflowRunListOptions,
) ([]entities.WorkflowRun, error) {
	return nil, entities.NewNotSupportedError(p.DisplayName(), "listing workflow runs")
}

func (p *GiteaProviderRepository) TriggerWorkflow(
	_ context.Context,
	_, _, _ string,
	_ entities.TriggerWorkflowInput,
) error {
	return entities.NewNotSupportedError(p.DisplayName(), "triggering workflows")
}
