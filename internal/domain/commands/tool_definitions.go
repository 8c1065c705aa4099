package commands

import "sort"

const (
	ToolRepository  = "repository"
	ToolBranch      = "branch"
	ToolFile        = "file"
	ToolCommit      = "commit"
	ToolIssue       = "issue"
	ToolPullRequest = "pull_request"
	ToolRelease     = "release"
	ToolTag         = "tag"
	ToolUser        = "user"
	ToolWebhook     = "webhook"
	ToolWorkflow    = "workflow"
)

const (
	ParamString  = "string"
	ParamInteger = "integer"
	ParamBoolean = "boolean"
	ParamArray   = "array"
	ParamObject  = "object"
)

// ToolParameter describes one argument a tool accepts.
type ToolParameter struct {
	Name        string
	Type        string
	Description string
	// Items is the element type of an array parameter.
	Items string
	Enum  []string
}

// ToolDefinition is the declarative description of one tool family. Every tool takes
// an action and an optional provider; the remaining parameters depend on the action.
type ToolDefinition struct {
	Name        string
	Description string
	Actions     []string
	Parameters  []ToolParameter
	// Required lists, per action, the parameters that must be present and non-empty.
	Required map[string][]string
}

// Schema returns the JSON schema of the tool input.
func (d ToolDefinition) Schema() map[string]any {
	properties := map[string]any{
		"action": map[string]any{
			"type":        ParamString,
			"enum":        d.Actions,
			"description": "Operation to run",
		},
		"provider": map[string]any{
			"type":        ParamString,
			"description": "Configured backend name, empty for the default backend",
		},
	}
	for _, param := range d.Parameters {
		properties[param.Name] = param.schema()
	}
	return map[string]any{
		"type":       ParamObject,
		"properties": properties,
		"required":   []string{"action"},
	}
}

func (p ToolParameter) schema() map[string]any {
	schema := map[string]any{"type": p.Type}
	if p.Description != "" {
		schema["description"] = p.Description
	}
	if len(p.Enum) > 0 {
		schema["enum"] = p.Enum
	}
	if p.Type == ParamArray {
		items := p.Items
		if items == "" {
			items = ParamString
		}
		schema["items"] = map[string]any{"type": items}
	}
	return schema
}

// HasAction reports whether action belongs to the tool.
func (d ToolDefinition) HasAction(action string) bool {
	for _, candidate := range d.Actions {
		if candidate == action {
			return true
		}
	}
	return false
}

func param(name, kind, description string) ToolParameter {
	return ToolParameter{Name: name, Type: kind, Description: description}
}

func locator() []ToolParameter {
	return []ToolParameter{
		param("owner", ParamString, "Repository owner (user or organization)"),
		param("repo", ParamString, "Repository name"),
	}
}

func paging() []ToolParameter {
	return []ToolParameter{
		param("page", ParamInteger, "Page number, starting at 1"),
		param("limit", ParamInteger, "Page size, at most 100"),
	}
}

func join(groups ...[]ToolParameter) []ToolParameter {
	var params []ToolParameter
	for _, group := range groups {
		params = append(params, group...)
	}
	return params
}

// Definitions returns the catalog of tools, sorted by name.
func Definitions() []ToolDefinition {
	definitions := []ToolDefinition{
		repositoryDefinition(),
		branchDefinition(),
		fileDefinition(),
		commitDefinition(),
		issueDefinition(),
		pullRequestDefinition(),
		releaseDefinition(),
		tagDefinition(),
		userDefinition(),
		webhookDefinition(),
		workflowDefinition(),
	}
	sort.Slice(definitions, func(i, j int) bool { return definitions[i].Name < definitions[j].Name })
	return definitions
}

func repositoryDefinition() ToolDefinition {
	return ToolDefinition{
		Name:        ToolRepository,
		Description: "Manage repositories: list, get, create, update, delete, fork, search, archive, transfer",
		Actions:     []string{"list", "get", "create", "update", "delete", "fork", "search", "archive", "transfer"},
		Parameters: join(locator(), paging(), []ToolParameter{
			param("name", ParamString, "Repository name to create, or new name on update"),
			param("description", ParamString, "Repository description"),
			param("private", ParamBoolean, "Whether the repository is private"),
			param("auto_init", ParamBoolean, "Initialize the repository with a README"),
			param("default_branch", ParamString, "Default branch"),
			param("organization", ParamString, "Organization that owns the new repository or fork"),
			param("new_owner", ParamString, "Destination owner of a transfer"),
			param("query", ParamString, "Search query"),
		}),
		Required: map[string][]string{
			"get":      {"owner", "repo"},
			"create":   {"name"},
			"update":   {"owner", "repo"},
			"delete":   {"owner", "repo"},
			"fork":     {"owner", "repo"},
			"search":   {"query"},
			"archive":  {"owner", "repo"},
			"transfer": {"owner", "repo", "new_owner"},
		},
	}
}

func branchDefinition() ToolDefinition {
	return ToolDefinition{
		Name:        ToolBranch,
		Description: "Manage branches: list, get, create, delete, compare",
		Actions:     []string{"list", "get", "create", "delete", "compare"},
		Parameters: join(locator(), paging(), []ToolParameter{
			param("branch", ParamString, "Branch name"),
			param("from", ParamString, "Branch or commit SHA the new branch starts from"),
			param("base", ParamString, "Base branch of a comparison"),
			param("head", ParamString, "Head branch of a comparison"),
		}),
		Required: map[string][]string{
			"list":    {"owner", "repo"},
			"get":     {"owner", "repo", "branch"},
			"create":  {"owner", "repo", "branch"},
			"delete":  {"owner", "repo", "branch"},
			"compare": {"owner", "repo", "base", "head"},
		},
	}
}

func fileDefinition() ToolDefinition {
	return ToolDefinition{
		Name:        ToolFile,
		Description: "Read and write files: get, list, create, update, delete, upload_directory",
		Actions:     []string{"get", "list", "create", "update", "delete", "upload_directory"},
		Parameters: join(locator(), []ToolParameter{
			param("path", ParamString, "File or directory path in the repository"),
			param("ref", ParamString, "Branch, tag or commit to read from"),
			param("content", ParamString, "Plain text file content"),
			param("message", ParamString, "Commit message"),
			param("branch", ParamString, "Branch to write to"),
			param("sha", ParamString, "Blob SHA of the file being replaced"),
			param("local_path", ParamString, "Local directory to upload"),
		}),
		Required: map[string][]string{
			"get":              {"owner", "repo", "path"},
			"list":             {"owner", "repo"},
			"create":           {"owner", "repo", "path", "message"},
			"update":           {"owner", "repo", "path", "message"},
			"delete":           {"owner", "repo", "path", "message"},
			"upload_directory": {"owner", "repo", "local_path"},
		},
	}
}

func commitDefinition() ToolDefinition {
	return ToolDefinition{
		Name:        ToolCommit,
		Description: "Read and create commits: list, get, create",
		Actions:     []string{"list", "get", "create"},
		Parameters: join(locator(), paging(), []ToolParameter{
			param("sha", ParamString, "Commit SHA"),
			param("ref", ParamString, "Branch or SHA to list from"),
			param("path", ParamString, "Only commits touching this path"),
			param("branch", ParamString, "Branch the commit is added to"),
			param("message", ParamString, "Commit message"),
			param("tree", ParamString, "Pre-built tree SHA"),
			{
				Name:        "files",
				Type:        ParamArray,
				Items:       ParamObject,
				Description: "Changes as objects with path, content and delete",
			},
			param("create_branch", ParamBoolean, "Create the branch before committing"),
			param("from", ParamString, "Start point of a branch created with create_branch"),
		}),
		Required: map[string][]string{
			"list":   {"owner", "repo"},
			"get":    {"owner", "repo", "sha"},
			"create": {"owner", "repo", "branch", "message"},
		},
	}
}

func issueDefinition() ToolDefinition {
	return ToolDefinition{
		Name:        ToolIssue,
		Description: "Manage issues: list, get, create, update, comment, list_comments, search",
		Actions:     []string{"list", "get", "create", "update", "comment", "list_comments", "search"},
		Parameters: join(locator(), paging(), []ToolParameter{
			param("number", ParamInteger, "Issue number"),
			param("title", ParamString, "Issue title"),
			param("body", ParamString, "Issue or comment body"),
			{Name: "state", Type: ParamString, Description: "Issue state", Enum: []string{"open", "closed", "all"}},
			{Name: "labels", Type: ParamArray, Description: "Label names"},
			{Name: "assignees", Type: ParamArray, Description: "Assignee logins"},
			param("query", ParamString, "Search query"),
		}),
		Required: map[string][]string{
			"list":          {"owner", "repo"},
			"get":           {"owner", "repo", "number"},
			"create":        {"owner", "repo", "title"},
			"update":        {"owner", "repo", "number"},
			"comment":       {"owner", "repo", "number", "body"},
			"list_comments": {"owner", "repo", "number"},
			"search":        {"query"},
		},
	}
}

func pullRequestDefinition() ToolDefinition {
	return ToolDefinition{
		Name:        ToolPullRequest,
		Description: "Manage pull requests: list, get, create, update, merge",
		Actions:     []string{"list", "get", "create", "update", "merge"},
		Parameters: join(locator(), paging(), []ToolParameter{
			param("number", ParamInteger, "Pull request number"),
			param("title", ParamString, "Pull request title, or merge commit title"),
			param("body", ParamString, "Pull request body"),
			param("head", ParamString, "Source branch"),
			param("base", ParamString, "Target branch"),
			param("draft", ParamBoolean, "Open as draft"),
			{Name: "state", Type: ParamString, Description: "Pull request state", Enum: []string{"open", "closed", "all"}},
			{Name: "method", Type: ParamString, Description: "Merge method", Enum: []string{"merge", "squash", "rebase"}},
			param("message", ParamString, "Merge commit message"),
		}),
		Required: map[string][]string{
			"list":   {"owner", "repo"},
			"get":    {"owner", "repo", "number"},
			"create": {"owner", "repo", "title", "head", "base"},
			"update": {"owner", "repo", "number"},
			"merge":  {"owner", "repo", "number"},
		},
	}
}

func releaseDefinition() ToolDefinition {
	return ToolDefinition{
		Name:        ToolRelease,
		Description: "Manage releases: list, get, latest, create, update, delete",
		Actions:     []string{"list", "get", "latest", "create", "update", "delete"},
		Parameters: join(locator(), paging(), []ToolParameter{
			param("id", ParamInteger, "Release ID"),
			param("tag_name", ParamString, "Tag the release points at"),
			param("name", ParamString, "Release title"),
			param("body", ParamString, "Release notes"),
			param("target_commitish", ParamString, "Branch or SHA the tag is created from"),
			param("draft", ParamBoolean, "Keep the release unpublished"),
			param("prerelease", ParamBoolean, "Mark as pre-release"),
		}),
		Required: map[string][]string{
			"list":   {"owner", "repo"},
			"get":    {"owner", "repo", "id"},
			"latest": {"owner", "repo"},
			"create": {"owner", "repo", "tag_name"},
			"update": {"owner", "repo", "id"},
			"delete": {"owner", "repo", "id"},
		},
	}
}

func tagDefinition() ToolDefinition {
	return ToolDefinition{
		Name:        ToolTag,
		Description: "Manage tags: list, create, delete",
		Actions:     []string{"list", "create", "delete"},
		Parameters: join(locator(), paging(), []ToolParameter{
			param("tag", ParamString, "Tag name"),
			param("target", ParamString, "Branch or commit SHA to tag"),
			param("message", ParamString, "Annotation message, creates an annotated tag"),
			{Name: "sort", Type: ParamString, Description: "Ordering of the listing", Enum: []string{"default", "semver"}},
		}),
		Required: map[string][]string{
			"list":   {"owner", "repo"},
			"create": {"owner", "repo", "tag"},
			"delete": {"owner", "repo", "tag"},
		},
	}
}

func userDefinition() ToolDefinition {
	return ToolDefinition{
		Name: ToolUser,
		Description: "Read users and organizations: get, current, list, organizations, repositories, " +
			"get_organization, list_organizations",
		Actions: []string{
			"get", "current", "list", "organizations", "repositories", "get_organization", "list_organizations",
		},
		Parameters: join(paging(), []ToolParameter{
			param("username", ParamString, "User login, empty for the authenticated user"),
			param("org", ParamString, "Organization login"),
		}),
		Required: map[string][]string{
			"get":              {"username"},
			"repositories":     {"username"},
			"get_organization": {"org"},
		},
	}
}

func webhookDefinition() ToolDefinition {
	return ToolDefinition{
		Name:        ToolWebhook,
		Description: "Manage repository webhooks: list, get, create, update, delete",
		Actions:     []string{"list", "get", "create", "update", "delete"},
		Parameters: join(locator(), paging(), []ToolParameter{
			param("id", ParamInteger, "Webhook ID"),
			param("url", ParamString, "Delivery URL"),
			{Name: "content_type", Type: ParamString, Description: "Payload format", Enum: []string{"json", "form"}},
			param("secret", ParamString, "Shared secret used to sign deliveries"),
			{Name: "events", Type: ParamArray, Description: "Events that trigger the webhook"},
			param("active", ParamBoolean, "Whether deliveries are enabled"),
		}),
		Required: map[string][]string{
			"list":   {"owner", "repo"},
			"get":    {"owner", "repo", "id"},
			"create": {"owner", "repo", "url"},
			"update": {"owner", "repo", "id", "url"},
			"delete": {"owner", "repo", "id"},
		},
	}
}

func workflowDefinition() ToolDefinition {
	return ToolDefinition{
		Name:        ToolWorkflow,
		Description: "Drive CI workflows: list, runs, trigger",
		Actions:     []string{"list", "runs", "trigger"},
		Parameters: join(locator(), paging(), []ToolParameter{
			param("workflow_id", ParamString, "Workflow ID or file name"),
			param("branch", ParamString, "Only runs on this branch"),
			param("status", ParamString, "Only runs with this status"),
			param("ref", ParamString, "Ref the workflow is dispatched on"),
			{Name: "inputs", Type: ParamObject, Description: "Workflow dispatch inputs"},
		}),
		Required: map[string][]string{
			"list":    {"owner", "repo"},
			"runs":    {"owner", "repo"},
			"trigger": {"owner", "repo", "workflow_id", "ref"},
		},
	}
}
