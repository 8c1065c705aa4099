package commands

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/gitbridge/internal/domain/entities"
	"github.com/rios0rios0/gitbridge/internal/domain/repositories"
	"github.com/rios0rios0/gitbridge/internal/infrastructure/repositories/shared"
)

const sortSemver = "semver"

type providerRepo = repositories.ProviderRepository

func (it *ToolCommand) handlerTable() map[string]map[string]toolHandler {
	return map[string]map[string]toolHandler{
		ToolRepository:  repositoryHandlers(),
		ToolBranch:      branchHandlers(),
		ToolFile:        it.fileHandlers(),
		ToolCommit:      commitHandlers(),
		ToolIssue:       issueHandlers(),
		ToolPullRequest: pullRequestHandlers(),
		ToolRelease:     releaseHandlers(),
		ToolTag:         tagHandlers(),
		ToolUser:        userHandlers(),
		ToolWebhook:     webhookHandlers(),
		ToolWorkflow:    workflowHandlers(),
	}
}

// deleted is the data of a successful delete.
type deleted struct {
	Deleted bool   `json:"deleted"`
	Target  string `json:"target"`
}

func repositoryHandlers() map[string]toolHandler {
	return map[string]toolHandler{
		"list": func(ctx context.Context, p providerRepo, a arguments) (any, error) {
			return p.ListRepositories(ctx, a.Owner, a.listOptions())
		},
		"get": func(ctx context.Context, p providerRepo, a arguments) (any, error) {
			return p.GetRepository(ctx, a.Owner, a.Repo)
		},
		"create": func(ctx context.Context, p providerRepo, a arguments) (any, error) {
			return p.CreateRepository(ctx, entities.CreateRepositoryInput{
				Organization:  a.Organization,
				Name:          a.Name,
				Description:   a.Description,
				Private:       enabled(a.Private),
				AutoInit:      a.AutoInit,
				DefaultBranch: a.DefaultBranch,
			})
		},
		"update": func(ctx context.Context, p providerRepo, a arguments) (any, error) {
			return p.UpdateRepository(ctx, a.Owner, a.Repo, entities.UpdateRepositoryInput{
				Name:          optional(a.Name),
				Description:   optional(a.Description),
				Private:       a.Private,
				DefaultBranch: optional(a.DefaultBranch),
			})
		},
		"delete": func(ctx context.Context, p providerRepo, a arguments) (any, error) {
			if err := p.DeleteRepository(ctx, a.Owner, a.Repo); err != nil {
				return nil, err
			}
			return deleted{Deleted: true, Target: a.Owner + "/" + a.Repo}, nil
		},
		"fork": func(ctx context.Context, p providerRepo, a arguments) (any, error) {
			return p.ForkRepository(ctx, a.Owner, a.Repo, entities.ForkInput{
				Organization: a.Organization,
				Name:         a.Name,
			})
		},
		"search": func(ctx context.Context, p providerRepo, a arguments) (any, error) {
			return p.SearchRepositories(ctx, a.Query, a.listOptions())
		},
		"archive": func(ctx context.Context, p providerRepo, a arguments) (any, error) {
			return p.ArchiveRepository(ctx, a.Owner, a.Repo)
		},
		"transfer": func(ctx context.Context, p providerRepo, a arguments) (any, error) {
			return p.TransferRepository(ctx, a.Owner, a.Repo, a.NewOwner)
		},
	}
}

func branchHandlers() map[string]toolHandler {
	return map[string]toolHandler{
		"list": func(ctx context.Context, p providerRepo, a arguments) (any, error) {
			return p.ListBranches(ctx, a.Owner, a.Repo, a.listOptions())
		},
		"get": func(ctx context.Context, p providerRepo, a arguments) (any, error) {
			return p.GetBranch(ctx, a.Owner, a.Repo, a.Branch)
		},
		"create": func(ctx context.Context, p providerRepo, a arguments) (any, error) {
			return p.CreateBranch(ctx, a.Owner, a.Repo, entities.CreateBranchInput{Name: a.Branch, From: a.From})
		},
		"delete": func(ctx context.Context, p providerRepo, a arguments) (any, error) {
			if err := p.DeleteBranch(ctx, a.Owner, a.Repo, a.Branch); err != nil {
				return nil, err
			}
			return deleted{Deleted: true, Target: a.Branch}, nil
		},
		"compare": func(ctx context.Context, p providerRepo, a arguments) (any, error) {
			return p.CompareBranches(ctx, a.Owner, a.Repo, a.Base, a.Head)
		},
	}
}

func fileInput(a arguments) entities.FileInput {
	return entities.FileInput{
		Path:    a.Path,
		Content: a.Content,
		Message: a.Message,
		Branch:  a.Branch,
		SHA:     a.SHA,
	}
}

func (it *ToolCommand) fileHandlers() map[string]toolHandler {
	return map[string]toolHandler{
		"get": func(ctx context.Context, p providerRepo, a arguments) (any, error) {
			return p.GetFile(ctx, a.Owner, a.Repo, a.Path, a.Ref)
		},
		"list": func(ctx context.Context, p providerRepo, a arguments) (any, error) {
			return p.ListDirectory(ctx, a.Owner, a.Repo, a.Path, a.Ref)
		},
		"create": func(ctx context.Context, p providerRepo, a arguments) (any, error) {
			return p.CreateFile(ctx, a.Owner, a.Repo, fileInput(a))
		},
		"update": func(ctx context.Context, p providerRepo, a arguments) (any, error) {
			return p.UpdateFile(ctx, a.Owner, a.Repo, fileInput(a))
		},
		"delete": func(ctx context.Context, p providerRepo, a arguments) (any, error) {
			return p.DeleteFile(ctx, a.Owner, a.Repo, fileInput(a))
		},
		"upload_directory": func(ctx context.Context, p providerRepo, a arguments) (any, error) {
			return it.uploader.Execute(ctx, p, UploadOptions{
				Owner:      a.Owner,
				Repo:       a.Repo,
				LocalPath:  a.LocalPath,
				TargetPath: a.Path,
				Branch:     a.Branch,
				Message:    a.Message,
			})
		},
	}
}

// committed is the data of commit.create; Branch is set when the branch was created first.
type committed struct {
	Branch *entities.Branch `json:"branch,omitempty"`
	Commit *entities.Commit `json:"commit"`
}

func commitHandlers() map[string]toolHandler {
	return map[string]toolHandler{
		"list": func(ctx context.Context, p providerRepo, a arguments) (any, error) {
			return p.ListCommits(ctx, a.Owner, a.Repo, entities.CommitListOptions{
				ListOptions: a.listOptions(),
				Ref:         a.Ref,
				Path:        a.Path,
			})
		},
		"get": func(ctx context.Context, p providerRepo, a arguments) (any, error) {
			return p.GetCommit(ctx, a.Owner, a.Repo, a.SHA)
		},
		"create": func(ctx context.Context, p providerRepo, a arguments) (any, error) {
			var result committed
			if a.CreateBranch {
				branch, err := p.CreateBranch(ctx, a.Owner, a.Repo, entities.CreateBranchInput{
					Name: a.Branch,
					From: a.From,
				})
				if err != nil {
					return nil, err
				}
				result.Branch = branch
			}
			commit, err := p.CreateCommit(ctx, a.Owner, a.Repo, entities.CreateCommitInput{
				Branch:  a.Branch,
				Message: a.Message,
				Tree:    a.Tree,
				Files:   a.Files,
			})
			if err != nil {
				return nil, err
			}
			result.Commit = commit
			return result, nil
		},
	}
}

func issueHandlers() map[string]toolHandler {
	return map[string]toolHandler{
		"list": func(ctx context.Context, p providerRepo, a arguments) (any, error) {
			return p.ListIssues(ctx, a.Owner, a.Repo, entities.IssueListOptions{
				ListOptions: a.listOptions(),
				State:       a.State,
				Labels:      a.Labels,
			})
		},
		"get": func(ctx context.Context, p providerRepo, a arguments) (any, error) {
			return p.GetIssue(ctx, a.Owner, a.Repo, a.Number)
		},
		"create": func(ctx context.Context, p providerRepo, a arguments) (any, error) {
			return p.CreateIssue(ctx, a.Owner, a.Repo, entities.CreateIssueInput{
				Title:     a.Title,
				Body:      a.Body,
				Labels:    a.Labels,
				Assignees: a.Assignees,
			})
		},
		"update": func(ctx context.Context, p providerRepo, a arguments) (any, error) {
			return p.UpdateIssue(ctx, a.Owner, a.Repo, a.Number, entities.UpdateIssueInput{
				Title:     optional(a.Title),
				Body:      optional(a.Body),
				State:     optional(a.State),
				Assignees: a.Assignees,
			})
		},
		"comment": func(ctx context.Context, p providerRepo, a arguments) (any, error) {
			return p.CreateIssueComment(ctx, a.Owner, a.Repo, a.Number, a.Body)
		},
		"list_comments": func(ctx context.Context, p providerRepo, a arguments) (any, error) {
			return p.ListIssueComments(ctx, a.Owner, a.Repo, a.Number, a.listOptions())
		},
		"search": func(ctx context.Context, p providerRepo, a arguments) (any, error) {
			return p.SearchIssues(ctx, a.Query, a.listOptions())
		},
	}
}

func pullRequestHandlers() map[string]toolHandler {
	return map[string]toolHandler{
		"list": func(ctx context.Context, p providerRepo, a arguments) (any, error) {
			return p.ListPullRequests(ctx, a.Owner, a.Repo, entities.PullRequestListOptions{
				ListOptions: a.listOptions(),
				State:       a.State,
			})
		},
		"get": func(ctx context.Context, p providerRepo, a arguments) (any, error) {
			return p.GetPullRequest(ctx, a.Owner, a.Repo, a.Number)
		},
		"create": func(ctx context.Context, p providerRepo, a arguments) (any, error) {
			return p.CreatePullRequest(ctx, a.Owner, a.Repo, entities.CreatePullRequestInput{
				Title: a.Title,
				Body:  a.Body,
				Head:  a.Head,
				Base:  a.Base,
				Draft: enabled(a.Draft),
			})
		},
		"update": func(ctx context.Context, p providerRepo, a arguments) (any, error) {
			return p.UpdatePullRequest(ctx, a.Owner, a.Repo, a.Number, entities.UpdatePullRequestInput{
				Title: optional(a.Title),
				Body:  optional(a.Body),
				State: optional(a.State),
				Base:  optional(a.Base),
			})
		},
		"merge": func(ctx context.Context, p providerRepo, a arguments) (any, error) {
			return p.MergePullRequest(ctx, a.Owner, a.Repo, a.Number, entities.MergeInput{
				Method:  a.Method,
				Title:   a.Title,
				Message: a.Message,
			})
		},
	}
}

func releaseInput(a arguments) entities.ReleaseInput {
	return entities.ReleaseInput{
		TagName:         a.TagName,
		Name:            a.Name,
		Body:            a.Body,
		TargetCommitish: a.TargetCommitish,
		Draft:           enabled(a.Draft),
		Prerelease:      enabled(a.Prerelease),
	}
}

func releaseUpdate(a arguments) entities.UpdateReleaseInput {
	return entities.UpdateReleaseInput{
		TagName:         optional(a.TagName),
		Name:            optional(a.Name),
		Body:            optional(a.Body),
		TargetCommitish: optional(a.TargetCommitish),
		Draft:           a.Draft,
		Prerelease:      a.Prerelease,
	}
}

func releaseHandlers() map[string]toolHandler {
	return map[string]toolHandler{
		"list": func(ctx context.Context, p providerRepo, a arguments) (any, error) {
			return p.ListReleases(ctx, a.Owner, a.Repo, a.listOptions())
		},
		"get": func(ctx context.Context, p providerRepo, a arguments) (any, error) {
			return p.GetRelease(ctx, a.Owner, a.Repo, a.ID)
		},
		"latest": func(ctx context.Context, p providerRepo, a arguments) (any, error) {
			return p.GetLatestRelease(ctx, a.Owner, a.Repo)
		},
		"create": func(ctx context.Context, p providerRepo, a arguments) (any, error) {
			return p.CreateRelease(ctx, a.Owner, a.Repo, releaseInput(a))
		},
		"update": func(ctx context.Context, p providerRepo, a arguments) (any, error) {
			return p.UpdateRelease(ctx, a.Owner, a.Repo, a.ID, releaseUpdate(a))
		},
		"delete": func(ctx context.Context, p providerRepo, a arguments) (any, error) {
			if err := p.DeleteRelease(ctx, a.Owner, a.Repo, a.ID); err != nil {
				return nil, err
			}
			return deleted{Deleted: true, Target: fmt.Sprintf("release %d", a.ID)}, nil
		},
	}
}

func tagHandlers() map[string]toolHandler {
	return map[string]toolHandler{
		"list": func(ctx context.Context, p providerRepo, a arguments) (any, error) {
			tags, err := p.ListTags(ctx, a.Owner, a.Repo, a.listOptions())
			if err != nil {
				return nil, err
			}
			if a.Sort == sortSemver {
				shared.SortTagsDescending(tags)
			}
			return tags, nil
		},
		"create": func(ctx context.Context, p providerRepo, a arguments) (any, error) {
			return p.CreateTag(ctx, a.Owner, a.Repo, entities.CreateTagInput{
				Name:    a.Tag,
				Target:  a.Target,
				Message: a.Message,
			})
		},
		"delete": func(ctx context.Context, p providerRepo, a arguments) (any, error) {
			if err := p.DeleteTag(ctx, a.Owner, a.Repo, a.Tag); err != nil {
				return nil, err
			}
			return deleted{Deleted: true, Target: a.Tag}, nil
		},
	}
}

func userHandlers() map[string]toolHandler {
	return map[string]toolHandler{
		"get": func(ctx context.Context, p providerRepo, a arguments) (any, error) {
			return p.GetUser(ctx, a.Username)
		},
		"current": func(ctx context.Context, p providerRepo, _ arguments) (any, error) {
			return p.GetCurrentUser(ctx)
		},
		"list": func(ctx context.Context, p providerRepo, a arguments) (any, error) {
			return p.ListUsers(ctx, a.listOptions())
		},
		"organizations": func(ctx context.Context, p providerRepo, a arguments) (any, error) {
			return p.GetUserOrganizations(ctx, a.Username)
		},
		"repositories": func(ctx context.Context, p providerRepo, a arguments) (any, error) {
			return p.GetUserRepositories(ctx, a.Username, a.listOptions())
		},
		"get_organization": func(ctx context.Context, p providerRepo, a arguments) (any, error) {
			return p.GetOrganization(ctx, a.Org)
		},
		"list_organizations": func(ctx context.Context, p providerRepo, a arguments) (any, error) {
			return p.ListOrganizations(ctx, a.listOptions())
		},
	}
}

func webhookInput(a arguments) entities.WebhookInput {
	return entities.WebhookInput{
		URL:         a.URL,
		ContentType: a.ContentType,
		Secret:      a.Secret,
		Events:      a.Events,
		Active:      a.Active,
	}
}

func webhookHandlers() map[string]toolHandler {
	return map[string]toolHandler{
		"list": func(ctx context.Context, p providerRepo, a arguments) (any, error) {
			return p.ListWebhooks(ctx, a.Owner, a.Repo, a.listOptions())
		},
		"get": func(ctx context.Context, p providerRepo, a arguments) (any, error) {
			return p.GetWebhook(ctx, a.Owner, a.Repo, a.ID)
		},
		"create": func(ctx context.Context, p providerRepo, a arguments) (any, error) {
			return p.CreateWebhook(ctx, a.Owner, a.Repo, webhookInput(a))
		},
		"update": func(ctx context.Context, p providerRepo, a arguments) (any, error) {
			return p.UpdateWebhook(ctx, a.Owner, a.Repo, a.ID, webhookInput(a))
		},
		"delete": func(ctx context.Context, p providerRepo, a arguments) (any, error) {
			if err := p.DeleteWebhook(ctx, a.Owner, a.Repo, a.ID); err != nil {
				return nil, err
			}
			return deleted{Deleted: true, Target: fmt.Sprintf("webhook %d", a.ID)}, nil
		},
	}
}

// dispatched is the data of workflow.trigger; the backends answer with an empty body.
type dispatched struct {
	Dispatched bool   `json:"dispatched"`
	WorkflowID string `json:"workflow_id"`
	Ref        string `json:"ref"`
}

func workflowHandlers() map[string]toolHandler {
	return map[string]toolHandler{
		"list": func(ctx context.Context, p providerRepo, a arguments) (any, error) {
			return p.ListWorkflows(ctx, a.Owner, a.Repo, a.listOptions())
		},
		"runs": func(ctx context.Context, p providerRepo, a arguments) (any, error) {
			return p.ListWorkflowRuns(ctx, a.Owner, a.Repo, entities.WorkflowRunListOptions{
				ListOptions: a.listOptions(),
				WorkflowID:  a.WorkflowID,
				Branch:      a.Branch,
				Status:      a.Status,
			})
		},
		"trigger": func(ctx context.Context, p providerRepo, a arguments) (any, error) {
			input := entities.TriggerWorkflowInput{Ref: a.Ref, Inputs: a.Inputs}
			if err := p.TriggerWorkflow(ctx, a.Owner, a.Repo, a.WorkflowID, input); err != nil {
				return nil, err
			}
			logger.Infof("Dispatched workflow %q on %s/%s at %q", a.WorkflowID, a.Owner, a.Repo, a.Ref)
			return dispatched{Dispatched: true, WorkflowID: a.WorkflowID, Ref: a.Ref}, nil
		},
	}
}
