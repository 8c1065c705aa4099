package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rios0rios0/gitbridge/internal/domain/entities"
)

// arguments is the union of every tool parameter. Each handler reads the fields its
// action declares.
type arguments struct {
	Action   string `json:"action"`
	Provider string `json:"provider"`

	Owner string `json:"owner"`
	Repo  string `json:"repo"`
	Page  int    `json:"page"`
	Limit int    `json:"limit"`

	Name          string `json:"name"`
	Description   string `json:"description"`
	Private       *bool  `json:"private"`
	AutoInit      bool   `json:"auto_init"`
	DefaultBranch string `json:"default_branch"`
	Organization  string `json:"organization"`
	NewOwner      string `json:"new_owner"`
	Query         string `json:"query"`

	Branch string `json:"branch"`
	From   string `json:"from"`
	Base   string `json:"base"`
	Head   string `json:"head"`

	Path      string `json:"path"`
	Ref       string `json:"ref"`
	Content   string `json:"content"`
	Message   string `json:"message"`
	SHA       string `json:"sha"`
	LocalPath string `json:"local_path"`

	Tree         string                `json:"tree"`
	Files        []entities.FileChange `json:"files"`
	CreateBranch bool                  `json:"create_branch"`

	Number    int      `json:"number"`
	Title     string   `json:"title"`
	Body      string   `json:"body"`
	State     string   `json:"state"`
	Labels    []string `json:"labels"`
	Assignees []string `json:"assignees"`
	Draft     *bool    `json:"draft"`
	Method    string   `json:"method"`

	ID              int64  `json:"id"`
	TagName         string `json:"tag_name"`
	TargetCommitish string `json:"target_commitish"`
	Prerelease      *bool  `json:"prerelease"`
	Tag             string `json:"tag"`
	Target          string `json:"target"`
	Sort            string `json:"sort"`

	Username string `json:"username"`
	Org      string `json:"org"`

	URL         string   `json:"url"`
	ContentType string   `json:"content_type"`
	Secret      string   `json:"secret"`
	Events      []string `json:"events"`
	Active      *bool    `json:"active"`

	WorkflowID string            `json:"workflow_id"`
	Status     string            `json:"status"`
	Inputs     map[string]string `json:"inputs"`
}

func decodeArguments(raw []byte) (arguments, error) {
	var args arguments
	if err := json.Unmarshal(raw, &args); err != nil {
		return arguments{}, fmt.Errorf("failed to decode arguments: %w", err)
	}
	return args, nil
}

func (a arguments) listOptions() entities.ListOptions {
	return entities.ListOptions{Page: a.Page, Limit: a.Limit}
}

// missing returns the names of required parameters that are absent, null, zero or empty.
func missing(values map[string]any, names []string) []string {
	var absent []string
	for _, name := range names {
		if isEmpty(values[name]) {
			absent = append(absent, name)
		}
	}
	return absent
}

func isEmpty(value any) bool {
	switch typed := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(typed) == ""
	case float64:
		return typed == 0
	case json.Number:
		return typed.String() == "0"
	case []any:
		return len(typed) == 0
	case map[string]any:
		return len(typed) == 0
	default:
		return false
	}
}

// enabled reads an optional flag, absent meaning false.
func enabled(flag *bool) bool {
	return flag != nil && *flag
}

// optional maps an empty string to nil so that patches leave the field untouched.
func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
