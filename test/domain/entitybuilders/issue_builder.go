//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	testkit "github.com/rios0rios0/testkit/pkg/test"

	"github.com/rios0rios0/gitbridge/internal/domain/entities"
)

// IssueBuilder helps create test issues with a fluent interface.
type IssueBuilder struct {
	*testkit.BaseBuilder
	number int
	title  string
	state  string
	labels []string
	author string
}

// NewIssueBuilder creates a new issue builder with sensible defaults.
func NewIssueBuilder() *IssueBuilder {
	return &IssueBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		number:      1,
		title:       "test issue",
		state:       "open",
		author:      "octo",
	}
}

// WithNumber sets the issue number.
func (b *IssueBuilder) WithNumber(number int) *IssueBuilder {
	b.number = number
	return b
}

// WithTitle sets the issue title.
func (b *IssueBuilder) WithTitle(title string) *IssueBuilder {
	b.title = title
	return b
}

// WithState sets the issue state.
func (b *IssueBuilder) WithState(state string) *IssueBuilder {
	b.state = state
	return b
}

// WithLabels sets the label names.
func (b *IssueBuilder) WithLabels(labels ...string) *IssueBuilder {
	b.labels = append([]string(nil), labels...)
	return b
}

// WithAuthor sets the author login.
func (b *IssueBuilder) WithAuthor(author string) *IssueBuilder {
	b.author = author
	return b
}

// Build creates the issue (satisfies testkit.Builder interface).
func (b *IssueBuilder) Build() interface{} {
	return b.BuildIssue()
}

// BuildIssue creates the issue with a concrete return type.
func (b *IssueBuilder) BuildIssue() entities.Issue {
	return entities.Issue{
		ID:     int64(b.number),
		Number: b.number,
		Title:  b.title,
		State:  b.state,
		Labels: append([]string(nil), b.labels...),
		Author: b.author,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *IssueBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.number = 1
	b.title = "test issue"
	b.state = "open"
	b.labels = nil
	b.author = "octo"
	return b
}

// Clone creates a deep copy of the IssueBuilder.
func (b *IssueBuilder) Clone() testkit.Builder {
	return &IssueBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		number:      b.number,
		title:       b.title,
		state:       b.state,
		labels:      append([]string(nil), b.labels...),
		author:      b.author,
	}
}
