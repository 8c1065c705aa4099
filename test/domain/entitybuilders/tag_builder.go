//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	testkit "github.com/rios0rios0/testkit/pkg/test"

	"github.com/rios0rios0/gitbridge/internal/domain/entities"
)

// TagBuilder helps create test tags with a fluent interface.
type TagBuilder struct {
	*testkit.BaseBuilder
	name      string
	commitSHA string
	message   string
}

// NewTagBuilder creates a new tag builder with sensible defaults.
func NewTagBuilder() *TagBuilder {
	return &TagBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		name:        "v1.0.0",
		commitSHA:   "c0ffee",
	}
}

// WithName sets the tag name.
func (b *TagBuilder) WithName(name string) *TagBuilder {
	b.name = name
	return b
}

// WithCommitSHA sets the commit the tag points at.
func (b *TagBuilder) WithCommitSHA(sha string) *TagBuilder {
	b.commitSHA = sha
	return b
}

// WithMessage makes the tag annotated.
func (b *TagBuilder) WithMessage(message string) *TagBuilder {
	b.message = message
	return b
}

// Build creates the tag (satisfies testkit.Builder interface).
func (b *TagBuilder) Build() interface{} {
	return b.BuildTag()
}

// BuildTag creates the tag with a concrete return type.
func (b *TagBuilder) BuildTag() entities.Tag {
	return entities.Tag{
		Name:      b.name,
		CommitSHA: b.commitSHA,
		Message:   b.message,
	}
}

// BuildTags creates one tag per name, sharing the other fields.
func (b *TagBuilder) BuildTags(names ...string) []entities.Tag {
	tags := make([]entities.Tag, 0, len(names))
	for _, name := range names {
		tag := b.BuildTag()
		tag.Name = name
		tags = append(tags, tag)
	}
	return tags
}

// Reset clears the builder state, allowing it to be reused.
func (b *TagBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.name = "v1.0.0"
	b.commitSHA = "c0ffee"
	b.message = ""
	return b
}

// Clone creates a deep copy of the TagBuilder.
func (b *TagBuilder) Clone() testkit.Builder {
	return &TagBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		name:        b.name,
		commitSHA:   b.commitSHA,
		message:     b.message,
	}
}
