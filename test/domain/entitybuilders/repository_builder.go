//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"encoding/json"

	testkit "github.com/rios0rios0/testkit/pkg/test"

	"github.com/rios0rios0/gitbridge/internal/domain/entities"
)

// RepositoryBuilder helps create test repositories with a fluent interface.
type RepositoryBuilder struct {
	*testkit.BaseBuilder
	id            int64
	owner         string
	ownerType     string
	name          string
	private       bool
	defaultBranch string
}

// NewRepositoryBuilder creates a new repository builder with sensible defaults.
func NewRepositoryBuilder() *RepositoryBuilder {
	return &RepositoryBuilder{
		BaseBuilder:   testkit.NewBaseBuilder(),
		id:            1,
		owner:         "octo",
		ownerType:     entities.DefaultOwnerType,
		name:          "demo",
		defaultBranch: "main",
	}
}

// WithID sets the repository ID.
func (b *RepositoryBuilder) WithID(id int64) *RepositoryBuilder {
	b.id = id
	return b
}

// WithOwner sets the owner login.
func (b *RepositoryBuilder) WithOwner(owner string) *RepositoryBuilder {
	b.owner = owner
	return b
}

// WithOwnerType sets the owner type, e.g. Organization.
func (b *RepositoryBuilder) WithOwnerType(kind string) *RepositoryBuilder {
	b.ownerType = kind
	return b
}

// WithName sets the repository name.
func (b *RepositoryBuilder) WithName(name string) *RepositoryBuilder {
	b.name = name
	return b
}

// WithPrivate marks the repository private.
func (b *RepositoryBuilder) WithPrivate(private bool) *RepositoryBuilder {
	b.private = private
	return b
}

// WithDefaultBranch sets the default branch.
func (b *RepositoryBuilder) WithDefaultBranch(branch string) *RepositoryBuilder {
	b.defaultBranch = branch
	return b
}

// Build creates the repository (satisfies testkit.Builder interface).
func (b *RepositoryBuilder) Build() interface{} {
	return b.BuildRepository()
}

// BuildRepository creates the repository with a concrete return type. Raw holds the
// payload a backend would have sent for it.
func (b *RepositoryBuilder) BuildRepository() entities.Repository {
	repository := entities.Repository{
		ID:            b.id,
		Name:          b.name,
		FullName:      b.owner + "/" + b.name,
		Owner:         entities.Owner{Login: b.owner, Type: b.ownerType},
		Private:       b.private,
		DefaultBranch: b.defaultBranch,
	}
	raw, _ := json.Marshal(map[string]any{
		"id":             b.id,
		"name":           b.name,
		"full_name":      repository.FullName,
		"owner":          map[string]any{"login": b.owner, "type": b.ownerType},
		"private":        b.private,
		"default_branch": b.defaultBranch,
	})
	repository.Raw = raw
	return repository
}

// Reset clears the builder state, allowing it to be reused.
func (b *RepositoryBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.id = 1
	b.owner = "octo"
	b.ownerType = entities.DefaultOwnerType
	b.name = "demo"
	b.private = false
	b.defaultBranch = "main"
	return b
}

// Clone creates a deep copy of the RepositoryBuilder.
func (b *RepositoryBuilder) Clone() testkit.Builder {
	return &RepositoryBuilder{
		BaseBuilder:   b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		id:            b.id,
		owner:         b.owner,
		ownerType:     b.ownerType,
		name:          b.name,
		private:       b.private,
		defaultBranch: b.defaultBranch,
	}
}
