package entities

const (
	// BackendTypeGitHub selects the GitHub REST v3 adapter.
	BackendTypeGitHub = "github"
	// BackendTypeGitea selects the Gitea /api/v1 adapter.
	BackendTypeGitea = "gitea"
)

// BackendConfig describes one configured backend. Adapters copy it at construction
// and never change it afterwards.
type BackendConfig struct {
	Name        string `yaml:"name"         json:"name"`
	Type        string `yaml:"type"         json:"type"`
	APIURL      string `yaml:"api_url"      json:"api_url"`
	Token       string `yaml:"token"        json:"-"`
	DisplayName string `yaml:"display_name" json:"display_name"`
}

// Label returns the display name, falling back to the configured name.
func (c BackendConfig) Label() string {
	if c.DisplayName != "" {
		return c.DisplayName
	}
	return c.Name
}
