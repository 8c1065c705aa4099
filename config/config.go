package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/rios0rios0/gitbridge/internal/domain/entities"
)

const (
	// DefaultGitHubAPIURL is used when a GitHub backend does not name its endpoint.
	DefaultGitHubAPIURL = "https://api.github.com"

	// PathEnv names the environment variable pointing at the config file.
	PathEnv = "GITBRIDGE_CONFIG"
)

// Settings is the top-level configuration for gitbridge.
type Settings struct {
	Default     string                   `yaml:"default"      env:"GITBRIDGE_DEFAULT_BACKEND"`
	Debug       bool                     `yaml:"debug"        env:"GITBRIDGE_DEBUG"`
	MetricsAddr string                   `yaml:"metrics_addr" env:"GITBRIDGE_METRICS_ADDR"`
	Log         LogSettings              `yaml:"log"`
	Backends    []entities.BackendConfig `yaml:"backends"`
}

// LogSettings selects where and how log lines are written.
type LogSettings struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"`
	Format string `yaml:"format" env:"LOG_FORMAT"`
	File   string `yaml:"file"   env:"LOG_FILE"`
}

// environment holds the backends that can be declared without a config file.
type environment struct {
	GitHubToken       string `env:"GITHUB_TOKEN"`
	GitHubAPIURL      string `env:"GITHUB_API_URL"      env-default:"https://api.github.com"`
	GitHubDisplayName string `env:"GITHUB_DISPLAY_NAME" env-default:"GitHub"`
	GiteaToken        string `env:"GITEA_TOKEN"`
	GiteaAPIURL       string `env:"GITEA_API_URL"`
	GiteaDisplayName  string `env:"GITEA_DISPLAY_NAME"  env-default:"Gitea"`
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`) //nolint:gochecknoglobals // compiled once

// Load reads the optional configuration file at path, applies environment
// overrides, adds the backends declared through the environment, resolves tokens
// and validates the result. An empty path loads from the environment only.
func Load(path string) (*Settings, error) {
	var settings Settings

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
		}
		if unmarshalErr := yaml.Unmarshal(data, &settings); unmarshalErr != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
		}
	}

	if err := cleanenv.ReadEnv(&settings); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	var env environment
	if err := cleanenv.ReadEnv(&env); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	settings.Backends = mergeEnvBackends(settings.Backends, env)

	for i := range settings.Backends {
		applyDefaults(&settings.Backends[i])
		settings.Backends[i].Token = resolveToken(settings.Backends[i].Token)
	}
	if settings.Debug && settings.Log.Level == "" {
		settings.Log.Level = "debug"
	}

	if validateErr := validate(&settings); validateErr != nil {
		return nil, validateErr
	}

	return &settings, nil
}

// ResolvePath picks the config file: the explicit flag value, then GITBRIDGE_CONFIG,
// then the first file found in the default locations. An empty result means
// environment-only configuration.
func ResolvePath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if fromEnv := os.Getenv(PathEnv); fromEnv != "" {
		return fromEnv
	}
	path, err := FindConfigFile()
	if err != nil {
		logger.Debugf("No config file found, using the environment only: %v", err)
		return ""
	}
	return path
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
		"configs",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".gitbridge.yaml",
		".gitbridge.yml",
		"gitbridge.yaml",
		"gitbridge.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// mergeEnvBackends adds a github and a gitea backend when their tokens are set and
// the file did not already declare a backend with that name.
func mergeEnvBackends(backends []entities.BackendConfig, env environment) []entities.BackendConfig {
	declared := make(map[string]bool, len(backends))
	for _, backend := range backends {
		declared[backend.Name] = true
	}

	if env.GitHubToken != "" && !declared[entities.BackendTypeGitHub] {
		backends = append(backends, entities.BackendConfig{
			Name:        entities.BackendTypeGitHub,
			Type:        entities.BackendTypeGitHub,
			APIURL:      env.GitHubAPIURL,
			Token:       env.GitHubToken,
			DisplayName: env.GitHubDisplayName,
		})
	}
	if env.GiteaToken != "" && !declared[entities.BackendTypeGitea] {
		backends = append(backends, entities.BackendConfig{
			Name:        entities.BackendTypeGitea,
			Type:        entities.BackendTypeGitea,
			APIURL:      env.GiteaAPIURL,
			Token:       env.GiteaToken,
			DisplayName: env.GiteaDisplayName,
		})
	}
	return backends
}

func applyDefaults(backend *entities.BackendConfig) {
	if backend.Type == entities.BackendTypeGitHub && backend.APIURL == "" {
		backend.APIURL = DefaultGitHubAPIURL
	}
	if backend.DisplayName == "" {
		switch backend.Type {
		case entities.BackendTypeGitHub:
			backend.DisplayName = "GitHub"
		case entities.BackendTypeGitea:
			backend.DisplayName = "Gitea"
		}
	}
}

// resolveToken expands environment variable references (${VAR}) and, if the
// resulting string is a path to an existing file, reads the token from the file.
func resolveToken(raw string) string {
	if raw == "" {
		return raw
	}

	// Expand ${ENV_VAR} references
	resolved := envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})

	// A token that names an existing file is read from it
	if _, statErr := os.Stat(resolved); statErr == nil {
		data, readErr := os.ReadFile(resolved)
		if readErr != nil {
			logger.Warnf("Failed to read token file %q: %v", resolved, readErr)
			return resolved
		}
		logger.Debugf("Read token from file %q", resolved)
		return strings.TrimSpace(string(data))
	}

	return resolved
}

// validate checks for required configuration values.
func validate(settings *Settings) error {
	if len(settings.Backends) == 0 {
		return errors.New(
			"at least one backend must be configured (set GITHUB_TOKEN, GITEA_TOKEN or use a config file)",
		)
	}

	names := make(map[string]bool, len(settings.Backends))
	for i, b := range settings.Backends {
		if b.Name == "" {
			return fmt.Errorf("backends[%d].name is required", i)
		}
		if names[b.Name] {
			return fmt.Errorf("backends[%d].name %q is used more than once", i, b.Name)
		}
		names[b.Name] = true

		if b.Type != entities.BackendTypeGitHub && b.Type != entities.BackendTypeGitea {
			return fmt.Errorf("backends[%d].type %q is not one of github, gitea", i, b.Type)
		}
		if b.Token == "" {
			return fmt.Errorf(
				"backends[%d].token is required (set inline, via ${ENV_VAR}, or as file path)",
				i,
			)
		}
		if b.APIURL == "" {
			return fmt.Errorf("backends[%d].api_url is required", i)
		}
	}

	if settings.Default != "" && !names[settings.Default] {
		return fmt.Errorf("default backend %q is not configured", settings.Default)
	}

	return nil
}
