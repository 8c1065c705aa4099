//go:build unit

package controllers_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/gitbridge/internal/domain/entities"
	"github.com/rios0rios0/gitbridge/internal/domain/repositories"
	"github.com/rios0rios0/gitbridge/internal/infrastructure/controllers"
	"github.com/rios0rios0/gitbridge/internal/infrastructure/httpclient"
	infraRepos "github.com/rios0rios0/gitbridge/internal/infrastructure/repositories"
	commanddoubles "github.com/rios0rios0/gitbridge/test/domain/commanddoubles"
	doubles "github.com/rios0rios0/gitbridge/test/infrastructure/repositorydoubles"
)

const configYAML = `default: gitea
backends:
  - name: github
    type: github
    api_url: https://api.github.com
    token: ghp-test
  - name: gitea
    type: gitea
    api_url: https://git.example.com
    token: gitea-test
    display_name: Forge
`

func newBootstrap(t *testing.T) *controllers.Bootstrap {
	t.Helper()

	registry := infraRepos.NewProviderRegistry()
	factory := func(config entities.BackendConfig, _ ...httpclient.Option) repositories.ProviderRepository {
		return doubles.NewSpyProviderRepository(config.Label())
	}
	registry.Register(entities.BackendTypeGitHub, factory)
	registry.Register(entities.BackendTypeGitea, factory)
	return controllers.NewBootstrap(registry, nil)
}

func newCommand(t *testing.T, flags func(cmd *cobra.Command)) (*cobra.Command, *bytes.Buffer) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "gitbridge.yaml")
	require.NoError(t, os.WriteFile(path, []byte(configYAML), 0o600))

	//nolint:exhaustruct // Minimal Command initialization with required fields only
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("config", path, "")
	if flags != nil {
		flags(cmd)
	}
	output := &bytes.Buffer{}
	cmd.SetOut(output)
	return cmd, output
}

func TestBackendsController(t *testing.T) {
	t.Parallel()

	t.Run("should list the configured backends and mark the default", func(t *testing.T) {
		t.Parallel()

		// given
		controller := controllers.NewBackendsController(newBootstrap(t))
		cmd, output := newCommand(t, nil)

		// when
		controller.Execute(cmd, nil)

		// then
		printed := output.String()
		assert.Contains(t, printed, "NAME")
		assert.Contains(t, printed, "gitea *")
		assert.Contains(t, printed, "https://git.example.com")
		assert.Contains(t, printed, "Forge")
		assert.NotContains(t, printed, "gitea-test")
		assert.NotContains(t, printed, "ghp-test")
	})
}

func TestCallController(t *testing.T) {
	t.Parallel()

	t.Run("should merge the flags into the arguments and print the envelope", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubToolCommand{
			Result: entities.NewSuccessResult("repository.get", "repository.get succeeded on Forge", nil),
		}
		controller := controllers.NewCallController(newBootstrap(t), stub)
		cmd, output := newCommand(t, controller.AddFlags)
		require.NoError(t, cmd.Flags().Set("action", "get"))
		require.NoError(t, cmd.Flags().Set("provider", "gitea"))
		require.NoError(t, cmd.Flags().Set("args", `{"owner":"octo","repo":"demo"}`))

		// when
		controller.Execute(cmd, []string{"repository"})

		// then
		assert.Equal(t, 1, stub.ExecuteCallCount)
		assert.Equal(t, "repository", stub.LastTool)
		assert.Equal(t, map[string]any{
			"action":   "get",
			"provider": "gitea",
			"owner":    "octo",
			"repo":     "demo",
		}, stub.LastValues)

		var envelope map[string]any
		require.NoError(t, json.Unmarshal(output.Bytes(), &envelope))
		assert.Equal(t, true, envelope["success"])
		assert.Equal(t, "repository.get", envelope["action"])
	})

	t.Run("should not call the tool when the arguments are not a JSON object", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubToolCommand{}
		controller := controllers.NewCallController(newBootstrap(t), stub)
		cmd, output := newCommand(t, controller.AddFlags)
		require.NoError(t, cmd.Flags().Set("args", `["owner"]`))

		// when
		controller.Execute(cmd, []string{"repository"})

		// then
		assert.Zero(t, stub.ExecuteCallCount)
		assert.Empty(t, output.String())
	})

	t.Run("should require exactly one tool name", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubToolCommand{}
		controller := controllers.NewCallController(newBootstrap(t), stub)
		cmd, _ := newCommand(t, controller.AddFlags)

		// when
		controller.Execute(cmd, nil)

		// then
		assert.Zero(t, stub.ExecuteCallCount)
	})

	t.Run("should list the tools in the help text", func(t *testing.T) {
		t.Parallel()

		// given
		controller := controllers.NewCallController(newBootstrap(t), &commanddoubles.StubToolCommand{})

		// when
		bind := controller.GetBind()

		// then
		assert.Equal(t, "call <tool>", bind.Use)
		assert.Contains(t, bind.Long, "pull_request")
		assert.Contains(t, bind.Long, "workflow")
	})
}

func TestBootstrap(t *testing.T) {
	t.Parallel()

	t.Run("should configure the registry from the config file", func(t *testing.T) {
		t.Parallel()

		// given
		bootstrap := newBootstrap(t)
		cmd, _ := newCommand(t, nil)

		// when
		settings, err := bootstrap.Load(cmd)

		// then
		require.NoError(t, err)
		assert.Equal(t, "gitea", bootstrap.Registry().DefaultName())
		assert.Contains(t, bootstrap.Registry().Names(), "github")
		provider, err := bootstrap.Registry().Resolve("")
		require.NoError(t, err)
		assert.Equal(t, "Forge", provider.DisplayName())
		assert.NotEmpty(t, settings.Backends)
	})

	t.Run("should fail when the config file does not exist", func(t *testing.T) {
		t.Parallel()

		// given
		bootstrap := newBootstrap(t)
		cmd, _ := newCommand(t, nil)
		require.NoError(t, cmd.Flags().Set("config", filepath.Join(t.TempDir(), "missing.yaml")))

		// when
		_, err := bootstrap.Load(cmd)

		// then
		require.Error(t, err)
	})
}
