//go:build unit

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddSubcommands(t *testing.T) {
	t.Parallel()

	t.Run("should add one subcommand per controller with its flags", func(t *testing.T) {
		t.Parallel()

		// given
		root := buildRootCommand()

		// when
		addSubcommands(root, injectAppContext())

		// then
		call, _, err := root.Find([]string{"call"})
		require.NoError(t, err)
		assert.NotNil(t, call.Flags().Lookup("action"))
		assert.NotNil(t, call.Flags().Lookup("args"))

		serve, _, err := root.Find([]string{"serve"})
		require.NoError(t, err)
		assert.NotNil(t, serve.Flags().Lookup("metrics-addr"))

		backends, _, err := root.Find([]string{"backends"})
		require.NoError(t, err)
		assert.Equal(t, "backends", backends.Name())
		assert.NotNil(t, root.PersistentFlags().Lookup("config"))
	})
}
