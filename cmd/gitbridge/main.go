package main

import (
	"os"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/gitbridge/internal"
	"github.com/rios0rios0/gitbridge/internal/domain/entities"
	"github.com/rios0rios0/gitbridge/internal/infrastructure/mcpserver"
)

func buildRootCommand() *cobra.Command {
	//nolint:exhaustruct // Minimal Command initialization with required fields only
	cmd := &cobra.Command{
		Use:     "gitbridge",
		Short:   "Uniform Git hosting tools over GitHub and Gitea",
		Version: mcpserver.Version,
		Long: `Expose repositories, branches, files, commits, issues, pull requests, releases,
tags, users, webhooks and workflows of GitHub and Gitea backends through one
provider-neutral tool interface.

Usage modes:
  gitbridge serve                          MCP server on stdio
  gitbridge call <tool> --action <action>  Run a single tool call
  gitbridge backends                       List the configured backends`,
		SilenceUsage: true,
	}

	// Global persistent flags
	cmd.PersistentFlags().StringP("config", "c", "",
		"Path to config file (default: $GITBRIDGE_CONFIG or auto-detect)")

	return cmd
}

func addSubcommands(rootCmd *cobra.Command, appContext *internal.AppInternal) {
	for _, controller := range appContext.GetControllers() {
		bind := controller.GetBind()
		ctrl := controller // capture for closure
		//nolint:exhaustruct // Minimal Command initialization with required fields only
		subCmd := &cobra.Command{
			Use:   bind.Use,
			Short: bind.Short,
			Long:  bind.Long,
			Run: func(command *cobra.Command, arguments []string) {
				ctrl.Execute(command, arguments)
			},
		}

		// Add controller-specific flags
		if fc, ok := ctrl.(entities.FlagsController); ok {
			fc.AddFlags(subCmd)
		}

		rootCmd.AddCommand(subCmd)
	}
}

func main() {
	//nolint:exhaustruct // Minimal TextFormatter initialization with required fields only
	logger.SetFormatter(&logger.TextFormatter{
		FullTimestamp: true,
	})
	logger.SetOutput(os.Stderr)

	cobraRoot := buildRootCommand()

	// Add all subcommands
	appContext := injectAppContext()
	addSubcommands(cobraRoot, appContext)

	if err := cobraRoot.Execute(); err != nil {
		logger.Fatalf("Error executing 'gitbridge': %s", err)
	}
}
