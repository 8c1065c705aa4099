package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/gitbridge/internal/domain/commands"
	"github.com/rios0rios0/gitbridge/internal/domain/entities"
)

// CallController handles the "call" subcommand: one tool call from the command line.
type CallController struct {
	bootstrap *Bootstrap
	command   commands.Tool
}

// NewCallController creates a new CallController.
func NewCallController(bootstrap *Bootstrap, command commands.Tool) *CallController {
	return &CallController{bootstrap: bootstrap, command: command}
}

// GetBind returns the Cobra command metadata for the call controller.
func (it *CallController) GetBind() entities.ControllerBind {
	names := make([]string, 0, len(it.command.Definitions()))
	for _, definition := range it.command.Definitions() {
		names = append(names, definition.Name)
	}
	return entities.ControllerBind{
		Use:   "call <tool>",
		Short: "Run one tool call and print the result envelope",
		Long: fmt.Sprintf(`Run a single tool call against a configured backend and print the JSON
envelope {success, action, message, data, error} to stdout.

Tools: %s

Example:
  gitbridge call repository --action get --args '{"owner":"octo","repo":"demo"}'`,
			strings.Join(names, ", ")),
	}
}

// Execute decodes the arguments, runs the tool and prints the envelope.
func (it *CallController) Execute(cmd *cobra.Command, arguments []string) {
	if len(arguments) != 1 {
		logger.Errorf("expected exactly one tool name, got %d arguments", len(arguments))
		return
	}

	action, _ := cmd.Flags().GetString("action")
	rawArgs, _ := cmd.Flags().GetString("args")
	provider, _ := cmd.Flags().GetString("provider")

	values := map[string]any{}
	if rawArgs != "" {
		if err := json.Unmarshal([]byte(rawArgs), &values); err != nil {
			logger.Errorf("--args must be a JSON object: %v", err)
			return
		}
	}
	if action != "" {
		values["action"] = action
	}
	if provider != "" {
		values["provider"] = provider
	}

	if _, err := it.bootstrap.Load(cmd); err != nil {
		logger.Errorf("failed to load config: %v", err)
		return
	}

	result := it.command.Execute(context.Background(), arguments[0], values)

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		logger.Errorf("failed to print result: %v", err)
		return
	}
	if !result.Success {
		logger.Errorf("%s: %s", result.Action, result.Error)
	}
}

// AddFlags adds the call-specific flags to the given Cobra command.
func (it *CallController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("action", "a", "", "Action of the tool to run")
	cmd.Flags().String("args", "", "Tool arguments as a JSON object")
	cmd.Flags().StringP("provider", "p", "", "Backend name (default: the configured default backend)")
}
