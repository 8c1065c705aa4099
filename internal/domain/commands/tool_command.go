package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/gitbridge/internal/domain/entities"
	"github.com/rios0rios0/gitbridge/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/gitbridge/internal/infrastructure/repositories"
)

const (
	schemaBaseURL = "https://gitbridge.local/tools/"
	toolLayer     = "gitbridge"
)

// Tool is the interface for the tool dispatcher.
type Tool interface {
	Definitions() []ToolDefinition
	Execute(ctx context.Context, tool string, values map[string]any) entities.Result
}

type toolHandler func(ctx context.Context, provider repositories.ProviderRepository, args arguments) (any, error)

// ToolCommand validates a tool call, resolves the backend and runs the action.
// It never returns an error: every failure becomes a failed Result.
type ToolCommand struct {
	registry    *infraRepos.ProviderRegistry
	uploader    Upload
	definitions map[string]ToolDefinition
	schemas     map[string]*jsonschema.Schema
	handlers    map[string]map[string]toolHandler
}

// NewToolCommand compiles the schema of every tool definition.
func NewToolCommand(registry *infraRepos.ProviderRegistry, uploader Upload) (*ToolCommand, error) {
	command := &ToolCommand{
		registry:    registry,
		uploader:    uploader,
		definitions: make(map[string]ToolDefinition),
		schemas:     make(map[string]*jsonschema.Schema),
	}
	command.handlers = command.handlerTable()

	compiler := jsonschema.NewCompiler()
	for _, definition := range Definitions() {
		location := schemaBaseURL + definition.Name + ".json"
		document, err := schemaDocument(definition)
		if err != nil {
			return nil, fmt.Errorf("failed to build schema of tool %q: %w", definition.Name, err)
		}
		if err = compiler.AddResource(location, document); err != nil {
			return nil, fmt.Errorf("failed to add schema of tool %q: %w", definition.Name, err)
		}
		schema, err := compiler.Compile(location)
		if err != nil {
			return nil, fmt.Errorf("failed to compile schema of tool %q: %w", definition.Name, err)
		}
		command.definitions[definition.Name] = definition
		command.schemas[definition.Name] = schema
	}
	return command, nil
}

func schemaDocument(definition ToolDefinition) (any, error) {
	data, err := json.Marshal(definition.Schema())
	if err != nil {
		return nil, err
	}
	return jsonschema.UnmarshalJSON(bytes.NewReader(data))
}

// Definitions returns the tools this command can run.
func (it *ToolCommand) Definitions() []ToolDefinition {
	return Definitions()
}

// Execute runs one tool call. The action name of the Result is "<tool>.<action>".
func (it *ToolCommand) Execute(ctx context.Context, tool string, values map[string]any) entities.Result {
	if values == nil {
		values = map[string]any{}
	}
	action, _ := values["action"].(string)
	name := tool + "." + action

	definition, ok := it.definitions[tool]
	if !ok {
		return invalidInput(name, fmt.Errorf("unknown tool %q", tool))
	}

	payload, err := json.Marshal(values)
	if err != nil {
		return invalidInput(name, fmt.Errorf("failed to encode arguments: %w", err))
	}
	if err = it.validate(tool, payload); err != nil {
		return invalidInput(name, err)
	}
	if absent := missing(values, definition.Required[action]); len(absent) > 0 {
		return invalidInput(name, fmt.Errorf("missing required parameters: %s", strings.Join(absent, ", ")))
	}

	args, err := decodeArguments(payload)
	if err != nil {
		return invalidInput(name, err)
	}

	handler, ok := it.handlers[tool][action]
	if !ok {
		return invalidInput(name, fmt.Errorf("unknown action %q for tool %q", action, tool))
	}

	provider, err := it.registry.Resolve(args.Provider)
	if err != nil {
		return invalidInput(name, err)
	}

	fields := logger.Fields{"tool": tool, "action": action, "provider": provider.Name()}
	logger.WithFields(fields).Debug("running tool call")

	data, err := handler(ctx, provider, args)
	if err != nil {
		logger.WithFields(fields).Warnf("tool call failed: %v", err)
		return entities.NewFailureResult(name, fmt.Sprintf("%s failed on %s", name, provider.DisplayName()), err)
	}
	return entities.NewSuccessResult(name, fmt.Sprintf("%s succeeded on %s", name, provider.DisplayName()), data)
}

func (it *ToolCommand) validate(tool string, payload []byte) error {
	instance, err := jsonschema.UnmarshalJSON(bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to decode arguments: %w", err)
	}
	if err = it.schemas[tool].Validate(instance); err != nil {
		var validationErr *jsonschema.ValidationError
		if errors.As(err, &validationErr) {
			return fmt.Errorf("invalid arguments: %s", strings.TrimSpace(validationErr.Error()))
		}
		return err
	}
	return nil
}

func invalidInput(action string, cause error) entities.Result {
	return entities.NewFailureResult(action, "invalid arguments", entities.NewInvalidInputError(toolLayer, cause))
}
