package controllers

import (
	"fmt"
	"text/tabwriter"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/gitbridge/internal/domain/entities"
)

// BackendsController handles the "backends" subcommand.
type BackendsController struct {
	bootstrap *Bootstrap
}

// NewBackendsController creates a new BackendsController.
func NewBackendsController(bootstrap *Bootstrap) *BackendsController {
	return &BackendsController{bootstrap: bootstrap}
}

// GetBind returns the Cobra command metadata for the backends controller.
func (it *BackendsController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "backends",
		Short: "List the configured backends",
		Long: `Load the configuration and print every configured backend with its type,
API URL and display name. The default backend is marked with an asterisk.
Tokens are never printed.`,
	}
}

// Execute prints the configured backends.
func (it *BackendsController) Execute(cmd *cobra.Command, _ []string) {
	settings, err := it.bootstrap.Load(cmd)
	if err != nil {
		logger.Errorf("failed to load config: %v", err)
		return
	}

	defaultName := it.bootstrap.Registry().DefaultName()
	writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(writer, "NAME\tTYPE\tAPI URL\tDISPLAY NAME")
	for _, backend := range settings.Backends {
		name := backend.Name
		if name == defaultName {
			name += " *"
		}
		_, _ = fmt.Fprintf(writer, "%s\t%s\t%s\t%s\n", name, backend.Type, backend.APIURL, backend.Label())
	}
	if flushErr := writer.Flush(); flushErr != nil {
		logger.Errorf("failed to print backends: %v", flushErr)
	}
}
