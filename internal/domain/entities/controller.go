package entities

import "github.com/spf13/cobra"

// ControllerBind is the cobra metadata of a subcommand.
type ControllerBind struct {
	Use   string
	Short string
	Long  string
}

// Controller is a CLI subcommand.
type Controller interface {
	GetBind() ControllerBind
	Execute(command *cobra.Command, arguments []string)
}

// FlagsController is implemented by controllers that declare their own flags.
type FlagsController interface {
	AddFlags(command *cobra.Command)
}
