package entities

import "github.com/spf13/cobra"

// ControllerBind describes the cobra command a controller is mounted on.
type ControllerBind struct {
	Use   string
	Short string
	Long  string
}

// Controller is a CLI entry point.
type Controller interface {
	GetBind() ControllerBind
	Execute(command *cobra.Command, arguments []string)
}

// FlagController is a controller that declares its own flags.
type FlagController interface {
	Controller
	AddFlags(command *cobra.Command)
}
