package main

import (
	"os"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/upgit/internal"
	"github.com/rios0rios0/upgit/internal/domain/entities"
	"github.com/rios0rios0/upgit/internal/infrastructure/controllers"
)

func buildRootCommand(updateController *controllers.UpdateController) *cobra.Command {
	//nolint:exhaustruct // Minimal Command initialization with required fields only
	cmd := &cobra.Command{
		Use:   "upgit [git-dirs...]",
		Short: "Concurrently fast-forward many git clones",
		Long: `Bulk update every git clone found in the given directories, asking for
credentials only when a remote needs them and reusing them across related clones.

Usage modes:
  upgit ~/src ~/work      Update every clone directly inside these directories
  upgit update ...        Same as above
  upgit keys --ssh KEY    Check SSH key passphrases without updating anything`,
		Args: cobra.ArbitraryArgs,
		Run: func(command *cobra.Command, args []string) {
			updateController.Execute(command, args)
		},
	}

	// Global persistent flags
	controllers.AddPersistentFlags(cmd)
	updateController.AddFlags(cmd)

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
		if fc, ok := ctrl.(entities.FlagController); ok {
			fc.AddFlags(subCmd)
		}

		rootCmd.AddCommand(subCmd)
	}
}

func main() {
	//nolint:exhaustruct // Minimal TextFormatter initialization with required fields only
	logger.SetFormatter(&logger.TextFormatter{
		ForceColors:   true,
		FullTimestamp: true,
	})
	if os.Getenv("DEBUG") == "true" {
		logger.SetLevel(logger.DebugLevel)
	}

	// Inject controllers via DIG
	appContext := injectAppContext()
	cobraRoot := buildRootCommand(appContext.GetUpdateController())

	// Add all subcommands
	addSubcommands(cobraRoot, appContext)

	if err := cobraRoot.Execute(); err != nil {
		logger.Fatalf("Error executing 'upgit': %s", err)
	}
}
