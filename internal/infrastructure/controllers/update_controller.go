package controllers

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/google/uuid"
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/upgit/internal/domain/commands"
	"github.com/rios0rios0/upgit/internal/domain/entities"
)

// UpdateController handles the "update" subcommand, which is also what the bare root command runs.
type UpdateController struct {
	command commands.Update
	loader  *SettingsLoader
}

// NewUpdateController creates a new UpdateController.
func NewUpdateController(command commands.Update, loader *SettingsLoader) *UpdateController {
	return &UpdateController{command: command, loader: loader}
}

// GetBind returns the Cobra command metadata for the update controller.
func (it *UpdateController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "update [git-dirs...]",
		Short: "Fast-forward every clone found in the given directories",
		Long: `Fetch and fast-forward every git clone found directly inside the given
directories, many at a time.

Credentials are asked for only when needed and then reused for related
clones according to the sharing policy (--share):
  never         each clone negotiates its own credentials
  defaults      also offer the --default-ssh / --default-plain credentials
  duplicate     also reuse credentials of other clones of the same repository
  organization  also reuse credentials within the same organization
  identity      also reuse credentials for the same user on the same host`,
	}
}

// Execute loads the settings and runs one update cycle.
func (it *UpdateController) Execute(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	verbose, _ := cmd.Flags().GetBool(flagVerbose)

	settings, err := it.loadSettings(cmd, args)
	if err != nil {
		logger.Errorf("Invalid configuration: %v", err)
		return
	}

	runID := uuid.NewString()
	logger.WithField("run_id", runID).Debugf("Starting upgit run")

	upgits, err := it.command.Execute(ctx, settings, commands.UpdateRunOptions{
		Verbose: verbose,
		RunID:   runID,
	})
	if err != nil {
		logger.Errorf("Update failed: %v", err)
		return
	}
	logger.WithField("run_id", runID).Debugf("Finished %d clones", len(upgits))
}

// AddFlags adds the update-specific flags to the given Cobra command.
func (it *UpdateController) AddFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.String(flagShare, "",
		fmt.Sprintf("Credential sharing policy: never, defaults, duplicate, organization or identity (default %s)",
			entities.DefaultSharePolicy))
	flags.String(flagSSHKeyPath, "", "SSH key assumed for SSH remotes (default ~/.ssh/id_rsa)")
	flags.Bool(flagDefaultSSH, false, "Ask once for the passphrase of the default SSH key")
	flags.Bool(flagDefaultPlain, false, "Ask once for a default HTTPS password")
	flags.Bool(flagDefaultPlainKeyring, false, "Read the default HTTPS password from the OS keyring")
	flags.StringSlice(flagSSH, nil, "SSH key to verify up front (repeatable)")
	flags.StringSlice(flagPlain, nil, "Remote URL whose password is asked up front (repeatable)")
	flags.Int(flagConcurrency, entities.DefaultConcurrency, "Maximum number of clones updated at once")
	flags.String(flagMerge, string(entities.MergeFastForwardOnly),
		"What to do with diverged clones: ff-only or merge")
	flags.String(flagMetricsFile, "", "Write Prometheus metrics to this textfile")
	flags.Int(flagMaxAuthAttempts, entities.DefaultMaxAuthAttempts,
		"Maximum credentials offered to one remote")
}

func (it *UpdateController) loadSettings(cmd *cobra.Command, args []string) (*entities.Settings, error) {
	settings, err := it.loader.Load(cmd, args)
	if err != nil {
		return nil, err
	}
	if err = it.loader.EnsureGitDirs(settings); err != nil {
		return nil, err
	}
	if err = settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}
