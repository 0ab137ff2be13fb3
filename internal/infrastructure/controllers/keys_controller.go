package controllers

import (
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/upgit/internal/domain/commands"
	"github.com/rios0rios0/upgit/internal/domain/entities"
)

// KeysController handles the "keys" subcommand.
type KeysController struct {
	command commands.Keys
	loader  *SettingsLoader
}

// NewKeysController creates a new KeysController.
func NewKeysController(command commands.Keys, loader *SettingsLoader) *KeysController {
	return &KeysController{command: command, loader: loader}
}

// GetBind returns the Cobra command metadata for the keys controller.
func (it *KeysController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "keys",
		Short: "Check passphrases against the configured SSH keys",
		Long: `Ask for the passphrase of every key given with --ssh (or the default key)
and report whether it unlocks the key, without touching any clone.`,
	}
}

// Execute checks every configured key.
func (it *KeysController) Execute(cmd *cobra.Command, _ []string) {
	settings, err := it.loader.Load(cmd, nil)
	if err != nil {
		logger.Errorf("Invalid configuration: %v", err)
		return
	}

	checks, err := it.command.Execute(settings)
	if err != nil {
		logger.Errorf("Key check failed: %v", err)
		return
	}

	bad := 0
	for _, check := range checks {
		if check.Verification == entities.KeyVerificationBad {
			bad++
		}
	}
	if bad > 0 {
		logger.Warnf("%d of %d keys rejected their passphrase", bad, len(checks))
	}
}

// AddFlags adds the keys-specific flags to the given Cobra command.
func (it *KeysController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringSlice(flagSSH, nil, "SSH key to check (repeatable)")
	cmd.Flags().String(flagSSHKeyPath, "", "Key checked when no --ssh is given (default ~/.ssh/id_rsa)")
}
