package commands

import (
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/upgit/internal/domain/entities"
	"github.com/rios0rios0/upgit/internal/domain/repositories"
)

// Keys is the interface for the keys command.
type Keys interface {
	Execute(settings *entities.Settings) ([]KeyCheck, error)
}

// KeyCheck is the verdict for one key.
type KeyCheck struct {
	KeyPath      string
	Verification entities.KeyVerification
}

// KeysCommand checks passphrases against the configured SSH keys without touching any clone.
type KeysCommand struct {
	prompter repositories.PromptRepository
	verifier repositories.KeyVerifierRepository
}

// NewKeysCommand creates a new KeysCommand.
func NewKeysCommand(
	prompter repositories.PromptRepository,
	verifier repositories.KeyVerifierRepository,
) *KeysCommand {
	return &KeysCommand{prompter: prompter, verifier: verifier}
}

// Execute asks once for the passphrase of every configured key, falling back
// to the default key when none is configured.
func (it *KeysCommand) Execute(settings *entities.Settings) ([]KeyCheck, error) {
	keyPaths := settings.SSHKeys
	if len(keyPaths) == 0 {
		keyPaths = []string{settings.SSHKeyPath}
	}

	checks := make([]KeyCheck, 0, len(keyPaths))
	for _, keyPath := range keyPaths {
		keyPath = entities.ExpandHome(keyPath)
		passphrase, err := it.prompter.ReadSecret(
			fmt.Sprintf("Enter password for ssh key %s (blank for none): ", keyPath),
		)
		if err != nil {
			return checks, fmt.Errorf("failed to read passphrase for %s: %w", keyPath, err)
		}

		verification := it.verifier.Verify(keyPath, passphrase)
		logger.Infof("%s: %s", keyPath, verification)
		checks = append(checks, KeyCheck{KeyPath: keyPath, Verification: verification})
	}
	return checks, nil
}
