package commands

import (
	"strconv"
	"strings"

	"github.com/rios0rios0/upgit/internal/domain/entities"
	"github.com/rios0rios0/upgit/internal/domain/repositories"
)

// promptPassphrase accepts a blank answer at once and asks for a
// confirmation of anything else, repeating until both entries match.
func promptPassphrase(prompter repositories.PromptRepository, prompt string) (string, error) {
	for {
		passphrase, err := prompter.ReadSecret(prompt)
		if err != nil {
			return "", err
		}
		if passphrase == "" {
			return "", nil
		}

		confirmation, err := prompter.ReadSecret("Confirm: ")
		if err != nil {
			return "", err
		}
		if confirmation == passphrase {
			return passphrase, nil
		}
		prompter.Printf("Entries did not match, try again.\n")
	}
}

// promptPassword asks twice until both entries match. Required passwords
// are asked for again when left blank.
func promptPassword(prompter repositories.PromptRepository, prompt string, required bool) (string, error) {
	for {
		password, err := prompter.ReadSecret(prompt)
		if err != nil {
			return "", err
		}
		confirmation, err := prompter.ReadSecret("Confirm: ")
		if err != nil {
			return "", err
		}

		switch {
		case password != confirmation:
			prompter.Printf("Entries did not match, try again.\n")
		case required && password == "":
			prompter.Printf("A value is required.\n")
		default:
			return password, nil
		}
	}
}

// promptKeyChoice lists keys numbered from 1 and loops until a valid number is entered.
func promptKeyChoice(
	prompter repositories.PromptRepository,
	rawURL string,
	keys []entities.Credential,
) (entities.Credential, error) {
	prompter.Printf("SSH keys available for %s:\n", rawURL)
	for i, key := range keys {
		prompter.Printf("  %d. %s\n", i+1, key.KeyPath)
	}

	for {
		answer, err := prompter.ReadLine("Key number: ")
		if err != nil {
			return entities.Credential{}, err
		}
		choice, convErr := strconv.Atoi(strings.TrimSpace(answer))
		if convErr == nil && choice >= 1 && choice <= len(keys) {
			return keys[choice-1], nil
		}
		prompter.Printf("Enter a number between 1 and %d.\n", len(keys))
	}
}

// sshKeyWithPassphrase treats a blank passphrase as no passphrase at all.
func sshKeyWithPassphrase(keyPath, passphrase string) entities.Credential {
	if passphrase == "" {
		return entities.NewSSHKey(keyPath, nil)
	}
	return entities.NewSSHKey(keyPath, &passphrase)
}
