package commands

import (
	"fmt"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/upgit/internal/domain/entities"
	"github.com/rios0rios0/upgit/internal/domain/repositories"
)

// DefaultPlainSecretName is the keyring entry holding the default password.
const DefaultPlainSecretName = "default-plain"

// Setup is the interface for building the broker configuration before any task starts.
type Setup interface {
	Configure(settings *entities.Settings) (CredentialBrokerConfig, error)
}

// CredentialSetup asks for everything the settings say should be known up
// front: default credentials, passphrases of pre-verified keys and passwords
// of configured URLs. Any failure here aborts the run.
type CredentialSetup struct {
	prompter repositories.PromptRepository
	verifier repositories.KeyVerifierRepository
	secrets  repositories.SecretRepository
}

// NewCredentialSetup creates a new CredentialSetup.
func NewCredentialSetup(
	prompter repositories.PromptRepository,
	verifier repositories.KeyVerifierRepository,
	secrets repositories.SecretRepository,
) *CredentialSetup {
	return &CredentialSetup{
		prompter: prompter,
		verifier: verifier,
		secrets:  secrets,
	}
}

// Configure builds the broker configuration from the settings.
func (it *CredentialSetup) Configure(settings *entities.Settings) (CredentialBrokerConfig, error) {
	config := CredentialBrokerConfig{
		Policy:     settings.SharePolicy,
		SSHKeyPath: entities.ExpandHome(settings.SSHKeyPath),
		KnownPlain: make(map[string]entities.Credential, len(settings.PlainURLs)),
	}

	if settings.DefaultSSH {
		passphrase, err := promptPassphrase(
			it.prompter,
			fmt.Sprintf("Enter default ssh key pass for %s (blank for none): ", config.SSHKeyPath),
		)
		if err != nil {
			return CredentialBrokerConfig{}, fmt.Errorf("failed to read default SSH passphrase: %w", err)
		}
		credential := sshKeyWithPassphrase(config.SSHKeyPath, passphrase)
		config.DefaultSSH = &credential
	}

	defaultPlain, err := it.defaultPlain(settings)
	if err != nil {
		return CredentialBrokerConfig{}, err
	}
	config.DefaultPlain = defaultPlain

	for _, keyPath := range settings.SSHKeys {
		credential, keyErr := it.verifiedKey(entities.ExpandHome(keyPath))
		if keyErr != nil {
			return CredentialBrokerConfig{}, keyErr
		}
		config.PreVerifiedSSHKeys = append(config.PreVerifiedSSHKeys, credential)
	}

	for _, rawURL := range settings.PlainURLs {
		rawURL = strings.TrimSpace(rawURL)
		if rawURL == "" {
			continue
		}
		password, promptErr := promptPassword(
			it.prompter,
			fmt.Sprintf("Enter password for url %q (required): ", rawURL),
			true,
		)
		if promptErr != nil {
			return CredentialBrokerConfig{}, fmt.Errorf("failed to read password for %q: %w", rawURL, promptErr)
		}
		config.KnownPlain[rawURL] = entities.NewPlaintext(password)
	}

	logger.Debugf(
		"Credential setup complete: policy=%s, pre-verified keys=%d, known URLs=%d",
		config.Policy, len(config.PreVerifiedSSHKeys), len(config.KnownPlain),
	)
	return config, nil
}

func (it *CredentialSetup) defaultPlain(settings *entities.Settings) (*entities.Credential, error) {
	switch {
	case settings.DefaultPlainKeyring:
		secret, err := it.secrets.Get(DefaultPlainSecretName)
		if err != nil {
			return nil, fmt.Errorf("failed to read default password from keyring: %w", err)
		}
		credential := entities.NewPlaintext(secret)
		return &credential, nil
	case settings.DefaultPlain:
		password, err := promptPassword(
			it.prompter,
			"Enter default plaintext authentication method pass: ",
			true,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to read default password: %w", err)
		}
		credential := entities.NewPlaintext(password)
		return &credential, nil
	default:
		return nil, nil //nolint:nilnil // no default password configured
	}
}

// verifiedKey asks for the passphrase of keyPath until the verifier accepts it.
// When the verifier cannot tell, a matching confirmation entry is enough.
func (it *CredentialSetup) verifiedKey(keyPath string) (entities.Credential, error) {
	for {
		passphrase, err := it.prompter.ReadSecret(
			fmt.Sprintf("Enter password for ssh key %s (blank for none): ", keyPath),
		)
		if err != nil {
			return entities.Credential{}, fmt.Errorf("failed to read passphrase for %s: %w", keyPath, err)
		}

		switch it.verifier.Verify(keyPath, passphrase) {
		case entities.KeyVerificationGood:
			return sshKeyWithPassphrase(keyPath, passphrase), nil
		case entities.KeyVerificationBad:
			it.prompter.Printf("Passphrase does not open %s, try again.\n", keyPath)
		case entities.KeyVerificationUnknown:
			confirmation, confirmErr := it.prompter.ReadSecret("Could not verify the key, confirm passphrase: ")
			if confirmErr != nil {
				return entities.Credential{}, fmt.Errorf("failed to read confirmation for %s: %w", keyPath, confirmErr)
			}
			if confirmation == passphrase {
				return sshKeyWithPassphrase(keyPath, passphrase), nil
			}
		}
	}
}
