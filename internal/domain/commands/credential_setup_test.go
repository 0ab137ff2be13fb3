//go:build unit

package commands_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/upgit/internal/domain/commands"
	"github.com/rios0rios0/upgit/internal/domain/entities"
	"github.com/rios0rios0/upgit/internal/domain/repositories"
	"github.com/rios0rios0/upgit/test/domain/entitybuilders"
	"github.com/rios0rios0/upgit/test/infrastructure/repositorydoubles"
)

func TestCredentialSetupConfigure(t *testing.T) {
	t.Parallel()

	t.Run("should copy the policy and ask nothing when no credential is configured", func(t *testing.T) {
		t.Parallel()

		// given
		prompter := repositorydoubles.NewScriptedPromptRepository()
		setup := commands.NewCredentialSetup(
			prompter, &repositorydoubles.StubKeyVerifierRepository{}, &repositorydoubles.StubSecretRepository{},
		)
		settings := entitybuilders.NewSettingsBuilder().WithSharePolicy(entities.ShareDuplicate).BuildSettings()

		// when
		config, err := setup.Configure(settings)

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.ShareDuplicate, config.Policy)
		assert.Equal(t, "/keys/id_rsa", config.SSHKeyPath)
		assert.Nil(t, config.DefaultSSH)
		assert.Nil(t, config.DefaultPlain)
		assert.Empty(t, prompter.Prompts)
	})

	t.Run("should treat a blank default passphrase as none", func(t *testing.T) {
		t.Parallel()

		// given
		prompter := repositorydoubles.NewScriptedPromptRepository("")
		setup := commands.NewCredentialSetup(
			prompter, &repositorydoubles.StubKeyVerifierRepository{}, &repositorydoubles.StubSecretRepository{},
		)
		settings := entitybuilders.NewSettingsBuilder().WithDefaultSSH().BuildSettings()

		// when
		config, err := setup.Configure(settings)

		// then
		require.NoError(t, err)
		require.NotNil(t, config.DefaultSSH)
		assert.Equal(t, entities.NewSSHKey("/keys/id_rsa", nil), *config.DefaultSSH)
	})

	t.Run("should require a non-empty confirmed default password", func(t *testing.T) {
		t.Parallel()

		// given
		prompter := repositorydoubles.NewScriptedPromptRepository("", "", "pw", "pw")
		setup := commands.NewCredentialSetup(
			prompter, &repositorydoubles.StubKeyVerifierRepository{}, &repositorydoubles.StubSecretRepository{},
		)
		settings := entitybuilders.NewSettingsBuilder().WithDefaultPlain().BuildSettings()

		// when
		config, err := setup.Configure(settings)

		// then
		require.NoError(t, err)
		require.NotNil(t, config.DefaultPlain)
		assert.Equal(t, entities.NewPlaintext("pw"), *config.DefaultPlain)
		assert.Contains(t, prompter.Printed, "A value is required.\n")
	})

	t.Run("should read the default password from the secret store", func(t *testing.T) {
		t.Parallel()

		// given
		secrets := &repositorydoubles.StubSecretRepository{
			Secrets: map[string]string{commands.DefaultPlainSecretName: "from-keyring"},
		}
		prompter := repositorydoubles.NewScriptedPromptRepository()
		setup := commands.NewCredentialSetup(prompter, &repositorydoubles.StubKeyVerifierRepository{}, secrets)
		settings := entitybuilders.NewSettingsBuilder().WithDefaultPlainKeyring().BuildSettings()

		// when
		config, err := setup.Configure(settings)

		// then
		require.NoError(t, err)
		require.NotNil(t, config.DefaultPlain)
		assert.Equal(t, entities.NewPlaintext("from-keyring"), *config.DefaultPlain)
		assert.Empty(t, prompter.Prompts)
	})

	t.Run("should fail when the secret store has no default password", func(t *testing.T) {
		t.Parallel()

		// given
		setup := commands.NewCredentialSetup(
			repositorydoubles.NewScriptedPromptRepository(),
			&repositorydoubles.StubKeyVerifierRepository{},
			&repositorydoubles.StubSecretRepository{},
		)
		settings := entitybuilders.NewSettingsBuilder().WithDefaultPlainKeyring().BuildSettings()

		// when
		_, err := setup.Configure(settings)

		// then
		require.ErrorIs(t, err, repositories.ErrSecretNotFound)
	})

	t.Run("should re-prompt bad passphrases and confirm unverifiable ones", func(t *testing.T) {
		t.Parallel()

		// given
		verifier := &repositorydoubles.StubKeyVerifierRepository{
			Verdicts: map[string]entities.KeyVerification{
				"wrong": entities.KeyVerificationBad,
				"right": entities.KeyVerificationGood,
			},
			DefaultVerdict: entities.KeyVerificationUnknown,
		}
		prompter := repositorydoubles.NewScriptedPromptRepository(
			"wrong", "right",
			"maybe", "typo", "maybe", "maybe",
		)
		setup := commands.NewCredentialSetup(prompter, verifier, &repositorydoubles.StubSecretRepository{})
		settings := entitybuilders.NewSettingsBuilder().WithSSHKeys("/keys/a", "/keys/b").BuildSettings()

		// when
		config, err := setup.Configure(settings)

		// then
		require.NoError(t, err)
		right, maybe := "right", "maybe"
		assert.Equal(t, []entities.Credential{
			entities.NewSSHKey("/keys/a", &right),
			entities.NewSSHKey("/keys/b", &maybe),
		}, config.PreVerifiedSSHKeys)
		assert.Len(t, verifier.VerifyCalls, 4)
		assert.Zero(t, prompter.Remaining())
	})

	t.Run("should ask a required password for every configured URL", func(t *testing.T) {
		t.Parallel()

		// given
		prompter := repositorydoubles.NewScriptedPromptRepository("one", "one", "two", "two")
		setup := commands.NewCredentialSetup(
			prompter, &repositorydoubles.StubKeyVerifierRepository{}, &repositorydoubles.StubSecretRepository{},
		)
		settings := entitybuilders.NewSettingsBuilder().
			WithPlainURLs("https://git.example/a.git", "https://git.example/b.git").
			BuildSettings()

		// when
		config, err := setup.Configure(settings)

		// then
		require.NoError(t, err)
		assert.Equal(t, map[string]entities.Credential{
			"https://git.example/a.git": entities.NewPlaintext("one"),
			"https://git.example/b.git": entities.NewPlaintext("two"),
		}, config.KnownPlain)
	})

	t.Run("should abort when there is no terminal to prompt on", func(t *testing.T) {
		t.Parallel()

		// given
		setup := commands.NewCredentialSetup(
			repositorydoubles.NewScriptedPromptRepository(),
			&repositorydoubles.StubKeyVerifierRepository{},
			&repositorydoubles.StubSecretRepository{},
		)
		settings := entitybuilders.NewSettingsBuilder().WithDefaultSSH().BuildSettings()

		// when
		_, err := setup.Configure(settings)

		// then
		require.Error(t, err)
		assert.True(t, errors.Is(err, repositories.ErrNoTerminal))
	})
}

func TestPromptHelpers(t *testing.T) {
	t.Parallel()

	t.Run("should accept an empty password when not required", func(t *testing.T) {
		t.Parallel()

		// given
		prompter := repositorydoubles.NewScriptedPromptRepository("", "")

		// when
		password, err := commands.PromptPassword(prompter, "Password: ", false)

		// then
		require.NoError(t, err)
		assert.Empty(t, password)
	})

	t.Run("should repeat until both entries match", func(t *testing.T) {
		t.Parallel()

		// given
		prompter := repositorydoubles.NewScriptedPromptRepository("a", "b", "c", "c")

		// when
		password, err := commands.PromptPassword(prompter, "Password: ", false)

		// then
		require.NoError(t, err)
		assert.Equal(t, "c", password)
	})

	t.Run("should accept a blank passphrase without confirmation", func(t *testing.T) {
		t.Parallel()

		// given
		prompter := repositorydoubles.NewScriptedPromptRepository("")

		// when
		passphrase, err := commands.PromptPassphrase(prompter, "Passphrase: ")

		// then
		require.NoError(t, err)
		assert.Empty(t, passphrase)
		assert.Len(t, prompter.Prompts, 1)
	})
}
