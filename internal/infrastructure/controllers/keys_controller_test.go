//go:build unit

package controllers_test

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/upgit/internal/domain/commands"
	"github.com/rios0rios0/upgit/internal/domain/entities"
	"github.com/rios0rios0/upgit/internal/infrastructure/controllers"
	"github.com/rios0rios0/upgit/test/domain/commanddoubles"
	"github.com/rios0rios0/upgit/test/infrastructure/repositorydoubles"
)

func TestKeysController_Execute(t *testing.T) {
	t.Run("should check the keys given on the command line", func(t *testing.T) {
		// given
		isolate(t)
		command := &commanddoubles.StubKeysCommand{
			Checks: []commands.KeyCheck{{KeyPath: "/keys/a", Verification: entities.KeyVerificationBad}},
		}
		controller := controllers.NewKeysController(
			command, controllers.NewSettingsLoader(repositorydoubles.NewScriptedPromptRepository()))
		cmd := &cobra.Command{Use: "keys"}
		controllers.AddPersistentFlags(cmd)
		controller.AddFlags(cmd)
		require.NoError(t, cmd.ParseFlags([]string{"--ssh", "/keys/a"}))

		// when
		controller.Execute(cmd, nil)

		// then
		require.Equal(t, 1, command.ExecuteCallCount)
		assert.Equal(t, []string{"/keys/a"}, command.LastSettings.SSHKeys)
	})

	t.Run("should not need any git directory", func(t *testing.T) {
		// given
		isolate(t)
		command := &commanddoubles.StubKeysCommand{}
		prompter := repositorydoubles.NewScriptedPromptRepository()
		controller := controllers.NewKeysController(command, controllers.NewSettingsLoader(prompter))
		cmd := &cobra.Command{Use: "keys"}
		controllers.AddPersistentFlags(cmd)
		controller.AddFlags(cmd)
		require.NoError(t, cmd.ParseFlags(nil))

		// when
		controller.Execute(cmd, nil)

		// then
		assert.Equal(t, 1, command.ExecuteCallCount)
		assert.Empty(t, prompter.Prompts)
	})
}
