//go:build unit

package terminal_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/upgit/internal/domain/repositories"
	"github.com/rios0rios0/upgit/internal/infrastructure/repositories/terminal"
)

// fakeTerminal is a regular file: reads start at the beginning, writes are appended.
func fakeTerminal(t *testing.T, input string) (string, func() (*os.File, error)) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tty")
	require.NoError(t, os.WriteFile(path, []byte(input), 0o600))
	return path, func() (*os.File, error) {
		return os.OpenFile(path, os.O_RDWR|os.O_APPEND, 0)
	}
}

func noTerminal() (*os.File, error) {
	return nil, errors.New("no such device or address")
}

func TestPromptRepository(t *testing.T) {
	t.Parallel()

	t.Run("should read a visible line and show the prompt", func(t *testing.T) {
		t.Parallel()

		// given
		path, open := fakeTerminal(t, "2\r\n")
		prompter := terminal.NewPromptRepositoryWithTerminal(open, &bytes.Buffer{})

		// when
		line, err := prompter.ReadLine("Key number: ")

		// then
		require.NoError(t, err)
		assert.Equal(t, "2", line)
		content, readErr := os.ReadFile(path)
		require.NoError(t, readErr)
		assert.Contains(t, string(content), "Key number: ")
	})

	t.Run("should report closed input as a missing terminal", func(t *testing.T) {
		t.Parallel()

		// given
		_, open := fakeTerminal(t, "")
		prompter := terminal.NewPromptRepositoryWithTerminal(open, &bytes.Buffer{})

		// when
		_, err := prompter.ReadLine("Key number: ")

		// then
		require.ErrorIs(t, err, repositories.ErrNoTerminal)
	})

	t.Run("should refuse to read secrets from something that is not a terminal", func(t *testing.T) {
		t.Parallel()

		// given
		_, open := fakeTerminal(t, "secret\n")
		prompter := terminal.NewPromptRepositoryWithTerminal(open, &bytes.Buffer{})

		// when
		_, err := prompter.ReadSecret("Password: ")

		// then
		require.ErrorIs(t, err, repositories.ErrNoTerminal)
	})

	t.Run("should fail every read when there is no terminal", func(t *testing.T) {
		t.Parallel()

		// given
		prompter := terminal.NewPromptRepositoryWithTerminal(noTerminal, &bytes.Buffer{})

		// when
		_, secretErr := prompter.ReadSecret("Password: ")
		_, lineErr := prompter.ReadLine("Key number: ")

		// then
		require.ErrorIs(t, secretErr, repositories.ErrNoTerminal)
		require.ErrorIs(t, lineErr, repositories.ErrNoTerminal)
	})

	t.Run("should print to the fallback output without a terminal", func(t *testing.T) {
		t.Parallel()

		// given
		var output bytes.Buffer
		prompter := terminal.NewPromptRepositoryWithTerminal(noTerminal, &output)

		// when
		prompter.Printf("  %d. %s\n", 1, "/keys/id_rsa")

		// then
		assert.Equal(t, "  1. /keys/id_rsa\n", output.String())
	})
}
