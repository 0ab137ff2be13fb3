//go:build unit

package oskeyring_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	"github.com/rios0rios0/upgit/internal/domain/repositories"
	"github.com/rios0rios0/upgit/internal/infrastructure/repositories/oskeyring"
)

// The keyring mock is process wide, so these cases run sequentially.
func TestSecretRepository_Get(t *testing.T) {
	keyring.MockInit()

	t.Run("should return the secret stored under the upgit service", func(t *testing.T) {
		// given
		require.NoError(t, keyring.Set(oskeyring.ServiceName, "default-plain", "hunter2"))
		t.Cleanup(func() { _ = keyring.Delete(oskeyring.ServiceName, "default-plain") })
		repository := oskeyring.NewSecretRepository()

		// when
		secret, err := repository.Get("default-plain")

		// then
		require.NoError(t, err)
		assert.Equal(t, "hunter2", secret)
	})

	t.Run("should report a missing secret as not found", func(t *testing.T) {
		// given
		repository := oskeyring.NewSecretRepository()

		// when
		_, err := repository.Get("missing")

		// then
		require.ErrorIs(t, err, repositories.ErrSecretNotFound)
	})

	t.Run("should ignore secrets stored under other services", func(t *testing.T) {
		// given
		require.NoError(t, keyring.Set("other", "default-plain", "nope"))
		t.Cleanup(func() { _ = keyring.Delete("other", "default-plain") })
		repository := oskeyring.NewSecretRepository()

		// when
		_, err := repository.Get("default-plain")

		// then
		require.ErrorIs(t, err, repositories.ErrSecretNotFound)
	})
}
