//go:build unit

package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/upgit/internal/domain/entities"
)

func TestParseSharePolicy(t *testing.T) {
	t.Parallel()

	t.Run("should parse every policy name regardless of case", func(t *testing.T) {
		t.Parallel()

		// given
		names := map[string]entities.SharePolicy{
			"never":        entities.ShareNever,
			"Defaults":     entities.ShareDefaults,
			"DUPLICATE":    entities.ShareDuplicate,
			"organization": entities.ShareOrganization,
			" identity ":   entities.ShareIdentity,
		}

		for name, expected := range names {
			// when
			policy, err := entities.ParseSharePolicy(name)

			// then
			require.NoError(t, err)
			assert.Equal(t, expected, policy)
		}
	})

	t.Run("should reject unknown names", func(t *testing.T) {
		t.Parallel()

		// given
		name := "everyone"

		// when
		_, err := entities.ParseSharePolicy(name)

		// then
		require.ErrorIs(t, err, entities.ErrUnknownSharePolicy)
	})

	t.Run("should order policies from never to identity", func(t *testing.T) {
		t.Parallel()

		// given, when, then
		assert.Less(t, entities.ShareNever, entities.ShareDefaults)
		assert.Less(t, entities.ShareDefaults, entities.ShareDuplicate)
		assert.Less(t, entities.ShareDuplicate, entities.ShareOrganization)
		assert.Less(t, entities.ShareOrganization, entities.ShareIdentity)
		assert.False(t, entities.ShareNever.AllowsDefaults())
		assert.True(t, entities.ShareDefaults.AllowsDefaults())
	})
}
