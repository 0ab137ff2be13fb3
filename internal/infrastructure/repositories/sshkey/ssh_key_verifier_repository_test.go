//go:build unit

package sshkey_test

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ssh"

	"github.com/rios0rios0/upgit/internal/domain/entities"
	"github.com/rios0rios0/upgit/internal/infrastructure/repositories/sshkey"
)

func writeKey(t *testing.T, passphrase string) string {
	t.Helper()
	_, private, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	var block *pem.Block
	if passphrase == "" {
		block, err = ssh.MarshalPrivateKey(private, "test")
	} else {
		block, err = ssh.MarshalPrivateKeyWithPassphrase(private, "test", []byte(passphrase))
	}
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "id_ed25519")
	require.NoError(t, os.WriteFile(path, pem.EncodeToMemory(block), 0o600))
	return path
}

func TestKeyVerifierRepositoryVerify(t *testing.T) {
	t.Parallel()

	verifier := sshkey.NewKeyVerifierRepository()

	t.Run("should accept the right passphrase", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeKey(t, "open sesame")

		// when
		verification := verifier.Verify(path, "open sesame")

		// then
		assert.Equal(t, entities.KeyVerificationGood, verification)
	})

	t.Run("should reject a wrong passphrase", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeKey(t, "open sesame")

		// when
		verification := verifier.Verify(path, "close sesame")

		// then
		assert.Equal(t, entities.KeyVerificationBad, verification)
	})

	t.Run("should reject a blank passphrase for an encrypted key", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeKey(t, "open sesame")

		// when
		verification := verifier.Verify(path, "")

		// then
		assert.Equal(t, entities.KeyVerificationBad, verification)
	})

	t.Run("should accept a blank passphrase for an unencrypted key", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeKey(t, "")

		// when
		verification := verifier.Verify(path, "")

		// then
		assert.Equal(t, entities.KeyVerificationGood, verification)
	})

	t.Run("should not decide for unreadable or unparseable keys", func(t *testing.T) {
		t.Parallel()

		// given
		garbage := filepath.Join(t.TempDir(), "garbage")
		require.NoError(t, os.WriteFile(garbage, []byte("not a key"), 0o600))
		missing := filepath.Join(t.TempDir(), "missing")

		// when, then
		assert.Equal(t, entities.KeyVerificationUnknown, verifier.Verify(garbage, ""))
		assert.Equal(t, entities.KeyVerificationUnknown, verifier.Verify(missing, "x"))
	})
}
