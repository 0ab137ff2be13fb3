package sshkey

import (
	"crypto/x509"
	"errors"
	"os"
	"strings"

	logger "github.com/sirupsen/logrus"
	"golang.org/x/crypto/ssh"

	"github.com/rios0rios0/upgit/internal/domain/entities"
	"github.com/rios0rios0/upgit/internal/domain/repositories"
)

// KeyVerifierRepository probes private keys locally with x/crypto/ssh.
type KeyVerifierRepository struct{}

var _ repositories.KeyVerifierRepository = (*KeyVerifierRepository)(nil)

// NewKeyVerifierRepository creates a new KeyVerifierRepository.
func NewKeyVerifierRepository() *KeyVerifierRepository {
	return &KeyVerifierRepository{}
}

// Verify reports good when the passphrase opens the key and bad when it does
// not. Keys that cannot be read or parsed give unknown.
func (it *KeyVerifierRepository) Verify(keyPath, passphrase string) entities.KeyVerification {
	pemBytes, err := os.ReadFile(keyPath)
	if err != nil {
		logger.Debugf("Cannot read SSH key %s: %v", keyPath, err)
		return entities.KeyVerificationUnknown
	}

	if passphrase == "" {
		_, err = ssh.ParseRawPrivateKey(pemBytes)
		var missing *ssh.PassphraseMissingError
		switch {
		case err == nil:
			return entities.KeyVerificationGood
		case errors.As(err, &missing):
			return entities.KeyVerificationBad
		default:
			logger.Debugf("Cannot parse SSH key %s: %v", keyPath, err)
			return entities.KeyVerificationUnknown
		}
	}

	_, err = ssh.ParseRawPrivateKeyWithPassphrase(pemBytes, []byte(passphrase))
	switch {
	case err == nil:
		return entities.KeyVerificationGood
	case errors.Is(err, x509.IncorrectPasswordError), strings.Contains(err.Error(), "not password protected"):
		return entities.KeyVerificationBad
	default:
		logger.Debugf("Cannot parse SSH key %s: %v", keyPath, err)
		return entities.KeyVerificationUnknown
	}
}
