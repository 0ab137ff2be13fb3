package repositories

import "github.com/rios0rios0/upgit/internal/domain/entities"

// KeyVerifierRepository probes whether a passphrase opens an SSH private key.
type KeyVerifierRepository interface {
	Verify(keyPath, passphrase string) entities.KeyVerification
}
