//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/upgit/internal/domain/entities"
	"github.com/rios0rios0/upgit/internal/domain/repositories"
)

// StubKeyVerifierRepository implements repositories.KeyVerifierRepository with canned verdicts.
type StubKeyVerifierRepository struct {
	// --- Verify ---
	// Verdicts maps a passphrase to its verdict; anything else gets DefaultVerdict.
	Verdicts       map[string]entities.KeyVerification
	DefaultVerdict entities.KeyVerification
	// spy: calls received
	VerifyCalls []VerifyCall
}

// VerifyCall records a single invocation of Verify.
type VerifyCall struct {
	KeyPath    string
	Passphrase string
}

var _ repositories.KeyVerifierRepository = (*StubKeyVerifierRepository)(nil)

func (v *StubKeyVerifierRepository) Verify(keyPath, passphrase string) entities.KeyVerification {
	v.VerifyCalls = append(v.VerifyCalls, VerifyCall{KeyPath: keyPath, Passphrase: passphrase})
	if verdict, ok := v.Verdicts[passphrase]; ok {
		return verdict
	}
	return v.DefaultVerdict
}
