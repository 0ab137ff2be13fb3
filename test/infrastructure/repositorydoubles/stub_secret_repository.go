//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"fmt"

	"github.com/rios0rios0/upgit/internal/domain/repositories"
)

// StubSecretRepository implements repositories.SecretRepository from a map.
type StubSecretRepository struct {
	Secrets map[string]string
	GetErr  error
	// spy: names requested
	RequestedNames []string
}

var _ repositories.SecretRepository = (*StubSecretRepository)(nil)

func (s *StubSecretRepository) Get(name string) (string, error) {
	s.RequestedNames = append(s.RequestedNames, name)
	if s.GetErr != nil {
		return "", s.GetErr
	}
	if secret, ok := s.Secrets[name]; ok {
		return secret, nil
	}
	return "", fmt.Errorf("%w: %s", repositories.ErrSecretNotFound, name)
}
