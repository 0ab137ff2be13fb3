package oskeyring

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/rios0rios0/upgit/internal/domain/repositories"
)

// ServiceName groups every upgit secret in the OS keyring.
const ServiceName = "upgit"

// SecretRepository reads secrets from the OS keyring (Keychain, Secret Service or Credential Manager).
type SecretRepository struct {
	service string
}

var _ repositories.SecretRepository = (*SecretRepository)(nil)

func NewSecretRepository() *SecretRepository {
	return &SecretRepository{service: ServiceName}
}

func (it *SecretRepository) Get(name string) (string, error) {
	secret, err := keyring.Get(it.service, name)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", fmt.Errorf("%w: %s/%s", repositories.ErrSecretNotFound, it.service, name)
		}
		return "", fmt.Errorf("failed to read %s/%s from the keyring: %w", it.service, name, err)
	}
	return secret, nil
}
