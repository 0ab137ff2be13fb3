package repositories

import "errors"

// ErrSecretNotFound is returned when the store holds no secret under the requested name.
var ErrSecretNotFound = errors.New("secret not found")

// SecretRepository reads secrets saved outside of upgit, such as the OS keyring.
type SecretRepository interface {
	Get(name string) (string, error)
}
