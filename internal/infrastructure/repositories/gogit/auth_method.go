package gogit

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/go-git/go-git/v5/plumbing/transport/ssh"

	"github.com/rios0rios0/upgit/internal/domain/entities"
)

const (
	defaultSSHUser  = "git"
	defaultHTTPUser = "token" // GitHub/GitLab convention
)

// ErrUnsupportedCredential is returned when a credential cannot be turned into a transport auth method.
var ErrUnsupportedCredential = errors.New("unsupported credential")

// credentialKindsFor lists the credential kinds a remote's protocol can use.
func credentialKindsFor(endpoint *transport.Endpoint) entities.CredentialKinds {
	switch endpoint.Protocol {
	case "ssh":
		return entities.NewCredentialKinds(entities.CredentialSSHKey)
	case "http", "https":
		return entities.NewCredentialKinds(entities.CredentialPlaintext)
	default:
		return entities.NewCredentialKinds()
	}
}

// authMethodFor converts a credential into a go-git auth method. An SSH key
// that cannot be read or decrypted with the given passphrase is an error.
func authMethodFor(credential entities.Credential, username string) (transport.AuthMethod, error) {
	switch credential.Kind {
	case entities.CredentialPlaintext:
		if username == "" {
			username = defaultHTTPUser
		}
		return &http.BasicAuth{
			Username: username,
			Password: credential.Secret,
		}, nil
	case entities.CredentialSSHKey:
		if username == "" {
			username = defaultSSHUser
		}
		publicKeys, err := ssh.NewPublicKeysFromFile(username, credential.KeyPath, credential.Passphrase)
		if err != nil {
			return nil, fmt.Errorf("failed to load SSH key %s: %w", credential.KeyPath, err)
		}
		return publicKeys, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCredential, credential)
	}
}

// isAuthRejection reports whether a fetch failed because the server refused the credential.
func isAuthRejection(err error) bool {
	if errors.Is(err, transport.ErrAuthenticationRequired) ||
		errors.Is(err, transport.ErrAuthorizationFailed) ||
		errors.Is(err, transport.ErrInvalidAuthMethod) {
		return true
	}
	return strings.Contains(err.Error(), "unable to authenticate")
}
