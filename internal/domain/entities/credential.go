package entities

import "fmt"

// CredentialKind tells the two supported credential types apart.
type CredentialKind uint8

const (
	CredentialPlaintext CredentialKind = 1 << iota
	CredentialSSHKey
)

func (it CredentialKind) String() string {
	switch it {
	case CredentialPlaintext:
		return "plaintext"
	case CredentialSSHKey:
		return "ssh-key"
	default:
		return "unknown"
	}
}

// CredentialKinds is the set of credential kinds a server accepts for one challenge.
type CredentialKinds uint8

// NewCredentialKinds builds a set from the given kinds.
func NewCredentialKinds(kinds ...CredentialKind) CredentialKinds {
	var set CredentialKinds
	for _, kind := range kinds {
		set |= CredentialKinds(kind)
	}
	return set
}

// Has reports whether the set contains the kind.
func (it CredentialKinds) Has(kind CredentialKind) bool {
	return it&CredentialKinds(kind) != 0
}

// Credential is either a plaintext secret or a path to an SSH private key
// with an optional passphrase. It is comparable, so it can be used as a map key.
type Credential struct {
	Kind          CredentialKind
	Secret        string
	KeyPath       string
	Passphrase    string
	HasPassphrase bool
}

// NewPlaintext creates a plaintext credential.
func NewPlaintext(secret string) Credential {
	return Credential{Kind: CredentialPlaintext, Secret: secret}
}

// NewSSHKey creates an SSH key credential. A nil passphrase and an empty one are different credentials.
func NewSSHKey(keyPath string, passphrase *string) Credential {
	credential := Credential{Kind: CredentialSSHKey, KeyPath: keyPath}
	if passphrase != nil {
		credential.Passphrase = *passphrase
		credential.HasPassphrase = true
	}
	return credential
}

// IsZero reports whether no credential has been set.
func (it Credential) IsZero() bool {
	return it == Credential{}
}

// String never reveals secrets.
func (it Credential) String() string {
	switch it.Kind {
	case CredentialPlaintext:
		return "plaintext(********)"
	case CredentialSSHKey:
		if it.HasPassphrase {
			return fmt.Sprintf("ssh-key(%s, with passphrase)", it.KeyPath)
		}
		return fmt.Sprintf("ssh-key(%s)", it.KeyPath)
	default:
		return "none"
	}
}

// CredentialSet is a set of credentials keyed by value.
type CredentialSet map[Credential]struct{}

// NewCredentialSet builds a set holding the given credentials.
func NewCredentialSet(credentials ...Credential) CredentialSet {
	set := make(CredentialSet, len(credentials))
	for _, credential := range credentials {
		set[credential] = struct{}{}
	}
	return set
}

// Add inserts the credential into the set.
func (it CredentialSet) Add(credential Credential) {
	it[credential] = struct{}{}
}

// Contains is safe on a nil set.
func (it CredentialSet) Contains(credential Credential) bool {
	_, ok := it[credential]
	return ok
}
