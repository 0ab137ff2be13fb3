//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	testkit "github.com/rios0rios0/testkit/pkg/test"

	"github.com/rios0rios0/upgit/internal/domain/commands"
	"github.com/rios0rios0/upgit/internal/domain/entities"
)

// BrokerConfigBuilder helps create credential broker configurations.
type BrokerConfigBuilder struct {
	*testkit.BaseBuilder
	policy       entities.SharePolicy
	sshKeyPath   string
	defaultSSH   *entities.Credential
	defaultPlain *entities.Credential
	preVerified  []entities.Credential
	knownPlain   map[string]entities.Credential
}

// NewBrokerConfigBuilder creates a builder for an identity-sharing broker without defaults.
func NewBrokerConfigBuilder() *BrokerConfigBuilder {
	return &BrokerConfigBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		policy:      entities.ShareIdentity,
		sshKeyPath:  "/keys/id_rsa",
		knownPlain:  make(map[string]entities.Credential),
	}
}

// WithPolicy sets the sharing policy.
func (b *BrokerConfigBuilder) WithPolicy(policy entities.SharePolicy) *BrokerConfigBuilder {
	b.policy = policy
	return b
}

// WithSSHKeyPath sets the key path used for prompted passphrases.
func (b *BrokerConfigBuilder) WithSSHKeyPath(path string) *BrokerConfigBuilder {
	b.sshKeyPath = path
	return b
}

// WithDefaultSSH sets the default SSH credential.
func (b *BrokerConfigBuilder) WithDefaultSSH(credential entities.Credential) *BrokerConfigBuilder {
	b.defaultSSH = &credential
	return b
}

// WithDefaultPlain sets the default plaintext credential.
func (b *BrokerConfigBuilder) WithDefaultPlain(credential entities.Credential) *BrokerConfigBuilder {
	b.defaultPlain = &credential
	return b
}

// WithPreVerifiedSSHKeys sets the keys offered by number when prompting.
func (b *BrokerConfigBuilder) WithPreVerifiedSSHKeys(keys ...entities.Credential) *BrokerConfigBuilder {
	b.preVerified = keys
	return b
}

// WithKnownPlain sets the password for one URL.
func (b *BrokerConfigBuilder) WithKnownPlain(rawURL string, credential entities.Credential) *BrokerConfigBuilder {
	b.knownPlain[rawURL] = credential
	return b
}

// Build creates the configuration (satisfies testkit.Builder interface).
func (b *BrokerConfigBuilder) Build() interface{} {
	return b.BuildConfig()
}

// BuildConfig creates the configuration with a concrete return type.
func (b *BrokerConfigBuilder) BuildConfig() commands.CredentialBrokerConfig {
	knownPlain := make(map[string]entities.Credential, len(b.knownPlain))
	for rawURL, credential := range b.knownPlain {
		knownPlain[rawURL] = credential
	}
	return commands.CredentialBrokerConfig{
		Policy:             b.policy,
		SSHKeyPath:         b.sshKeyPath,
		DefaultSSH:         b.defaultSSH,
		DefaultPlain:       b.defaultPlain,
		PreVerifiedSSHKeys: append([]entities.Credential(nil), b.preVerified...),
		KnownPlain:         knownPlain,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *BrokerConfigBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.policy = entities.ShareIdentity
	b.sshKeyPath = "/keys/id_rsa"
	b.defaultSSH = nil
	b.defaultPlain = nil
	b.preVerified = nil
	b.knownPlain = make(map[string]entities.Credential)
	return b
}

// Clone creates a deep copy of the BrokerConfigBuilder.
func (b *BrokerConfigBuilder) Clone() testkit.Builder {
	clone := &BrokerConfigBuilder{
		BaseBuilder:  b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		policy:       b.policy,
		sshKeyPath:   b.sshKeyPath,
		defaultSSH:   b.defaultSSH,
		defaultPlain: b.defaultPlain,
		preVerified:  append([]entities.Credential(nil), b.preVerified...),
		knownPlain:   make(map[string]entities.Credential, len(b.knownPlain)),
	}
	for rawURL, credential := range b.knownPlain {
		clone.knownPlain[rawURL] = credential
	}
	return clone
}
