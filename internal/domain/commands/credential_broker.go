package commands

import (
	"errors"
	"fmt"
	"sync"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/upgit/internal/domain/entities"
	"github.com/rios0rios0/upgit/internal/domain/repositories"
)

var (
	// ErrNegotiationFailed is returned when no credential could be obtained for a challenge.
	ErrNegotiationFailed = errors.New("credential negotiation failed")
	// ErrUnsupportedCredentialKind is returned when the server accepts none of the kinds upgit can offer.
	ErrUnsupportedCredentialKind = errors.New("unsupported credential kind")
)

// UnsupportedCredentialKindError names the URL whose challenge could not be answered.
type UnsupportedCredentialKindError struct {
	URL   string
	Kinds entities.CredentialKinds
}

func (it *UnsupportedCredentialKindError) Error() string {
	return fmt.Sprintf("%s: %s accepts kinds %#b", ErrUnsupportedCredentialKind.Error(), it.URL, uint8(it.Kinds))
}

func (it *UnsupportedCredentialKindError) Unwrap() error {
	return ErrUnsupportedCredentialKind
}

// CredentialBrokerConfig is everything the broker knows before the first challenge.
type CredentialBrokerConfig struct {
	Policy             entities.SharePolicy
	SSHKeyPath         string
	DefaultSSH         *entities.Credential
	DefaultPlain       *entities.Credential
	PreVerifiedSSHKeys []entities.Credential
	KnownPlain         map[string]entities.Credential
}

// CredentialBroker decides which credential to offer for every authentication
// challenge of a run. All state sits behind one mutex that is held for a whole
// negotiation, prompts included, so at most one task talks to the operator.
type CredentialBroker struct {
	mu       sync.Mutex
	config   CredentialBrokerConfig
	graph    *entities.CredentialGraph
	prompter repositories.PromptRepository
	metrics  repositories.MetricsRepository
}

// NewCredentialBroker creates a broker with an empty credential graph.
func NewCredentialBroker(
	config CredentialBrokerConfig,
	prompter repositories.PromptRepository,
	metrics repositories.MetricsRepository,
) *CredentialBroker {
	return &CredentialBroker{
		config:   config,
		graph:    entities.NewCredentialGraph(),
		prompter: prompter,
		metrics:  metrics,
	}
}

// ObtainCredential returns the credential to offer for the clone at clonePath.
// A second call for the same clone path means the previous answer was rejected:
// that credential is excluded and an alternative is chosen whenever one exists.
// When prompting fails the stored state is left as it was.
func (it *CredentialBroker) ObtainCredential(
	identity entities.RepositoryIdentity,
	clonePath string,
	wantsSSH bool,
	rawURL string,
) (entities.Credential, error) {
	it.mu.Lock()
	defer it.mu.Unlock()

	it.graph.EnsureNode(identity)
	kind := entities.CredentialPlaintext
	if wantsSSH {
		kind = entities.CredentialSSHKey
	}

	state, retry := it.graph.Lookup(identity, clonePath)
	if !retry {
		credential, source, err := it.choose(identity, clonePath, kind, rawURL, entities.NewCredentialSet())
		if err != nil {
			return entities.Credential{}, err
		}
		it.graph.Insert(identity, clonePath, entities.NewClonedRepoState(credential))
		it.adopted(credential, source, rawURL)
		return credential, nil
	}

	rejected := entities.NewCredentialSet(state.Active)
	for credential := range state.Rejected {
		rejected.Add(credential)
	}

	credential, source, err := it.choose(identity, clonePath, kind, rawURL, rejected)
	if err != nil {
		return entities.Credential{}, err
	}
	if rejected.Contains(credential) {
		it.prompter.Printf("Warning: this credential was already rejected for %s, trying it anyway.\n", rawURL)
	}
	state.Rejected = rejected
	state.Active = credential
	it.adopted(credential, source, rawURL)
	return credential, nil
}

// AuthCallbackFor adapts the broker to the engine's authentication callback for one clone.
func (it *CredentialBroker) AuthCallbackFor(clonePath string) repositories.AuthCallback {
	return func(
		rawURL string,
		usernameFromURL string,
		kinds entities.CredentialKinds,
	) (entities.Credential, error) {
		var wantsSSH bool
		switch {
		case kinds.Has(entities.CredentialSSHKey):
			wantsSSH = true
		case kinds.Has(entities.CredentialPlaintext):
			wantsSSH = false
		default:
			return entities.Credential{}, &UnsupportedCredentialKindError{URL: rawURL, Kinds: kinds}
		}

		identity, err := entities.ParseRepositoryIdentity(rawURL)
		if err != nil {
			return entities.Credential{}, err
		}
		if identity.Username == "" {
			identity.Username = usernameFromURL
		}

		return it.ObtainCredential(identity, clonePath, wantsSSH, rawURL)
	}
}

// WhenIdle runs fn only if no negotiation is in progress and reports whether it ran.
func (it *CredentialBroker) WhenIdle(fn func()) bool {
	if !it.mu.TryLock() {
		return false
	}
	defer it.mu.Unlock()

	fn()
	return true
}

// choose walks the sources in priority order: a password configured for the
// exact URL, a credential another clone already uses, the configured default
// and finally the operator.
func (it *CredentialBroker) choose(
	identity entities.RepositoryIdentity,
	clonePath string,
	kind entities.CredentialKind,
	rawURL string,
	rejected entities.CredentialSet,
) (entities.Credential, entities.CredentialSource, error) {
	if kind == entities.CredentialPlaintext {
		if known, ok := it.config.KnownPlain[rawURL]; ok && !rejected.Contains(known) {
			return known, entities.SourceKnown, nil
		}
	}

	if reused, ok := it.graph.FindReusable(it.config.Policy, identity, clonePath, rejected, kind); ok {
		return reused, entities.SourceReused, nil
	}

	if it.config.Policy.AllowsDefaults() {
		if fallback := it.defaultFor(kind); fallback != nil && !rejected.Contains(*fallback) {
			return *fallback, entities.SourceDefault, nil
		}
	}

	prompted, err := it.prompt(kind, rawURL, rejected)
	if err != nil {
		return entities.Credential{}, "", fmt.Errorf("%w for %s: %w", ErrNegotiationFailed, rawURL, err)
	}
	return prompted, entities.SourcePrompted, nil
}

func (it *CredentialBroker) defaultFor(kind entities.CredentialKind) *entities.Credential {
	if kind == entities.CredentialSSHKey {
		return it.config.DefaultSSH
	}
	return it.config.DefaultPlain
}

func (it *CredentialBroker) prompt(
	kind entities.CredentialKind,
	rawURL string,
	rejected entities.CredentialSet,
) (entities.Credential, error) {
	if kind == entities.CredentialPlaintext {
		password, err := promptPassword(it.prompter, fmt.Sprintf("Password for %s: ", rawURL), false)
		if err != nil {
			return entities.Credential{}, err
		}
		return entities.NewPlaintext(password), nil
	}

	var untried []entities.Credential
	for _, key := range it.config.PreVerifiedSSHKeys {
		if !rejected.Contains(key) {
			untried = append(untried, key)
		}
	}
	if len(untried) > 0 {
		return promptKeyChoice(it.prompter, rawURL, untried)
	}

	passphrase, err := promptPassphrase(
		it.prompter,
		fmt.Sprintf("Passphrase for %s to access %s (blank for none): ", it.config.SSHKeyPath, rawURL),
	)
	if err != nil {
		return entities.Credential{}, err
	}
	return sshKeyWithPassphrase(it.config.SSHKeyPath, passphrase), nil
}

func (it *CredentialBroker) adopted(
	credential entities.Credential,
	source entities.CredentialSource,
	rawURL string,
) {
	it.metrics.RecordNegotiation(source)
	logger.Debugf("Offering %s for %s (%s)", credential, rawURL, source)
}
