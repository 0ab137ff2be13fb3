package entities

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownSharePolicy is returned for unrecognised policy names.
var ErrUnknownSharePolicy = errors.New("unknown share policy")

// SharePolicy controls how far credentials travel between clones.
// Each level includes all the reuse of the levels below it.
type SharePolicy int

const (
	// ShareNever disables every kind of reuse, including configured defaults.
	ShareNever SharePolicy = iota
	// ShareDefaults only hands out the configured default credentials.
	ShareDefaults
	// ShareDuplicate also reuses credentials between clones of the same repository.
	ShareDuplicate
	// ShareOrganization also reuses credentials between repositories of one organization.
	ShareOrganization
	// ShareIdentity also reuses credentials across organizations of one account on one server.
	ShareIdentity
)

// DefaultSharePolicy is used when nothing is configured.
const DefaultSharePolicy = ShareIdentity

var sharePolicyNames = map[SharePolicy]string{
	ShareNever:        "never",
	ShareDefaults:     "defaults",
	ShareDuplicate:    "duplicate",
	ShareOrganization: "organization",
	ShareIdentity:     "identity",
}

// ParseSharePolicy is case-insensitive.
func ParseSharePolicy(name string) (SharePolicy, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for policy, policyName := range sharePolicyNames {
		if policyName == normalized {
			return policy, nil
		}
	}
	return ShareNever, fmt.Errorf("%w: %q", ErrUnknownSharePolicy, name)
}

func (it SharePolicy) String() string {
	if name, ok := sharePolicyNames[it]; ok {
		return name
	}
	return fmt.Sprintf("share-policy(%d)", int(it))
}

// AllowsDefaults reports whether configured default credentials may be handed out.
func (it SharePolicy) AllowsDefaults() bool {
	return it >= ShareDefaults
}
