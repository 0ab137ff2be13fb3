package commands

import "github.com/rios0rios0/upgit/internal/domain/entities"

// DiscoverClones exports discoverClones for testing.
var DiscoverClones = discoverClones //nolint:gochecknoglobals // test export

// PromptPassphrase exports promptPassphrase for testing.
var PromptPassphrase = promptPassphrase //nolint:gochecknoglobals // test export

// PromptPassword exports promptPassword for testing.
var PromptPassword = promptPassword //nolint:gochecknoglobals // test export

// Graph exposes the broker's credential graph for testing.
func (it *CredentialBroker) Graph() *entities.CredentialGraph {
	return it.graph
}
