//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/upgit/internal/domain/commands"
	"github.com/rios0rios0/upgit/internal/domain/entities"
)

// StubKeysCommand is a stub implementation of commands.Keys.
type StubKeysCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	Checks           []commands.KeyCheck
	LastSettings     *entities.Settings
}

var _ commands.Keys = (*StubKeysCommand)(nil)

func (s *StubKeysCommand) Execute(settings *entities.Settings) ([]commands.KeyCheck, error) {
	s.ExecuteCallCount++
	s.LastSettings = settings
	return s.Checks, s.ExecuteErr
}
