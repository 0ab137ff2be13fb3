package entities

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownMergeStrategy is returned for unrecognised merge strategy names.
var ErrUnknownMergeStrategy = errors.New("unknown merge strategy")

// MergeStrategy decides what happens when a clone has diverged from its remote.
type MergeStrategy string

const (
	// MergeFastForwardOnly leaves diverged clones alone.
	MergeFastForwardOnly MergeStrategy = "ff-only"
	// MergeCommit creates a merge commit and backs out on conflicts.
	MergeCommit MergeStrategy = "merge"
)

// ParseMergeStrategy is case-insensitive.
func ParseMergeStrategy(name string) (MergeStrategy, error) {
	switch strategy := MergeStrategy(strings.ToLower(strings.TrimSpace(name))); strategy {
	case MergeFastForwardOnly, MergeCommit:
		return strategy, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMergeStrategy, name)
	}
}

// DefaultMaxAuthAttempts bounds how often one fetch asks for a credential.
const DefaultMaxAuthAttempts = 5

// UpdateOptions holds runtime options passed to the version control engine.
type UpdateOptions struct {
	MergeStrategy   MergeStrategy
	MaxAuthAttempts int
	Verbose         bool
}
