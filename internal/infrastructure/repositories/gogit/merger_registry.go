package gogit

import (
	"context"
	"fmt"
	"sort"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/rios0rios0/upgit/internal/domain/entities"
)

// MergeRequest describes a clone whose branch has diverged from its remote counterpart.
type MergeRequest struct {
	ClonePath    string
	Repository   *git.Repository
	Local        *object.Commit
	Upstream     *object.Commit
	RemoteBranch string
}

// Merger decides what to do with a diverged clone.
type Merger interface {
	Merge(ctx context.Context, request MergeRequest) (entities.Outcome, string)
}

// MergerRegistry manages the merger registered for every merge strategy.
type MergerRegistry struct {
	mergers map[entities.MergeStrategy]Merger
}

// NewMergerRegistry creates an empty merger registry.
func NewMergerRegistry() *MergerRegistry {
	return &MergerRegistry{
		mergers: make(map[entities.MergeStrategy]Merger),
	}
}

// NewDefaultMergerRegistry registers the fast-forward-only and merge-commit strategies.
func NewDefaultMergerRegistry() *MergerRegistry {
	registry := NewMergerRegistry()
	registry.Register(entities.MergeFastForwardOnly, &FastForwardOnlyMerger{})
	registry.Register(entities.MergeCommit, NewCommitMerger(defaultGitBinary))
	return registry
}

// Register adds a merger under the given strategy.
func (r *MergerRegistry) Register(strategy entities.MergeStrategy, merger Merger) {
	r.mergers[strategy] = merger
}

// Get returns the merger for the given strategy.
func (r *MergerRegistry) Get(strategy entities.MergeStrategy) (Merger, error) {
	merger, ok := r.mergers[strategy]
	if !ok {
		return nil, fmt.Errorf("%w: %q", entities.ErrUnknownMergeStrategy, strategy)
	}
	return merger, nil
}

// Names returns the registered strategies, sorted.
func (r *MergerRegistry) Names() []string {
	names := make([]string, 0, len(r.mergers))
	for strategy := range r.mergers {
		names = append(names, string(strategy))
	}
	sort.Strings(names)
	return names
}
