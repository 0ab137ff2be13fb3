//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/rios0rios0/upgit/internal/domain/entities"
	"github.com/rios0rios0/upgit/internal/domain/repositories"
)

// StubVersionControlRepository implements repositories.VersionControlRepository.
// UpdateFunc decides the result when set, otherwise every clone is up to date.
// It tracks the highest number of concurrent Update calls it has seen.
type StubVersionControlRepository struct {
	// --- Update ---
	UpdateFunc func(
		ctx context.Context,
		clonePath string,
		opts entities.UpdateOptions,
		auth repositories.AuthCallback,
	) entities.Upgit

	mu sync.Mutex
	// spy: clone paths updated, in completion order
	UpdatedPaths []string
	LastOpts     entities.UpdateOptions

	inFlight    atomic.Int32
	maxInFlight atomic.Int32
}

var _ repositories.VersionControlRepository = (*StubVersionControlRepository)(nil)

func (s *StubVersionControlRepository) Update(
	ctx context.Context,
	clonePath string,
	opts entities.UpdateOptions,
	auth repositories.AuthCallback,
) entities.Upgit {
	current := s.inFlight.Add(1)
	defer s.inFlight.Add(-1)
	for {
		seen := s.maxInFlight.Load()
		if current <= seen || s.maxInFlight.CompareAndSwap(seen, current) {
			break
		}
	}

	upgit := entities.UpgitFor(clonePath)(entities.OutcomeUpToDate, "")
	if s.UpdateFunc != nil {
		upgit = s.UpdateFunc(ctx, clonePath, opts, auth)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.UpdatedPaths = append(s.UpdatedPaths, clonePath)
	s.LastOpts = opts
	return upgit
}

// MaxInFlight is the highest number of simultaneous Update calls observed.
func (s *StubVersionControlRepository) MaxInFlight() int {
	return int(s.maxInFlight.Load())
}
