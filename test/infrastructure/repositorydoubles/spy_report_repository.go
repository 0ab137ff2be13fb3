//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"sync"

	"github.com/rios0rios0/upgit/internal/domain/entities"
	"github.com/rios0rios0/upgit/internal/domain/repositories"
)

// SpyReportRepository implements repositories.ReportRepository by keeping what it was given.
type SpyReportRepository struct {
	PresentErr error
	// spy: result lists presented
	Presented [][]entities.Upgit
}

var _ repositories.ReportRepository = (*SpyReportRepository)(nil)

func (r *SpyReportRepository) Present(upgits []entities.Upgit) error {
	r.Presented = append(r.Presented, upgits)
	return r.PresentErr
}

// SpyProgressRepository implements repositories.ProgressRepository.
type SpyProgressRepository struct {
	mu sync.Mutex
	// spy: done counts rendered
	Rendered []int
	Finished bool
}

var _ repositories.ProgressRepository = (*SpyProgressRepository)(nil)

func (p *SpyProgressRepository) Render(done, _ int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Rendered = append(p.Rendered, done)
}

func (p *SpyProgressRepository) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Finished = true
}
