//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"sync"

	"github.com/rios0rios0/upgit/internal/domain/entities"
	"github.com/rios0rios0/upgit/internal/domain/repositories"
)

// SpyMetricsRepository implements repositories.MetricsRepository by counting in memory.
// It is safe for concurrent use.
type SpyMetricsRepository struct {
	mu sync.Mutex

	// --- RecordNegotiation ---
	Negotiations map[entities.CredentialSource]int

	// --- RecordOutcome ---
	Outcomes map[entities.Outcome]int

	// --- Flush ---
	FlushErr     error
	FlushedPaths []string
}

var _ repositories.MetricsRepository = (*SpyMetricsRepository)(nil)

// NewSpyMetricsRepository creates an empty spy.
func NewSpyMetricsRepository() *SpyMetricsRepository {
	return &SpyMetricsRepository{
		Negotiations: make(map[entities.CredentialSource]int),
		Outcomes:     make(map[entities.Outcome]int),
	}
}

func (m *SpyMetricsRepository) RecordNegotiation(source entities.CredentialSource) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Negotiations[source]++
}

func (m *SpyMetricsRepository) RecordOutcome(outcome entities.Outcome) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Outcomes[outcome]++
}

func (m *SpyMetricsRepository) Flush(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FlushedPaths = append(m.FlushedPaths, path)
	return m.FlushErr
}

// NegotiationCount returns the count recorded for source.
func (m *SpyMetricsRepository) NegotiationCount(source entities.CredentialSource) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Negotiations[source]
}

// DummyMetricsRepository is a no-op implementation of repositories.MetricsRepository.
type DummyMetricsRepository struct{}

var _ repositories.MetricsRepository = (*DummyMetricsRepository)(nil)

func (d *DummyMetricsRepository) RecordNegotiation(_ entities.CredentialSource) {}

func (d *DummyMetricsRepository) RecordOutcome(_ entities.Outcome) {}

func (d *DummyMetricsRepository) Flush(_ string) error { return nil }
