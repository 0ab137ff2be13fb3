package repositories

import "github.com/rios0rios0/upgit/internal/domain/entities"

// MetricsRepository counts what happened during a run.
type MetricsRepository interface {
	RecordNegotiation(source entities.CredentialSource)
	RecordOutcome(outcome entities.Outcome)
	// Flush writes the collected metrics to path; an empty path is a no-op.
	Flush(path string) error
}
