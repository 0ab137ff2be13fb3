package repositories

import "github.com/rios0rios0/upgit/internal/domain/entities"

// ReportRepository presents the final results of a run.
type ReportRepository interface {
	Present(upgits []entities.Upgit) error
}

// ProgressRepository shows how many clones are finished.
type ProgressRepository interface {
	Render(done, total int)
	Finish()
}
