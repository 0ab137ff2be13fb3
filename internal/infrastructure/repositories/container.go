package repositories

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/upgit/internal/domain/repositories"
	"github.com/rios0rios0/upgit/internal/infrastructure/repositories/console"
	"github.com/rios0rios0/upgit/internal/infrastructure/repositories/gogit"
	"github.com/rios0rios0/upgit/internal/infrastructure/repositories/metrics"
	"github.com/rios0rios0/upgit/internal/infrastructure/repositories/oskeyring"
	"github.com/rios0rios0/upgit/internal/infrastructure/repositories/sshkey"
	"github.com/rios0rios0/upgit/internal/infrastructure/repositories/terminal"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register merger registry with every merge strategy
	if err := container.Provide(gogit.NewDefaultMergerRegistry); err != nil {
		return err
	}

	// Register adapter constructors
	for _, constructor := range []any{
		gogit.NewVersionControlRepository,
		terminal.NewPromptRepository,
		sshkey.NewKeyVerifierRepository,
		oskeyring.NewSecretRepository,
		metrics.NewMetricsRepository,
		console.NewReportRepository,
		console.NewProgressRepository,
	} {
		if err := container.Provide(constructor); err != nil {
			return err
		}
	}

	// Bind interfaces to implementations
	if err := container.Provide(func(impl *gogit.VersionControlRepository) repositories.VersionControlRepository {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *terminal.PromptRepository) repositories.PromptRepository {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *sshkey.KeyVerifierRepository) repositories.KeyVerifierRepository {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *oskeyring.SecretRepository) repositories.SecretRepository {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *metrics.MetricsRepository) repositories.MetricsRepository {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *console.ReportRepository) repositories.ReportRepository {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *console.ProgressRepository) repositories.ProgressRepository {
		return impl
	}); err != nil {
		return err
	}

	return nil
}
