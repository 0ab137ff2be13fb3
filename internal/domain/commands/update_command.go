package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	logger "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/rios0rios0/upgit/internal/domain/entities"
	"github.com/rios0rios0/upgit/internal/domain/repositories"
)

// Update is the interface for the update command.
type Update interface {
	Execute(ctx context.Context, settings *entities.Settings, opts UpdateRunOptions) ([]entities.Upgit, error)
}

// UpdateRunOptions holds runtime options for a single run.
type UpdateRunOptions struct {
	Verbose bool
	RunID   string
}

// UpdateCommand updates every clone found in the configured directories,
// a bounded number at a time, sharing one credential broker between them.
type UpdateCommand struct {
	engine   repositories.VersionControlRepository
	setup    Setup
	prompter repositories.PromptRepository
	metrics  repositories.MetricsRepository
	reporter repositories.ReportRepository
	progress repositories.ProgressRepository
}

// NewUpdateCommand creates a new UpdateCommand.
func NewUpdateCommand(
	engine repositories.VersionControlRepository,
	setup Setup,
	prompter repositories.PromptRepository,
	metrics repositories.MetricsRepository,
	reporter repositories.ReportRepository,
	progress repositories.ProgressRepository,
) *UpdateCommand {
	return &UpdateCommand{
		engine:   engine,
		setup:    setup,
		prompter: prompter,
		metrics:  metrics,
		reporter: reporter,
		progress: progress,
	}
}

// Execute runs one update cycle and returns the results sorted by path.
func (it *UpdateCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts UpdateRunOptions,
) ([]entities.Upgit, error) {
	if opts.Verbose {
		logger.SetLevel(logger.DebugLevel)
	}
	log := logger.WithField("run_id", opts.RunID)

	brokerConfig, err := it.setup.Configure(settings)
	if err != nil {
		return nil, fmt.Errorf("credential setup failed: %w", err)
	}
	broker := NewCredentialBroker(brokerConfig, it.prompter, it.metrics)

	clonePaths := discoverClones(settings.GitDirs, log)
	log.Infof("Updating %d clones with up to %d at a time", len(clonePaths), settings.Concurrency)

	updateOpts := entities.UpdateOptions{
		MergeStrategy:   settings.MergeStrategy,
		MaxAuthAttempts: settings.MaxAuthAttempts,
		Verbose:         opts.Verbose,
	}

	results := make(chan entities.Upgit, len(clonePaths))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(settings.Concurrency)
	go func() {
		for _, clonePath := range clonePaths {
			group.Go(func() error {
				results <- it.engine.Update(groupCtx, clonePath, updateOpts, broker.AuthCallbackFor(clonePath))
				return nil
			})
		}
		_ = group.Wait()
		close(results)
	}()

	upgits := make([]entities.Upgit, 0, len(clonePaths))
	for upgit := range results {
		upgits = append(upgits, upgit)
		it.metrics.RecordOutcome(upgit.Outcome)
		done := len(upgits)
		broker.WhenIdle(func() {
			it.progress.Render(done, len(clonePaths))
		})
	}
	it.progress.Finish()

	entities.SortUpgits(upgits)
	if flushErr := it.metrics.Flush(settings.MetricsFile); flushErr != nil {
		log.Warnf("Failed to write metrics to %q: %v", settings.MetricsFile, flushErr)
	}
	if presentErr := it.reporter.Present(upgits); presentErr != nil {
		return upgits, fmt.Errorf("failed to present results: %w", presentErr)
	}

	log.Infof("Run complete: %d clones processed", len(upgits))
	return upgits, nil
}

// discoverClones lists the immediate subdirectories of every git directory.
// Unreadable directories are logged and skipped.
func discoverClones(gitDirs []string, log *logger.Entry) []string {
	var clonePaths []string
	for _, gitDir := range gitDirs {
		root, err := filepath.Abs(entities.ExpandHome(gitDir))
		if err != nil {
			log.Warnf("Skipping %q: %v", gitDir, err)
			continue
		}

		entries, err := os.ReadDir(root)
		if err != nil {
			log.Warnf("Skipping %q: %v", root, err)
			continue
		}

		for _, entry := range entries {
			clonePath := filepath.Join(root, entry.Name())
			if entry.IsDir() || isDirSymlink(entry, clonePath) {
				clonePaths = append(clonePaths, clonePath)
			}
		}
	}
	return clonePaths
}

func isDirSymlink(entry os.DirEntry, path string) bool {
	if entry.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
