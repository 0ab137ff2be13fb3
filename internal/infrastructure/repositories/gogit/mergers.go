package gogit

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/upgit/internal/domain/entities"
)

const defaultGitBinary = "git"

// FastForwardOnlyMerger leaves diverged clones for the operator to resolve.
type FastForwardOnlyMerger struct{}

func (m *FastForwardOnlyMerger) Merge(_ context.Context, request MergeRequest) (entities.Outcome, string) {
	report := fmt.Sprintf(
		"local %s and %s have diverged",
		shortHash(request.Local.Hash.String()), request.RemoteBranch,
	)
	bases, err := request.Local.MergeBase(request.Upstream)
	if err == nil && len(bases) > 0 {
		report += fmt.Sprintf(" since %s", shortHash(bases[0].Hash.String()))
	}
	return entities.OutcomeNeedsResolution, report
}

// CommitMerger runs "git merge" because go-git cannot create merge commits.
// A conflicting merge is aborted so the clone is left as it was.
type CommitMerger struct {
	gitBinary string
}

// NewCommitMerger creates a merger that shells out to gitBinary.
func NewCommitMerger(gitBinary string) *CommitMerger {
	return &CommitMerger{gitBinary: gitBinary}
}

func (m *CommitMerger) Merge(ctx context.Context, request MergeRequest) (entities.Outcome, string) {
	output, err := m.run(ctx, request.ClonePath, "merge", "--no-edit", request.RemoteBranch)
	if err == nil {
		return entities.OutcomeUpdated, output
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return entities.OutcomeOther, fmt.Sprintf("failed to run %s: %v", m.gitBinary, err)
	}

	logger.Debugf("Merge of %s into %s failed, aborting: %s", request.RemoteBranch, request.ClonePath, output)
	abortOutput, abortErr := m.run(ctx, request.ClonePath, "merge", "--abort")
	if abortErr != nil {
		return entities.OutcomeMergeConflictUnresolved, strings.TrimSpace(output + "\n" + abortOutput)
	}
	return entities.OutcomeMergeConflictReverted, output
}

func (m *CommitMerger) run(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, m.gitBinary, args...)
	cmd.Dir = dir

	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output
	err := cmd.Run()
	return strings.TrimSpace(output.String()), err
}

func shortHash(hash string) string {
	const length = 7
	if len(hash) <= length {
		return hash
	}
	return hash[:length]
}
