package gogit

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/upgit/internal/domain/entities"
	"github.com/rios0rios0/upgit/internal/domain/repositories"
)

// ErrAuthAttemptsExhausted is returned when every offered credential was rejected.
var ErrAuthAttemptsExhausted = errors.New("authentication attempts exhausted")

// fetchFunc fetches remote with the given auth method, nil meaning anonymous.
type fetchFunc func(ctx context.Context, remote *git.Remote, auth transport.AuthMethod) error

// VersionControlRepository updates clones with go-git.
type VersionControlRepository struct {
	mergers *MergerRegistry
	fetch   fetchFunc
}

var _ repositories.VersionControlRepository = (*VersionControlRepository)(nil)

// NewVersionControlRepository creates a go-git engine that handles diverged clones with mergers.
func NewVersionControlRepository(mergers *MergerRegistry) *VersionControlRepository {
	return &VersionControlRepository{
		mergers: mergers,
		fetch:   fetchRemote,
	}
}

// Update opens the clone, fetches its remote and fast-forwards the current
// branch. Clones that are not safe to touch are reported and left alone.
func (it *VersionControlRepository) Update(
	ctx context.Context,
	clonePath string,
	opts entities.UpdateOptions,
	auth repositories.AuthCallback,
) entities.Upgit {
	upgit := entities.UpgitFor(clonePath)

	repo, err := git.PlainOpen(clonePath)
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return upgit(entities.OutcomeNotARepository, "")
		}
		return upgit(entities.OutcomeOther, err.Error())
	}

	remote, outcome, report := selectRemote(repo)
	if remote == nil {
		return upgit(outcome, report)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		if errors.Is(err, git.ErrIsBareRepository) {
			return upgit(entities.OutcomeBareRepository, "")
		}
		return upgit(entities.OutcomeOther, err.Error())
	}
	status, err := worktree.Status()
	if err != nil {
		return upgit(entities.OutcomeOther, fmt.Sprintf("failed to read status: %v", err))
	}
	if !status.IsClean() {
		return upgit(entities.OutcomeDirtyWorkingTree, dirtyReport(status))
	}

	head, err := repo.Head()
	if err != nil {
		return upgit(entities.OutcomeOther, fmt.Sprintf("failed to resolve HEAD: %v", err))
	}
	if !head.Name().IsBranch() {
		return upgit(entities.OutcomeOther, "HEAD is not on a branch")
	}

	if fetchErr := it.fetchWithAuth(ctx, remote, opts, auth); fetchErr != nil {
		return upgit(entities.OutcomeFetchFailed, fetchErr.Error())
	}

	remoteName := remote.Config().Name
	branch := head.Name().Short()
	remoteRef, err := repo.Reference(plumbing.NewRemoteReferenceName(remoteName, branch), true)
	if err != nil {
		return upgit(entities.OutcomeRemoteHeadMismatch, fmt.Sprintf("%s has no branch %q", remoteName, branch))
	}

	outcome, report = it.integrate(ctx, clonePath, repo, worktree, head, remoteRef, opts)
	return upgit(outcome, report)
}

func (it *VersionControlRepository) integrate(
	ctx context.Context,
	clonePath string,
	repo *git.Repository,
	worktree *git.Worktree,
	head *plumbing.Reference,
	remoteRef *plumbing.Reference,
	opts entities.UpdateOptions,
) (entities.Outcome, string) {
	if head.Hash() == remoteRef.Hash() {
		return entities.OutcomeUpToDate, ""
	}

	local, err := repo.CommitObject(head.Hash())
	if err != nil {
		return entities.OutcomeMergeAnalysisFailed, err.Error()
	}
	upstream, err := repo.CommitObject(remoteRef.Hash())
	if err != nil {
		return entities.OutcomeMergeAnalysisFailed, err.Error()
	}

	ahead, err := upstream.IsAncestor(local)
	if err != nil {
		return entities.OutcomeMergeAnalysisFailed, err.Error()
	}
	if ahead {
		return entities.OutcomeUpToDate, ""
	}

	fastForward, err := local.IsAncestor(upstream)
	if err != nil {
		return entities.OutcomeMergeAnalysisFailed, err.Error()
	}
	if fastForward {
		if resetErr := worktree.Reset(&git.ResetOptions{Commit: upstream.Hash, Mode: git.HardReset}); resetErr != nil {
			return entities.OutcomeOther, fmt.Sprintf("failed to fast-forward: %v", resetErr)
		}
		return entities.OutcomeUpdated, diffReport(local, upstream)
	}

	merger, err := it.mergers.Get(opts.MergeStrategy)
	if err != nil {
		return entities.OutcomeOther, err.Error()
	}
	return merger.Merge(ctx, MergeRequest{
		ClonePath:    clonePath,
		Repository:   repo,
		Local:        local,
		Upstream:     upstream,
		RemoteBranch: remoteRef.Name().Short(),
	})
}

// fetchWithAuth tries HTTP remotes anonymously first and asks for a credential
// only when the server demands one. SSH remotes always need a credential.
// Every rejected credential leads to a new request, up to MaxAuthAttempts.
func (it *VersionControlRepository) fetchWithAuth(
	ctx context.Context,
	remote *git.Remote,
	opts entities.UpdateOptions,
	auth repositories.AuthCallback,
) error {
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return fmt.Errorf("remote %q has no URL", remote.Config().Name)
	}
	rawURL := urls[0]

	endpoint, err := transport.NewEndpoint(rawURL)
	if err != nil {
		return fmt.Errorf("invalid remote URL %q: %w", rawURL, err)
	}
	kinds := credentialKindsFor(endpoint)

	maxAttempts := opts.MaxAuthAttempts
	if maxAttempts <= 0 {
		maxAttempts = entities.DefaultMaxAuthAttempts
	}

	var (
		method    transport.AuthMethod
		lastErr   error
		attempts  int
		needsAuth = kinds.Has(entities.CredentialSSHKey)
	)
	for {
		if needsAuth {
			if attempts >= maxAttempts {
				return fmt.Errorf("%w after %d attempts: %w", ErrAuthAttemptsExhausted, attempts, lastErr)
			}
			attempts++

			credential, authErr := auth(rawURL, endpoint.User, kinds)
			if authErr != nil {
				return authErr
			}
			method, err = authMethodFor(credential, endpoint.User)
			if err != nil {
				logger.Debugf("Credential for %s unusable: %v", rawURL, err)
				lastErr = err
				continue
			}
		}

		err = it.fetch(ctx, remote, method)
		if err == nil || errors.Is(err, git.NoErrAlreadyUpToDate) {
			return nil
		}
		if kinds == 0 || !isAuthRejection(err) {
			return err
		}
		logger.Debugf("Fetch of %s rejected (attempt %d): %v", rawURL, attempts, err)
		lastErr = err
		needsAuth = true
	}
}

func fetchRemote(ctx context.Context, remote *git.Remote, auth transport.AuthMethod) error {
	return remote.FetchContext(ctx, &git.FetchOptions{
		RemoteName: remote.Config().Name,
		Auth:       auth,
	})
}

// selectRemote picks origin, or the only remote when there is exactly one.
func selectRemote(repo *git.Repository) (*git.Remote, entities.Outcome, string) {
	remotes, err := repo.Remotes()
	if err != nil {
		return nil, entities.OutcomeOther, fmt.Sprintf("failed to list remotes: %v", err)
	}
	if len(remotes) == 0 {
		return nil, entities.OutcomeNoRemote, ""
	}

	names := make([]string, 0, len(remotes))
	for _, remote := range remotes {
		if remote.Config().Name == git.DefaultRemoteName {
			return remote, "", ""
		}
		names = append(names, remote.Config().Name)
	}
	if len(remotes) == 1 {
		return remotes[0], "", ""
	}

	sort.Strings(names)
	return nil, entities.OutcomeAmbiguousRemote, "remotes: " + strings.Join(names, ", ")
}

func dirtyReport(status git.Status) string {
	paths := make([]string, 0, len(status))
	for path := range status {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	lines := make([]string, 0, len(paths))
	for _, path := range paths {
		fileStatus := status[path]
		lines = append(lines, fmt.Sprintf("%c%c %s", fileStatus.Staging, fileStatus.Worktree, path))
	}
	return strings.Join(lines, "\n")
}

func diffReport(from, to *object.Commit) string {
	header := fmt.Sprintf("%s..%s", shortHash(from.Hash.String()), shortHash(to.Hash.String()))
	patch, err := from.Patch(to)
	if err != nil {
		return header
	}

	stats := patch.Stats()
	var added, deleted int
	for _, stat := range stats {
		added += stat.Addition
		deleted += stat.Deletion
	}
	return fmt.Sprintf(
		"%s\n%s %d files changed, %d insertions(+), %d deletions(-)",
		header, stats.String(), len(stats), added, deleted,
	)
}
