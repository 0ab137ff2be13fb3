package entities

import "sort"

// Outcome classifies how the update of one clone ended.
type Outcome string

const (
	OutcomeNotARepository          Outcome = "not-a-repository"
	OutcomeNoRemote                Outcome = "no-remote"
	OutcomeAmbiguousRemote         Outcome = "ambiguous-remote"
	OutcomeBareRepository          Outcome = "bare-repository"
	OutcomeRemoteHeadMismatch      Outcome = "remote-head-mismatch"
	OutcomeDirtyWorkingTree        Outcome = "dirty-working-tree"
	OutcomeUpToDate                Outcome = "up-to-date"
	OutcomeUpdated                 Outcome = "updated"
	OutcomeNeedsResolution         Outcome = "fast-forward-needed-resolution"
	OutcomeMergeConflictReverted   Outcome = "merge-conflict-reverted"
	OutcomeMergeConflictUnresolved Outcome = "merge-conflict-unresolved"
	OutcomeFetchFailed             Outcome = "fetch-failed"
	OutcomeMergeAnalysisFailed     Outcome = "merge-analysis-failed"
	OutcomeOther                   Outcome = "other"
)

// ReportOrder is the order outcome groups are presented in.
// Quiet groups first, the interesting ones at the end where they stay visible.
var ReportOrder = []Outcome{
	OutcomeNotARepository,
	OutcomeNoRemote,
	OutcomeAmbiguousRemote,
	OutcomeBareRepository,
	OutcomeRemoteHeadMismatch,
	OutcomeUpToDate,
	OutcomeMergeAnalysisFailed,
	OutcomeMergeConflictReverted,
	OutcomeMergeConflictUnresolved,
	OutcomeDirtyWorkingTree,
	OutcomeFetchFailed,
	OutcomeNeedsResolution,
	OutcomeOther,
	OutcomeUpdated,
}

// Upgit is the result of updating one clone.
type Upgit struct {
	Path    string
	Outcome Outcome
	Report  string
}

// UpgitFor returns a constructor bound to one clone path.
func UpgitFor(path string) func(Outcome, string) Upgit {
	return func(outcome Outcome, report string) Upgit {
		return Upgit{Path: path, Outcome: outcome, Report: report}
	}
}

// SortUpgits orders results by path.
func SortUpgits(upgits []Upgit) {
	sort.SliceStable(upgits, func(i, j int) bool {
		return upgits[i].Path < upgits[j].Path
	})
}

// GroupUpgits buckets results by outcome, keeping their relative order.
func GroupUpgits(upgits []Upgit) map[Outcome][]Upgit {
	groups := make(map[Outcome][]Upgit)
	for _, upgit := range upgits {
		groups[upgit.Outcome] = append(groups[upgit.Outcome], upgit)
	}
	return groups
}
