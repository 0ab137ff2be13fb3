//go:build unit

package console_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/upgit/internal/domain/entities"
	"github.com/rios0rios0/upgit/internal/infrastructure/repositories/console"
)

func TestReportRepository_Present(t *testing.T) {
	t.Parallel()

	t.Run("should only count bare and up to date clones", func(t *testing.T) {
		t.Parallel()

		// given
		var output bytes.Buffer
		reporter := console.NewReportRepositoryTo(&output)
		upgits := []entities.Upgit{
			{Path: "/srv/a", Outcome: entities.OutcomeUpToDate},
			{Path: "/srv/b", Outcome: entities.OutcomeUpToDate},
			{Path: "/srv/c", Outcome: entities.OutcomeBareRepository},
		}

		// when
		err := reporter.Present(upgits)

		// then
		require.NoError(t, err)
		assert.Contains(t, output.String(), "Up to date (2)\n")
		assert.Contains(t, output.String(), "Bare repo, skipped (1)\n")
		assert.NotContains(t, output.String(), "/srv/a")
	})

	t.Run("should list reports of clones that need attention", func(t *testing.T) {
		t.Parallel()

		// given
		var output bytes.Buffer
		reporter := console.NewReportRepositoryTo(&output)
		upgits := []entities.Upgit{
			{Path: "/srv/dirty", Outcome: entities.OutcomeDirtyWorkingTree, Report: "M main.go"},
			{Path: "/srv/lonely", Outcome: entities.OutcomeNoRemote},
		}

		// when
		err := reporter.Present(upgits)

		// then
		require.NoError(t, err)
		assert.Contains(t, output.String(), "Dirty, skipped (1):\n  /srv/dirty\n    M main.go\n")
		assert.Contains(t, output.String(), "No remote (1):\n  /srv/lonely\n")
	})

	t.Run("should present groups in report order with updated clones last", func(t *testing.T) {
		t.Parallel()

		// given
		var output bytes.Buffer
		reporter := console.NewReportRepositoryTo(&output)
		upgits := []entities.Upgit{
			{Path: "/srv/new", Outcome: entities.OutcomeUpdated, Report: " README.md | 2 +-"},
			{Path: "/srv/broken", Outcome: entities.OutcomeFetchFailed, Report: "authentication failed"},
			{Path: "/srv/plain", Outcome: entities.OutcomeNotARepository},
		}

		// when
		err := reporter.Present(upgits)

		// then
		require.NoError(t, err)
		text := output.String()
		notRepo := strings.Index(text, "Not a repo (1)")
		fetch := strings.Index(text, "Couldn't fetch (1)")
		updated := strings.Index(text, "Updated (1)")
		assert.Less(t, notRepo, fetch)
		assert.Less(t, fetch, updated)
		assert.Contains(t, text, "/srv/new:\n README.md | 2 +-\n")
	})

	t.Run("should print only a blank line when nothing was processed", func(t *testing.T) {
		t.Parallel()

		// given
		var output bytes.Buffer
		reporter := console.NewReportRepositoryTo(&output)

		// when
		err := reporter.Present(nil)

		// then
		require.NoError(t, err)
		assert.Equal(t, "\n", output.String())
	})
}
