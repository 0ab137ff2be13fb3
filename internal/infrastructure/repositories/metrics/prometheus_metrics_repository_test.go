//go:build unit

package metrics_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/upgit/internal/domain/entities"
	"github.com/rios0rios0/upgit/internal/infrastructure/repositories/metrics"
)

func TestMetricsRepository(t *testing.T) {
	t.Parallel()

	t.Run("should count negotiations by source", func(t *testing.T) {
		t.Parallel()

		// given
		repository := metrics.NewMetricsRepository()

		// when
		repository.RecordNegotiation(entities.SourcePrompted)
		repository.RecordNegotiation(entities.SourceReused)
		repository.RecordNegotiation(entities.SourceReused)

		// then
		assert.InDelta(t, 1, testutil.ToFloat64(repository.Negotiations().WithLabelValues("prompted")), 0)
		assert.InDelta(t, 2, testutil.ToFloat64(repository.Negotiations().WithLabelValues("reused")), 0)
	})

	t.Run("should count outcomes by kind", func(t *testing.T) {
		t.Parallel()

		// given
		repository := metrics.NewMetricsRepository()

		// when
		repository.RecordOutcome(entities.OutcomeUpdated)
		repository.RecordOutcome(entities.OutcomeUpToDate)

		// then
		assert.InDelta(t, 1, testutil.ToFloat64(repository.Outcomes().WithLabelValues("updated")), 0)
		assert.Equal(t, 2, testutil.CollectAndCount(repository.Outcomes()))
	})

	t.Run("should write the counters to a textfile", func(t *testing.T) {
		t.Parallel()

		// given
		repository := metrics.NewMetricsRepository()
		repository.RecordOutcome(entities.OutcomeUpdated)
		repository.RecordNegotiation(entities.SourceDefault)
		path := filepath.Join(t.TempDir(), "upgit.prom")

		// when
		err := repository.Flush(path)

		// then
		require.NoError(t, err)
		content, readErr := os.ReadFile(path)
		require.NoError(t, readErr)
		assert.Contains(t, string(content), `upgit_outcomes_total{outcome="updated"} 1`)
		assert.Contains(t, string(content), `upgit_credential_negotiations_total{source="default"} 1`)
	})

	t.Run("should skip writing when no path is configured", func(t *testing.T) {
		t.Parallel()

		// given
		repository := metrics.NewMetricsRepository()

		// when
		err := repository.Flush("")

		// then
		require.NoError(t, err)
	})

	t.Run("should fail when the textfile cannot be written", func(t *testing.T) {
		t.Parallel()

		// given
		repository := metrics.NewMetricsRepository()
		path := filepath.Join(t.TempDir(), "missing", "upgit.prom")

		// when
		err := repository.Flush(path)

		// then
		require.Error(t, err)
	})
}
