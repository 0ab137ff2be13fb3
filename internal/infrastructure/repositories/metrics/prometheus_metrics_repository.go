package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/rios0rios0/upgit/internal/domain/entities"
	"github.com/rios0rios0/upgit/internal/domain/repositories"
)

// MetricsRepository counts negotiations and outcomes on a private Prometheus registry.
// The run is short lived, so the counters are written to a textfile instead of served.
type MetricsRepository struct {
	registry     *prometheus.Registry
	negotiations *prometheus.CounterVec
	outcomes     *prometheus.CounterVec
}

var _ repositories.MetricsRepository = (*MetricsRepository)(nil)

func NewMetricsRepository() *MetricsRepository {
	registry := prometheus.NewRegistry()
	negotiations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "upgit_credential_negotiations_total",
		Help: "Credentials adopted by the broker, by where they came from",
	}, []string{"source"})
	outcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "upgit_outcomes_total",
		Help: "Clones processed during the run, by outcome",
	}, []string{"outcome"})
	registry.MustRegister(negotiations, outcomes)

	return &MetricsRepository{
		registry:     registry,
		negotiations: negotiations,
		outcomes:     outcomes,
	}
}

func (it *MetricsRepository) RecordNegotiation(source entities.CredentialSource) {
	it.negotiations.WithLabelValues(string(source)).Inc()
}

func (it *MetricsRepository) RecordOutcome(outcome entities.Outcome) {
	it.outcomes.WithLabelValues(string(outcome)).Inc()
}

func (it *MetricsRepository) Flush(path string) error {
	if path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, it.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
