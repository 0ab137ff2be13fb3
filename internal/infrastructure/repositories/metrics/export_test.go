package metrics

import "github.com/prometheus/client_golang/prometheus"

func (it *MetricsRepository) Negotiations() *prometheus.CounterVec {
	return it.negotiations
}

func (it *MetricsRepository) Outcomes() *prometheus.CounterVec {
	return it.outcomes
}
