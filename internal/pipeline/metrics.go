package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"

	"civicsync/internal/resolver"
)

// Metrics collects per-run counters on a private registry. A one-shot batch
// job has nothing to scrape, so the registry is flushed to a textfile in
// node_exporter textfile-collector format when configured.
type Metrics struct {
	registry *prometheus.Registry

	rowsFetched        prometheus.Counter
	rowsSkipped        prometheus.Counter
	resolutions        *prometheus.CounterVec
	politiciansWritten prometheus.Gauge
	runDuration        prometheus.Gauge
	runSucceeded       prometheus.Gauge
}

// NewMetrics builds the run metrics and registers them on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		rowsFetched: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "civicsync_rows_fetched_total",
			Help: "Rating rows returned by the warehouse query.",
		}),
		rowsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "civicsync_rows_skipped_total",
			Help: "Rating rows dropped for missing candidate name or issue column.",
		}),
		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "civicsync_name_resolutions_total",
			Help: "Candidate name resolutions by lookup tier.",
		}, []string{"tier"}),
		politiciansWritten: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "civicsync_politicians_written",
			Help: "Politicians present in the tree written by the last run.",
		}),
		runDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "civicsync_run_duration_seconds",
			Help: "Wall-clock duration of the last run.",
		}),
		runSucceeded: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "civicsync_run_succeeded",
			Help: "1 when the last run completed, 0 otherwise.",
		}),
	}
	m.registry.MustRegister(
		m.rowsFetched, m.rowsSkipped, m.resolutions,
		m.politiciansWritten, m.runDuration, m.runSucceeded,
	)
	// Pre-create the tier series so an idle tier still reports zero.
	for _, tier := range []resolver.Tier{
		resolver.TierMapping, resolver.TierMappingFuzzy, resolver.TierIndex, resolver.TierSlug,
	} {
		m.resolutions.WithLabelValues(tier.String())
	}
	return m
}

func (m *Metrics) observeResolution(tier resolver.Tier) {
	m.resolutions.WithLabelValues(tier.String()).Inc()
}

// WriteTextfile flushes the registry to path for the node_exporter textfile
// collector.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
