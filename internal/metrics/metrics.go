// Package metrics records per-run counters and exports them in the Prometheus text format
// for a node_exporter textfile collector.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/shanehull/birthdaybot/internal/extract"
)

const namespace = "birthdaybot"

// Run holds the metrics of a single bot run on its own registry.
type Run struct {
	registry *prometheus.Registry

	rows         prometheus.Counter
	skipped      *prometheus.CounterVec
	unclassified prometheus.Counter
	fallbacks    *prometheus.CounterVec
	records      prometheus.Counter
	duplicates   prometheus.Counter
	deliveries   *prometheus.CounterVec
	lastSuccess  prometheus.Gauge
	duration     prometheus.Gauge
}

func NewRun() *Run {
	r := &Run{
		registry: prometheus.NewRegistry(),
		rows: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_found_total",
			Help:      "Candidate rows found in the birthday container.",
		}),
		skipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_skipped_total",
			Help:      "Rows dropped before producing a record, by reason.",
		}, []string{"reason"}),
		unclassified: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tokens_unclassified_total",
			Help:      "Cell tokens that matched no column rule.",
		}),
		fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "normalization_fallbacks_total",
			Help:      "Values published raw because normalization failed, by field.",
		}, []string{"field"}),
		records: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_extracted_total",
			Help:      "Birthday records extracted before deduplication.",
		}),
		duplicates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_duplicate_total",
			Help:      "Records dropped as duplicates of an earlier name and phone.",
		}),
		deliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "deliveries_total",
			Help:      "Webhook deliveries by outcome.",
		}, []string{"outcome"}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful delivery.",
		}),
		duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of the run.",
		}),
	}

	r.registry.MustRegister(r.rows, r.skipped, r.unclassified, r.fallbacks, r.records,
		r.duplicates, r.deliveries, r.lastSuccess, r.duration)
	return r
}

func (r *Run) Registry() *prometheus.Registry {
	return r.registry
}

// ObserveExtraction adds the counts of one extraction.
func (r *Run) ObserveExtraction(s extract.Stats) {
	r.rows.Add(float64(s.RowsFound))
	r.skipped.WithLabelValues(extract.ReasonShortRow).Add(float64(s.ShortRows))
	r.skipped.WithLabelValues(extract.ReasonMissingNameOrDate).Add(float64(s.IncompleteRows))
	r.unclassified.Add(float64(s.Unclassified))
	r.fallbacks.WithLabelValues("date").Add(float64(s.DateFallbacks))
	r.fallbacks.WithLabelValues("name").Add(float64(s.NameFallbacks))
	r.records.Add(float64(s.Records))
}

func (r *Run) ObserveDuplicates(n int) {
	r.duplicates.Add(float64(n))
}

// ObserveDelivery counts a delivery attempt; success also stamps lastSuccess with at.
func (r *Run) ObserveDelivery(err error, at time.Time) {
	if err != nil {
		r.deliveries.WithLabelValues("failure").Inc()
		return
	}
	r.deliveries.WithLabelValues("success").Inc()
	r.lastSuccess.Set(float64(at.Unix()))
}

func (r *Run) ObserveDuration(d time.Duration) {
	r.duration.Set(d.Seconds())
}

// WriteTextfile writes the registry to path atomically.
func (r *Run) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
