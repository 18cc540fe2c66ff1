// Package metrics exposes query-level counters and latency histograms for
// the bitvector driver, in the style of hupe1980-vecgo's observability
// example: a struct of prometheus collectors, registered once, updated
// inline by whoever runs the queries.
package metrics

import (
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// Driver holds the collectors the command-line driver updates while
// processing a command file.
type Driver struct {
	QueryLatency *prometheus.HistogramVec
	QueryCount   *prometheus.CounterVec
	ParseErrors  prometheus.Counter
}

// NewDriver builds and registers a fresh set of collectors against reg. A
// nil reg registers against the default global registry.
func NewDriver(reg prometheus.Registerer) *Driver {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	d := &Driver{
		QueryLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "succinctbv_query_duration_seconds",
			Help:    "Latency of access/rank/select queries by operation.",
			Buckets: prometheus.ExponentialBuckets(1e-9, 4, 12),
		}, []string{"op"}),
		QueryCount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "succinctbv_queries_total",
			Help: "Number of access/rank/select queries processed, by operation.",
		}, []string{"op"}),
		ParseErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "succinctbv_parse_errors_total",
			Help: "Number of command lines that failed to parse.",
		}),
	}

	reg.MustRegister(d.QueryLatency, d.QueryCount, d.ParseErrors)
	return d
}

// ObserveQuery records one query's latency and increments its counter.
func (d *Driver) ObserveQuery(op string, seconds float64) {
	d.QueryLatency.WithLabelValues(op).Observe(seconds)
	d.QueryCount.WithLabelValues(op).Inc()
}

// DumpText writes every metric gathered from gatherer to w in the
// Prometheus text exposition format, for a driver run that has no scrape
// target and just wants the numbers alongside its RESULT/EVAL lines.
func DumpText(gatherer prometheus.Gatherer, w io.Writer) error {
	families, err := gatherer.Gather()
	if err != nil {
		return err
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	return nil
}
