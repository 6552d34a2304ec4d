// Package prometheus adapts ordsearch.MetricsCollector to Prometheus.
//
//	collector := prometheus.New(prometheus.WithNamespace("pricing"))
//	registry.MustRegister(collector)
//	c, _ := ordsearch.New(values, ordsearch.WithMetricsCollector(collector))
package prometheus

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/hupe1980/ordsearch"
)

var _ ordsearch.MetricsCollector = (*Collector)(nil)
var _ prom.Collector = (*Collector)(nil)

// Options configures a Collector.
type Options struct {
	// Namespace prefixes every metric name. Defaults to "ordsearch".
	Namespace string
	// ConstLabels are attached to every metric, e.g. the collection name.
	ConstLabels prom.Labels
	// SearchBuckets are the histogram buckets for query latency in seconds.
	SearchBuckets []float64
	// BuildBuckets are the histogram buckets for build and reload latency in seconds.
	BuildBuckets []float64
}

// DefaultOptions are the options used by New.
var DefaultOptions = Options{
	Namespace: "ordsearch",
	// Queries take tens of nanoseconds to a few microseconds.
	SearchBuckets: prom.ExponentialBuckets(10e-9, 2, 14),
	BuildBuckets:  prom.DefBuckets,
}

// Collector records collection builds, queries and live reloads.
type Collector struct {
	buildLatency  *prom.HistogramVec
	buildItems    prom.Counter
	searchLatency prom.Histogram
	searches      *prom.CounterVec
	reloadLatency *prom.HistogramVec
}

// New creates a Collector.
func New(optFns ...func(o *Options)) *Collector {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	return &Collector{
		buildLatency: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace:   opts.Namespace,
			Name:        "build_duration_seconds",
			Help:        "Latency of collection builds",
			ConstLabels: opts.ConstLabels,
			Buckets:     opts.BuildBuckets,
		}, []string{"status"}),
		buildItems: prom.NewCounter(prom.CounterOpts{
			Namespace:   opts.Namespace,
			Name:        "build_items_total",
			Help:        "Values placed by successful builds",
			ConstLabels: opts.ConstLabels,
		}),
		searchLatency: prom.NewHistogram(prom.HistogramOpts{
			Namespace:   opts.Namespace,
			Name:        "search_duration_seconds",
			Help:        "Latency of successor queries",
			ConstLabels: opts.ConstLabels,
			Buckets:     opts.SearchBuckets,
		}),
		searches: prom.NewCounterVec(prom.CounterOpts{
			Namespace:   opts.Namespace,
			Name:        "searches_total",
			Help:        "Successor queries by outcome",
			ConstLabels: opts.ConstLabels,
		}, []string{"result"}),
		reloadLatency: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace:   opts.Namespace,
			Name:        "reload_duration_seconds",
			Help:        "Latency of live collection reloads",
			ConstLabels: opts.ConstLabels,
			Buckets:     opts.BuildBuckets,
		}, []string{"status"}),
	}
}

// WithNamespace sets the metric namespace.
func WithNamespace(ns string) func(o *Options) {
	return func(o *Options) {
		o.Namespace = ns
	}
}

// WithConstLabels attaches labels to every metric.
func WithConstLabels(labels prom.Labels) func(o *Options) {
	return func(o *Options) {
		o.ConstLabels = labels
	}
}

// RecordBuild implements ordsearch.MetricsCollector.
func (c *Collector) RecordBuild(n int, d time.Duration, err error) {
	c.buildLatency.WithLabelValues(status(err)).Observe(d.Seconds())
	if err == nil {
		c.buildItems.Add(float64(n))
	}
}

// RecordSearch implements ordsearch.MetricsCollector.
func (c *Collector) RecordSearch(d time.Duration, found bool) {
	c.searchLatency.Observe(d.Seconds())
	result := "miss"
	if found {
		result = "hit"
	}
	c.searches.WithLabelValues(result).Inc()
}

// RecordReload implements ordsearch.MetricsCollector.
func (c *Collector) RecordReload(d time.Duration, err error) {
	c.reloadLatency.WithLabelValues(status(err)).Observe(d.Seconds())
}

// Register registers the collector with r.
func (c *Collector) Register(r prom.Registerer) error {
	return r.Register(c)
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prom.Desc) {
	c.buildLatency.Describe(ch)
	c.buildItems.Describe(ch)
	c.searchLatency.Describe(ch)
	c.searches.Describe(ch)
	c.reloadLatency.Describe(ch)
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prom.Metric) {
	c.buildLatency.Collect(ch)
	c.buildItems.Collect(ch)
	c.searchLatency.Collect(ch)
	c.searches.Collect(ch)
	c.reloadLatency.Collect(ch)
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
