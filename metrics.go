package ordsearch

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems; the
// metrics/prometheus package ships a ready-made adapter.
//
// Search timing is only taken when the configured collector is not a
// NoopMetricsCollector, so the default keeps the query path free of clock
// reads.
type MetricsCollector interface {
	// RecordBuild is called after each collection build.
	// n is the declared size, err is nil if successful.
	RecordBuild(n int, duration time.Duration, err error)

	// RecordSearch is called after each successor query.
	// found reports whether a value was returned.
	RecordSearch(duration time.Duration, found bool)

	// RecordReload is called after each live collection reload.
	RecordReload(duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordBuild(int, time.Duration, error) {}
func (NoopMetricsCollector) RecordSearch(time.Duration, bool)      {}
func (NoopMetricsCollector) RecordReload(time.Duration, error)     {}

func isNoopCollector(mc MetricsCollector) bool {
	switch mc.(type) {
	case nil, NoopMetricsCollector, *NoopMetricsCollector:
		return true
	default:
		return false
	}
}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	BuildCount       atomic.Int64
	BuildErrors      atomic.Int64
	BuildItems       atomic.Int64
	BuildTotalNanos  atomic.Int64
	SearchCount      atomic.Int64
	SearchHits       atomic.Int64
	SearchTotalNanos atomic.Int64
	ReloadCount      atomic.Int64
	ReloadErrors     atomic.Int64
}

// RecordBuild implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBuild(n int, duration time.Duration, err error) {
	b.BuildCount.Add(1)
	b.BuildTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.BuildErrors.Add(1)
		return
	}
	b.BuildItems.Add(int64(n))
}

// RecordSearch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSearch(duration time.Duration, found bool) {
	b.SearchCount.Add(1)
	b.SearchTotalNanos.Add(duration.Nanoseconds())
	if found {
		b.SearchHits.Add(1)
	}
}

// RecordReload implements MetricsCollector.
func (b *BasicMetricsCollector) RecordReload(duration time.Duration, err error) {
	b.ReloadCount.Add(1)
	if err != nil {
		b.ReloadErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		BuildCount:     b.BuildCount.Load(),
		BuildErrors:    b.BuildErrors.Load(),
		BuildItems:     b.BuildItems.Load(),
		BuildAvgNanos:  avg(b.BuildTotalNanos.Load(), b.BuildCount.Load()),
		SearchCount:    b.SearchCount.Load(),
		SearchHits:     b.SearchHits.Load(),
		SearchAvgNanos: avg(b.SearchTotalNanos.Load(), b.SearchCount.Load()),
		ReloadCount:    b.ReloadCount.Load(),
		ReloadErrors:   b.ReloadErrors.Load(),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	BuildCount     int64
	BuildErrors    int64
	BuildItems     int64
	BuildAvgNanos  int64
	SearchCount    int64
	SearchHits     int64
	SearchAvgNanos int64
	ReloadCount    int64
	ReloadErrors   int64
}
