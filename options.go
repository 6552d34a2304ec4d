package ordsearch

import (
	"log/slog"
	"strings"

	"golang.org/x/time/rate"

	"github.com/hupe1980/ordsearch/internal/prefetch"
)

// PrefetchMode selects how a query hints the cache about nodes it will visit
// a few levels further down.
type PrefetchMode uint8

const (
	// PrefetchAuto lets the library choose. It currently issues no hints:
	// a hint is an assembly call that cannot be inlined, and at every
	// measured size that call cost more than the prefetch saved.
	PrefetchAuto PrefetchMode = iota
	// PrefetchNone issues no hints.
	PrefetchNone
	// PrefetchMask keeps hint targets in range with a power-of-two mask.
	PrefetchMask
	// PrefetchClamp keeps hint targets in range by clamping to the last index.
	PrefetchClamp
)

// String returns the string representation of a PrefetchMode.
func (m PrefetchMode) String() string {
	switch m {
	case PrefetchAuto:
		return "auto"
	case PrefetchNone:
		return "none"
	case PrefetchMask:
		return "mask"
	case PrefetchClamp:
		return "clamp"
	default:
		return "unknown"
	}
}

// ParsePrefetchMode parses a string into a PrefetchMode value.
func ParsePrefetchMode(s string) (PrefetchMode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "auto", "":
		return PrefetchAuto, true
	case "none", "off":
		return PrefetchNone, true
	case "mask":
		return PrefetchMask, true
	case "clamp":
		return PrefetchClamp, true
	default:
		return PrefetchAuto, false
	}
}

// resolve returns the mode a collection actually runs with.
func (m PrefetchMode) resolve() PrefetchMode {
	if !prefetch.Enabled() {
		return PrefetchNone
	}
	switch m {
	case PrefetchMask, PrefetchClamp:
		return m
	default:
		return PrefetchNone
	}
}

type options struct {
	prefetch         PrefetchMode
	earlyExit        bool
	aligned          bool
	metricsCollector MetricsCollector
	logger           *Logger
	reloadLimit      rate.Limit
	reloadBurst      int
}

// Option configures collection construction and Live behavior.
type Option func(*options)

// WithPrefetch configures cache hints issued during queries.
//
// Hints never change results. They are switched off process-wide when the
// CPU offers no prefetch instruction, when built with the noasm tag, or when
// ORDSEARCH_PREFETCH=off is set.
func WithPrefetch(mode PrefetchMode) Option {
	return func(o *options) {
		o.prefetch = mode
	}
}

// WithEarlyExit makes queries return as soon as they meet a value equal to
// the query. The default fixed-depth traversal always performs Height
// comparisons, which keeps its cost independent of the data and lets the
// compiler emit conditional moves instead of branches.
func WithEarlyExit(enabled bool) Option {
	return func(o *options) {
		o.earlyExit = enabled
	}
}

// WithAlignedLayout places the layout buffer on a 64-byte boundary so that
// the root and the first levels share cache lines. Enabled by default.
func WithAlignedLayout(enabled bool) Option {
	return func(o *options) {
		o.aligned = enabled
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &ordsearch.BasicMetricsCollector{}
//	c, _ := ordsearch.New(values, ordsearch.WithMetricsCollector(metrics))
//	// ... use c ...
//	stats := metrics.GetStats()
//	fmt.Printf("Searches: %d, Avg latency: %dns\n", stats.SearchCount, stats.SearchAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := ordsearch.NewJSONLogger(slog.LevelInfo)
//	c, _ := ordsearch.New(values, ordsearch.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithReloadLimit bounds how often Live.Reload may rebuild. Callers beyond
// the limit wait, honoring their context. Constructors ignore it.
func WithReloadLimit(limit rate.Limit, burst int) Option {
	return func(o *options) {
		o.reloadLimit = limit
		o.reloadBurst = burst
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		prefetch:         PrefetchAuto,
		aligned:          true,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
		reloadLimit:      rate.Inf,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
