package ordsearch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBasicMetricsCollector(t *testing.T) {
	metrics := &BasicMetricsCollector{}

	c, err := New([]int{1, 2, 3, 4}, WithMetricsCollector(metrics))
	require.NoError(t, err)

	c.FindGTE(2)
	c.FindGTE(3)
	c.FindGTE(9)

	stats := metrics.GetStats()
	assert.Equal(t, int64(1), stats.BuildCount)
	assert.Equal(t, int64(0), stats.BuildErrors)
	assert.Equal(t, int64(4), stats.BuildItems)
	assert.Equal(t, int64(3), stats.SearchCount)
	assert.Equal(t, int64(2), stats.SearchHits)
	assert.GreaterOrEqual(t, stats.SearchAvgNanos, int64(0))
}

func TestBasicMetricsCollector_BuildError(t *testing.T) {
	metrics := &BasicMetricsCollector{}

	_, err := NewFunc[int]([]int{1}, nil, WithMetricsCollector(metrics))
	assert.Error(t, err)
	// NewFunc rejects a nil compare before building.
	assert.Equal(t, int64(0), metrics.GetStats().BuildCount)

	_, err = FromSortedFunc[int](func(func(int) bool) {}, 3, func(a, b int) int { return a - b },
		WithMetricsCollector(metrics))
	assert.Error(t, err)

	stats := metrics.GetStats()
	assert.Equal(t, int64(1), stats.BuildCount)
	assert.Equal(t, int64(1), stats.BuildErrors)
	assert.Equal(t, int64(0), stats.BuildItems)
}

func TestBasicMetricsCollector_Empty(t *testing.T) {
	stats := (&BasicMetricsCollector{}).GetStats()
	assert.Equal(t, BasicMetricsStats{}, stats)
}

func TestNoopCollectorSkipsTiming(t *testing.T) {
	c := Must(New([]int{1}))
	assert.False(t, c.observe)

	c = Must(New([]int{1}, WithMetricsCollector(nil)))
	assert.False(t, c.observe)

	c = Must(New([]int{1}, WithMetricsCollector(&BasicMetricsCollector{})))
	assert.True(t, c.observe)
}

func TestNoopMetricsCollector(t *testing.T) {
	var mc MetricsCollector = NoopMetricsCollector{}
	assert.NotPanics(t, func() {
		mc.RecordBuild(1, time.Millisecond, nil)
		mc.RecordSearch(time.Millisecond, true)
		mc.RecordReload(time.Millisecond, nil)
	})
}
