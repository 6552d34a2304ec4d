package benchmark_test

import (
	"runtime"
	"slices"
	"testing"

	"github.com/hupe1980/ordsearch/testutil"
)

// ============================================================================
// BENCHMARK METHODOLOGY: reproducible measurements
// ============================================================================
//
// 1. WARMUP PHASE: Run N iterations before measurement to warm branch
//    predictors and pull the upper tree levels into cache.
//
// 2. GC CONTROL: Force GC before measurement so setup garbage does not
//    trigger a collection mid-run.
//
// 3. ONE QUERY PER ITERATION: Each b.N iteration = exactly 1 query.
//
// 4. NO StopTimer/StartTimer: their overhead exceeds a single query.
//
// 5. PRE-GENERATED QUERIES: Random queries are drawn before the timer
//    starts; the query count is a power of two so i&(n-1) replaces modulo.
//
// Usage:
//
//   func BenchmarkFind(b *testing.B) {
//       c, queries := setup(b)
//       BenchLoop(b, len(queries), func(i int) {
//           sink, _ = c.FindGTE(queries[i])
//       })
//   }

// WarmupIterations is the number of warmup iterations before measurement.
const WarmupIterations = 10

// QueryCount is the number of pre-generated queries per benchmark.
const QueryCount = 1 << 14

// Sizes are the collection sizes every comparison runs at.
var Sizes = []int{1_000, 10_000, 100_000, 1_000_000}

// sink keeps query results alive so the compiler cannot drop the calls.
var sink uint32

// BenchLoop runs a benchmark with proper methodology:
// 1. Warmup phase (WarmupIterations)
// 2. GC to clear allocation pressure
// 3. Reset timer
// 4. Run b.N iterations
//
// queryCount must be a power of two. The fn receives the query index.
func BenchLoop(b *testing.B, queryCount int, fn func(i int)) {
	b.Helper()

	mask := queryCount - 1

	// Phase 1: Warmup
	for i := 0; i < WarmupIterations; i++ {
		fn(i & mask)
	}

	// Phase 2: GC to clear setup allocations
	runtime.GC()

	// Phase 3: Reset and run
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		fn(i & mask)
	}
}

// Dataset holds sorted values and random queries over the same range.
type Dataset struct {
	Sorted  []uint32
	Queries []uint32
}

// NewDataset generates n sorted random values and QueryCount queries.
func NewDataset(n int, seed int64) Dataset {
	rng := testutil.NewRNG(seed)

	values := make([]uint32, n)
	rng.FillUint32(values)
	slices.Sort(values)

	queries := make([]uint32, QueryCount)
	rng.FillUint32(queries)

	return Dataset{Sorted: values, Queries: queries}
}
