// Package testutil provides testing utilities for ordsearch.
//
// This package is intended for use in tests and benchmarks only.
// It provides seeded random data generation and a reference successor
// search used as ground truth.
//
// # Random Data Generation
//
//	rng := testutil.NewRNG(seed)
//	values := make([]uint32, 1000)
//	rng.FillUint32(values)           // full uint32 range
//	keys := rng.SortedUint32s(1000)  // ascending, duplicates possible
//
// # Ground Truth
//
//	want, ok := testutil.LinearGTE(sorted, x)
package testutil
