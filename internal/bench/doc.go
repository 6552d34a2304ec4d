// Package bench runs pairwise latency comparisons of two query variants on
// identical payloads and reports the differences.
//
// A Generator produces (query, collections) payloads and rebuilds its
// collections periodically so that build cost and cache state are spread
// over many queries. Measure times both variants on every payload,
// alternating which runs first, and checks that they agree.
package bench
