// Package ordsearch provides an immutable ordered collection answering
// successor queries ("smallest value >= x") faster than binary search over a
// sorted slice.
//
// Values are stored in Eytzinger order: the implicit binary search tree is
// laid out breadth first, so the first levels visited by every query share a
// handful of cache lines and the nodes of the next levels can be prefetched
// before they are needed.
//
// # Quick Start
//
//	c, err := ordsearch.New([]uint32{1, 2, 4, 8, 16, 32, 64, 128, 256})
//	if err != nil {
//	    return err
//	}
//	v, ok := c.FindGTE(10) // 16, true
//	_, ok = c.FindGTE(257) // false
//
// Sorted input can be streamed without an intermediate slice:
//
//	c, err := ordsearch.FromSorted(slices.Values(sorted), len(sorted))
//
// # Traversal
//
// The default traversal runs a fixed number of steps (Height) without
// data-dependent branches. WithEarlyExit switches to a loop that stops on an
// exact match. Both return the same answer for every query.
//
// # Prefetching
//
// WithPrefetch selects whether and how a query hints the cache about
// descendants a few levels below the current node. Hints never affect
// results. The default, PrefetchAuto, issues none; PrefetchMask and
// PrefetchClamp opt in. Set ORDSEARCH_PREFETCH=off to disable them
// process-wide.
//
// # Concurrency
//
// A Collection is immutable after construction and safe for concurrent
// readers. Live swaps collections atomically and coalesces concurrent
// rebuilds.
package ordsearch
