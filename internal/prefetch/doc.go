// Package prefetch issues non-binding cache prefetch hints.
//
// # Supported Platforms
//
//   - x86-64: PREFETCHT0
//   - ARM64: PRFM PLDL1KEEP
//
// On every other platform, and when built with -tags noasm, Hint compiles to
// a no-op. Hints never dereference their address, so speculative or
// out-of-range addresses are harmless.
//
// Set ORDSEARCH_PREFETCH=off to disable hints at runtime without rebuilding.
package prefetch
