// Package conv provides safe integer type conversion utilities.
//
// These functions perform bounds checking to prevent integer overflow/underflow
// when converting between Go's platform-dependent int and the fixed-width
// integers used by slot-tracking bitmaps.
//
// For conversions that are provably safe by domain constraints (e.g., loop
// indices bounded by a checked capacity), use direct type casts instead to
// avoid overhead.
package conv
