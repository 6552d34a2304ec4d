// Package mem provides memory allocation utilities.
//
// # Aligned Allocation
//
// Provides cache-line (64-byte) aligned typed slices so that the children
// block of an implicit-tree node starts on a cache-line boundary.
package mem
