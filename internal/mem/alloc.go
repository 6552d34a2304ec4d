// Package mem provides memory allocation utilities.
package mem

import (
	"unsafe"
)

// Alignment is the cache-line size the allocator aligns to (64 bytes).
const Alignment = 64

// AllocAligned allocates a slice of n elements whose first element starts at
// an address divisible by Alignment.
//
// The backing array is a typed allocation, so element types containing
// pointers stay visible to the garbage collector. Alignment is only attempted
// when the element size divides Alignment; otherwise (or when the allocator
// hands out an address that cannot be shifted onto a boundary in whole
// elements) a regular slice is returned.
//
// The returned slice has len == cap == n. Returns nil for n <= 0.
func AllocAligned[T any](n int) []T {
	if n <= 0 {
		return nil
	}

	var zero T
	size := unsafe.Sizeof(zero)
	if size == 0 || size >= Alignment || Alignment%size != 0 {
		return make([]T, n)
	}

	// Allocate one extra cache line worth of elements so an aligned window
	// of n elements always exists.
	pad := int(Alignment / size)
	buf := make([]T, n+pad)

	addr := uintptr(unsafe.Pointer(&buf[0])) //nolint:gosec // unsafe is required for memory alignment
	offset := (Alignment - (addr & (Alignment - 1))) & (Alignment - 1)
	if offset%size != 0 {
		return buf[:n:n]
	}

	k := int(offset / size)
	return buf[k : k+n : k+n]
}

// IsAligned reports whether the first element of s starts on a cache-line
// boundary. Empty slices are reported as aligned.
func IsAligned[T any](s []T) bool {
	if len(s) == 0 {
		return true
	}
	addr := uintptr(unsafe.Pointer(&s[0])) //nolint:gosec // unsafe is required for memory alignment
	return addr&(Alignment-1) == 0
}
