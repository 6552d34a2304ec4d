package prefetch

import (
	"math"
	"math/bits"
	"os"
	"strings"
)

// LineSize is the cache-line size in bytes assumed by the hint geometry.
const LineSize = 64

// Package-level state - initialized once at package init.
var (
	// hasHint is true if the platform exposes a non-faulting prefetch
	// instruction (set by platform-specific init).
	hasHint bool

	// enabled is the effective switch after applying ORDSEARCH_PREFETCH.
	enabled bool

	// hasOverride is true if ORDSEARCH_PREFETCH was set to a valid value.
	hasOverride bool
)

// initCapabilities is called from platform-specific init functions
// after CPU features are detected.
func initCapabilities() {
	enabled = hasHint

	if override := os.Getenv("ORDSEARCH_PREFETCH"); override != "" {
		if on, ok := parseSwitch(override); ok {
			hasOverride = true
			// An override can switch hints off, never on for a CPU without them.
			enabled = on && hasHint
		}
	}
}

func parseSwitch(s string) (on bool, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on", "1", "true":
		return true, true
	case "off", "0", "false":
		return false, true
	default:
		return false, false
	}
}

// Available returns true if the CPU/build supports prefetch hints.
func Available() bool {
	return hasHint
}

// Enabled returns true if hints are issued. Callers check this once and skip
// hint computation entirely when it is false.
func Enabled() bool {
	return enabled
}

// IsOverridden returns true if ORDSEARCH_PREFETCH was set.
func IsOverridden() bool {
	return hasOverride
}

// Hint requests that the cache line holding addr be loaded into L1.
// addr is never dereferenced.
func Hint(addr uintptr) {
	hint(addr)
}

// Mask returns the smallest value of the form 2^k-1 that is >= n
// (0 for n == 0). ANDing an index with Mask(n) keeps it within the
// power-of-two range covering n.
func Mask(n uint) uint {
	if n == 0 {
		return 0
	}
	return math.MaxUint >> bits.LeadingZeros(n)
}

// Geometry describes where hints land in an implicit binary tree stored in
// breadth-first (Eytzinger) order.
//
// At depth k below a node there are 2^k descendants stored contiguously. A
// single hint covers LineSize/elemSize of them, so the useful depth is the
// one where 2^k == LineSize/elemSize: that value is the Multiplier. In
// zero-based numbering the leftmost descendant of node k at that depth is
// Multiplier*k + Multiplier-1; Offset biases the hint half-way into the
// block so that an unlucky alignment still fetches at least half of it.
type Geometry struct {
	Multiplier int
	Offset     int
}

// GeometryFor returns the hint geometry for elements of elemSize bytes.
func GeometryFor(elemSize uintptr) Geometry {
	m := 1
	if elemSize == 0 {
		m = LineSize
	} else if elemSize < LineSize {
		m = LineSize / int(elemSize)
	}
	return Geometry{
		Multiplier: m,
		Offset:     m + m/2,
	}
}

// Target returns the buffer index to hint while visiting one-based node i
// of a buffer that keeps a sentinel at index 0.
func (g Geometry) Target(i int) int {
	return g.Multiplier*(i-1) + g.Offset + 1
}
