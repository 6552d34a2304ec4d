package testutil

import (
	"cmp"
	"math/rand"
	"slices"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), //nolint:gosec // deterministic test data
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Uint32 returns a pseudo-random uint32.
func (r *RNG) Uint32() uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Uint32()
}

// Uint64 returns a pseudo-random uint64.
func (r *RNG) Uint64() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Uint64()
}

// FillUint32 fills dst with values from the full uint32 range.
// Locks only once per call (preferred over calling Uint32 in a loop).
func (r *RNG) FillUint32(dst []uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range dst {
		dst[i] = r.rand.Uint32()
	}
}

// FillUint32n fills dst with values in range [0, limit).
// Small limits produce many duplicates.
func (r *RNG) FillUint32n(dst []uint32, limit uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range dst {
		dst[i] = uint32(r.rand.Int63n(int64(limit))) //nolint:gosec // < limit
	}
}

// SortedUint32s returns n random values in ascending order.
func (r *RNG) SortedUint32s(n int) []uint32 {
	values := make([]uint32, n)
	r.FillUint32(values)
	slices.Sort(values)
	return values
}

// Ints returns n random values in [0, limit).
func (r *RNG) Ints(n, limit int) []int {
	r.mu.Lock()
	defer r.mu.Unlock()

	values := make([]int, n)
	for i := range values {
		values[i] = r.rand.Intn(limit)
	}
	return values
}

// LinearGTE returns the first element of sorted that is >= x by scanning.
// It is the reference answer for successor queries.
func LinearGTE[T cmp.Ordered](sorted []T, x T) (T, bool) {
	for _, v := range sorted {
		if v >= x {
			return v, true
		}
	}
	var zero T
	return zero, false
}
