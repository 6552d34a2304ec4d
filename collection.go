package ordsearch

import (
	"cmp"
	"context"
	"fmt"
	"iter"
	"math/bits"
	"reflect"
	"slices"
	"time"
	"unsafe"

	"github.com/hupe1980/ordsearch/internal/arena"
	"github.com/hupe1980/ordsearch/internal/prefetch"
)

// Collection is an immutable set of ordered values laid out in Eytzinger
// (breadth-first implicit tree) order for fast successor queries.
//
// The layout is one-based: items[0] is an unused sentinel, the root is at
// index 1 and the children of node i are at 2i and 2i+1. An in-order walk of
// the tree visits the values in sorted order.
//
// A Collection is safe for concurrent use by any number of readers.
type Collection[T any] struct {
	items     []T
	compare   func(a, b T) int
	height    int
	earlyExit bool

	prefetch PrefetchMode // resolved: PrefetchNone, PrefetchMask or PrefetchClamp
	geometry prefetch.Geometry
	mask     uint
	elemSize uintptr

	metrics MetricsCollector
	observe bool

	// search is the operator-based traversal installed by New and
	// FromSorted; nil means every query goes through compare.
	search func(c *Collection[T], x T) int
	// direct lets FindGTERef compare dereferenced elements with operators.
	direct bool
	// floatKeys marks float element types, whose NaN queries take the
	// compare path.
	floatKeys bool
}

// New builds a Collection from unsorted values. values is copied and sorted;
// the caller keeps ownership of the slice.
func New[T cmp.Ordered](values []T, opts ...Option) (*Collection[T], error) {
	c, err := NewFunc(values, cmp.Compare[T], opts...)
	if err != nil {
		return nil, err
	}
	return withOperators(c), nil
}

// NewFunc is like New but orders values with compare, which must return a
// negative number when a < b, zero when a == b and a positive number when
// a > b.
func NewFunc[T any](values []T, compare func(a, b T) int, opts ...Option) (*Collection[T], error) {
	if compare == nil {
		return nil, ErrNilCompare
	}

	sorted := slices.Clone(values)
	slices.SortFunc(sorted, compare)

	return FromSortedFunc(slices.Values(sorted), len(sorted), compare, opts...)
}

// FromSorted builds a Collection from a sequence that yields exactly n
// values in ascending order. The sequence is consumed once.
//
// Sortedness is not verified: an unsorted sequence produces a valid
// Collection whose answers are meaningless. A sequence that yields fewer or
// more than n values is reported as *ErrLengthMismatch.
func FromSorted[T cmp.Ordered](seq iter.Seq[T], n int, opts ...Option) (*Collection[T], error) {
	c, err := FromSortedFunc(seq, n, cmp.Compare[T], opts...)
	if err != nil {
		return nil, err
	}
	return withOperators(c), nil
}

// FromSortedFunc is like FromSorted but orders values with compare.
func FromSortedFunc[T any](seq iter.Seq[T], n int, compare func(a, b T) int, opts ...Option) (*Collection[T], error) {
	o := applyOptions(opts)

	start := time.Now()
	c, err := build(seq, n, compare, o)
	elapsed := time.Since(start)

	o.logger.LogBuild(context.Background(), n, elapsed, err)
	o.metricsCollector.RecordBuild(n, elapsed, err)

	return c, err
}

// FromSlice sorts s in place and builds a Collection of pointers into s.
//
// The elements of s must not be modified while the Collection is in use.
func FromSlice[T cmp.Ordered](s []T, opts ...Option) (*Collection[*T], error) {
	c, err := FromSliceFunc(s, cmp.Compare[T], opts...)
	if err != nil {
		return nil, err
	}
	c.direct, c.floatKeys = operatorsAgree(slices.Values(s))
	return c, nil
}

// FromSliceFunc is like FromSlice but orders values with compare.
func FromSliceFunc[T any](s []T, compare func(a, b T) int, opts ...Option) (*Collection[*T], error) {
	if compare == nil {
		return nil, ErrNilCompare
	}

	slices.SortFunc(s, compare)

	refs := func(yield func(*T) bool) {
		for i := range s {
			if !yield(&s[i]) {
				return
			}
		}
	}

	return FromSortedFunc(refs, len(s), func(a, b *T) int {
		return compare(*a, *b)
	}, opts...)
}

// Must is a helper that wraps a call to a constructor returning
// (*Collection[T], error) and panics if the error is non-nil.
func Must[T any](c *Collection[T], err error) *Collection[T] {
	if err != nil {
		panic(err)
	}
	return c
}

func withOperators[T cmp.Ordered](c *Collection[T]) *Collection[T] {
	ok, float := operatorsAgree(c.All())
	if ok {
		c.search = locateOrdered[T]
	}
	c.floatKeys = float
	return c
}

// operatorsAgree reports whether < and == order values exactly like
// cmp.Compare. They differ only for NaN, so a float collection holding a NaN
// keeps the compare path. float reports a float element type.
func operatorsAgree[T cmp.Ordered](values iter.Seq[T]) (ok, float bool) {
	switch reflect.TypeFor[T]().Kind() {
	case reflect.Float32, reflect.Float64:
		for v := range values {
			if v != v {
				return false, true
			}
		}
		return true, true
	default:
		return true, false
	}
}

func build[T any](seq iter.Seq[T], n int, compare func(a, b T) int, o options) (*Collection[T], error) {
	if compare == nil {
		return nil, ErrNilCompare
	}

	slots, err := arena.New[T](n, arena.WithAlignment(o.aligned))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCapacityExceeded, err)
	}

	// Place the k-th smallest value at the k-th in-order position.
	cur := firstInorder(n)
	consumed := 0
	for v := range seq {
		if consumed == n {
			// One value more than declared is enough to reject the source;
			// draining it could take forever.
			return nil, &ErrLengthMismatch{Declared: n, Actual: consumed + 1}
		}
		if err := slots.Put(cur.pos, v); err != nil {
			return nil, err
		}
		cur.next()
		consumed++
	}

	items, err := slots.Freeze()
	if err != nil {
		return nil, &ErrLengthMismatch{Declared: n, Actual: consumed, cause: err}
	}

	var zero T
	c := &Collection[T]{
		items:     items,
		compare:   compare,
		height:    bits.Len(uint(n)),
		earlyExit: o.earlyExit,
		prefetch:  o.prefetch.resolve(),
		elemSize:  unsafe.Sizeof(zero),
		metrics:   o.metricsCollector,
		observe:   !isNoopCollector(o.metricsCollector),
	}
	c.geometry = prefetch.GeometryFor(c.elemSize)
	c.mask = prefetch.Mask(uint(len(items)))

	return c, nil
}

// Len returns the number of stored values.
func (c *Collection[T]) Len() int {
	if c == nil {
		return 0
	}
	return len(c.items) - 1
}

// Height returns the number of levels of the implicit tree, ⌈log2(n+1)⌉.
// A fixed-depth query performs exactly Height comparisons.
func (c *Collection[T]) Height() int {
	if c == nil {
		return 0
	}
	return c.height
}

// EarlyExit reports whether queries stop at the first exact match.
func (c *Collection[T]) EarlyExit() bool {
	return c != nil && c.earlyExit
}

// Prefetch returns the effective prefetch mode after resolving PrefetchAuto
// and the process-wide hint capability.
func (c *Collection[T]) Prefetch() PrefetchMode {
	if c == nil {
		return PrefetchNone
	}
	return c.prefetch
}

// All returns an iterator over the stored values in ascending order.
func (c *Collection[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		n := c.Len()
		for cur := firstInorder(n); cur.pos != 0; cur.next() {
			if !yield(c.items[cur.pos]) {
				return
			}
		}
	}
}

// inorder is a cursor over the positions of a one-based implicit tree with
// n nodes, in in-order (left, self, right). pos is 0 once exhausted.
type inorder struct {
	pos int
	n   int
}

func firstInorder(n int) inorder {
	if n <= 0 {
		return inorder{}
	}
	return inorder{pos: leftmost(1, n), n: n}
}

func (w *inorder) next() {
	i := w.pos
	if 2*i+1 <= w.n {
		w.pos = leftmost(2*i+1, w.n)
		return
	}
	// Climb past every ancestor whose right subtree we just finished, then
	// once more to the first ancestor entered from the left.
	for i&1 == 1 {
		i >>= 1
	}
	w.pos = i >> 1
}

func leftmost(i, n int) int {
	for 2*i <= n {
		i *= 2
	}
	return i
}
