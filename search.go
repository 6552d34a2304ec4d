package ordsearch

import (
	"cmp"
	"math/bits"
	"time"
	"unsafe"

	"github.com/hupe1980/ordsearch/internal/prefetch"
)

// FindGTE returns the smallest stored value that is greater than or equal to
// x. ok is false when every stored value is smaller than x, and always for an
// empty or nil collection.
//
// With duplicates any one of the equal values may be returned.
//
// Collections built by New or FromSorted compare with the built-in operators
// and never call through the comparator. NewFunc and FromSortedFunc
// collections use their compare function at every level.
func (c *Collection[T]) FindGTE(x T) (v T, ok bool) {
	if c == nil {
		return v, false
	}
	if c.search == nil {
		return FindGTEFunc(c, x, c.compare)
	}

	var start time.Time
	if c.observe {
		start = time.Now()
	}

	return c.answer(c.search(c, x), start)
}

// FindGTEFunc is like FindGTE but looks up a key of a different type.
// cmp(v, key) must order stored values against the key consistently with the
// collection's ordering: negative when v < key, zero when equal and positive
// when v > key.
//
//	byID := ordsearch.Must(ordsearch.NewFunc(users, func(a, b User) int {
//	    return cmp.Compare(a.ID, b.ID)
//	}))
//	u, ok := ordsearch.FindGTEFunc(byID, 42, func(u User, id int) int {
//	    return cmp.Compare(u.ID, id)
//	})
func FindGTEFunc[T, K any](c *Collection[T], key K, cmp func(T, K) int) (v T, ok bool) {
	if c == nil {
		return v, false
	}

	var start time.Time
	if c.observe {
		start = time.Now()
	}

	return c.answer(locate(c, key, cmp), start)
}

// FindGTERef is FindGTE for collections built by FromSlice: it takes the
// query by value and returns a pointer into the sorted slice.
func FindGTERef[T cmp.Ordered](c *Collection[*T], x T) (*T, bool) {
	if c == nil || !c.direct || (c.floatKeys && x != x) {
		return FindGTEFunc(c, x, func(p *T, k T) int {
			return cmp.Compare(*p, k)
		})
	}

	var start time.Time
	if c.observe {
		start = time.Now()
	}

	return c.answer(locateRef(c, x), start)
}

func (c *Collection[T]) answer(j int, start time.Time) (v T, ok bool) {
	if c.observe {
		c.metrics.RecordSearch(time.Since(start), j != 0)
	}
	if j == 0 {
		return v, false
	}
	return c.items[j], true
}

// locate returns the layout index of the answer, or 0 when there is none.
//
// Both traversals descend from the root, going left (2i) when the node is
// >= key and right (2i+1) otherwise. The last left turn marks the answer:
// the final index ends in a run of 1 bits (the right turns taken since),
// and shifting those plus the left turn away yields that node. A query that
// only ever turned right decodes to 0.
func locate[T, K any](c *Collection[T], key K, cmp func(T, K) int) int {
	items := c.items
	n := len(items) - 1
	hint := c.prefetch != PrefetchNone

	i := 1
	if c.earlyExit {
		for i <= n {
			if hint {
				c.hintNode(i)
			}
			r := cmp(items[i], key)
			if r == 0 {
				return i
			}
			i = 2*i + b2i(r < 0)
		}
	} else {
		// Fixed depth: nodes missing from the last level act as values
		// smaller than any key, so every query takes exactly height steps
		// and descends right past them. The read stays in range by
		// re-reading the last node; its result is ignored.
		for range c.height {
			if hint {
				c.hintNode(i)
			}
			r := cmp(items[min(i, n)], key)
			i = 2*i + (b2i(r < 0) | b2i(i > n))
		}
	}

	return decode(i)
}

// locateOrdered is locate for cmp.Ordered values without NaNs, where < and
// == agree with cmp.Compare. Each step compiles to a compare and a
// conditional set.
func locateOrdered[T cmp.Ordered](c *Collection[T], x T) int {
	if c.floatKeys && x != x {
		return locate(c, x, cmp.Compare[T])
	}

	items := c.items
	n := len(items) - 1

	i := 1
	switch {
	case c.earlyExit:
		hint := c.prefetch != PrefetchNone
		for i <= n {
			if hint {
				c.hintNode(i)
			}
			v := items[i]
			if v == x {
				return i
			}
			i = 2*i + b2i(v < x)
		}
	case c.prefetch != PrefetchNone:
		for range c.height {
			c.hintNode(i)
			v := items[min(i, n)]
			i = 2*i + (b2i(v < x) | b2i(i > n))
		}
	default:
		for range c.height {
			v := items[min(i, n)]
			i = 2*i + (b2i(v < x) | b2i(i > n))
		}
	}

	return decode(i)
}

// locateRef is locateOrdered over pointers produced by FromSlice. The
// sentinel at index 0 is nil and never read.
func locateRef[T cmp.Ordered](c *Collection[*T], x T) int {
	items := c.items
	n := len(items) - 1

	i := 1
	switch {
	case c.earlyExit:
		hint := c.prefetch != PrefetchNone
		for i <= n {
			if hint {
				c.hintNode(i)
			}
			v := *items[i]
			if v == x {
				return i
			}
			i = 2*i + b2i(v < x)
		}
	case c.prefetch != PrefetchNone:
		for range c.height {
			c.hintNode(i)
			v := *items[min(i, n)]
			i = 2*i + (b2i(v < x) | b2i(i > n))
		}
	default:
		for range c.height {
			v := *items[min(i, n)]
			i = 2*i + (b2i(v < x) | b2i(i > n))
		}
	}

	return decode(i)
}

// decode maps the final traversal index to the node of the last left turn.
func decode(i int) int {
	return i >> (bits.TrailingZeros(^uint(i)) + 1)
}

// hintNode prefetches the block of descendants of node i a few levels down.
func (c *Collection[T]) hintNode(i int) {
	t := uint(c.geometry.Target(i))
	if c.prefetch == PrefetchMask {
		t &= c.mask
	} else {
		t = min(t, uint(len(c.items)-1))
	}
	base := uintptr(unsafe.Pointer(unsafe.SliceData(c.items)))
	prefetch.Hint(base + uintptr(t)*c.elemSize)
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}
