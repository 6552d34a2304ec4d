package arena

import (
	"errors"
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/ordsearch/internal/conv"
	"github.com/hupe1980/ordsearch/internal/mem"
)

var (
	// ErrCapacityExceeded is returned when the requested slot count cannot be tracked.
	ErrCapacityExceeded = errors.New("arena: capacity exceeded")
	// ErrOutOfRange is returned when a write targets a slot outside 1..n.
	ErrOutOfRange = errors.New("arena: slot out of range")
	// ErrDoubleWrite is returned when a slot is written a second time.
	ErrDoubleWrite = errors.New("arena: slot already written")
	// ErrIncomplete is returned by Freeze when some slot was never written.
	ErrIncomplete = errors.New("arena: not every slot was written")
	// ErrFrozen is returned when the slots are used after Freeze.
	ErrFrozen = errors.New("arena: slots already frozen")
)

// Option is a configuration option for Slots.
type Option func(*config)

type config struct {
	aligned bool
}

// WithAlignment allocates the backing storage on a cache-line boundary.
func WithAlignment(aligned bool) Option {
	return func(c *config) {
		c.aligned = aligned
	}
}

// Slots is a partially-initialised buffer of n user slots plus a reserved
// sentinel at index 0.
//
// Slots is not safe for concurrent use.
type Slots[T any] struct {
	buf     []T
	n       uint32
	written *roaring.Bitmap
	frozen  bool
}

// New allocates a buffer for n user slots (capacity n+1).
func New[T any](n int, opts ...Option) (*Slots[T], error) {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	n32, err := conv.IntToUint32(n)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCapacityExceeded, err)
	}

	var buf []T
	if cfg.aligned {
		buf = mem.AllocAligned[T](n + 1)
	} else {
		buf = make([]T, n+1)
	}

	return &Slots[T]{
		buf:     buf,
		n:       n32,
		written: roaring.New(),
	}, nil
}

// Len returns the number of user slots.
func (s *Slots[T]) Len() int {
	return int(s.n)
}

// Written returns the number of user slots written so far.
func (s *Slots[T]) Written() int {
	// Cardinality is bounded by n, which fits in an int.
	return int(s.written.GetCardinality()) //nolint:gosec // bounded by n
}

// Put writes v into slot i. Each slot in 1..n accepts exactly one write.
func (s *Slots[T]) Put(i int, v T) error {
	if s.frozen {
		return ErrFrozen
	}
	if i < 1 || i > int(s.n) {
		return fmt.Errorf("%w: %d not in [1, %d]", ErrOutOfRange, i, s.n)
	}
	if !s.written.CheckedAdd(uint32(i)) { //nolint:gosec // 1 <= i <= n <= MaxUint32
		return fmt.Errorf("%w: %d", ErrDoubleWrite, i)
	}
	s.buf[i] = v
	return nil
}

// Freeze verifies that every user slot has been written and returns the
// backing buffer (len n+1, slot 0 holds the zero value). After Freeze the
// Slots value must not be used again.
func (s *Slots[T]) Freeze() ([]T, error) {
	if s.frozen {
		return nil, ErrFrozen
	}

	got, err := conv.Uint64ToInt(s.written.GetCardinality())
	if err != nil {
		return nil, err
	}
	if got != int(s.n) {
		missing := roaring.Flip(s.written, 1, uint64(s.n)+1)
		return nil, fmt.Errorf("%w: %d of %d written, first missing slot %d",
			ErrIncomplete, got, s.n, missing.Minimum())
	}

	s.frozen = true
	buf := s.buf
	s.buf = nil
	s.written = nil
	return buf, nil
}
