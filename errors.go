package ordsearch

import (
	"errors"
	"fmt"
)

var (
	// ErrNilCompare is returned when a constructor receives a nil compare function.
	ErrNilCompare = errors.New("compare function must not be nil")

	// ErrCapacityExceeded is returned when the requested collection size
	// cannot be represented by the layout.
	ErrCapacityExceeded = errors.New("capacity exceeded")

	// ErrNilBuild is returned by Live.Reload when the build function is nil
	// or produced neither a collection nor an error.
	ErrNilBuild = errors.New("reload produced no collection")
)

// ErrLengthMismatch indicates that a sorted source yielded a different
// number of values than declared.
//
// Actual is the number of values consumed before the mismatch was detected.
// For sources that run long this is Declared+1; the rest is never read.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrLengthMismatch struct {
	Declared int
	Actual   int
	cause    error
}

func (e *ErrLengthMismatch) Error() string {
	if e.Actual > e.Declared {
		return fmt.Sprintf("length mismatch: declared %d, source yielded more", e.Declared)
	}
	return fmt.Sprintf("length mismatch: declared %d, got %d", e.Declared, e.Actual)
}

func (e *ErrLengthMismatch) Unwrap() error { return e.cause }
