// Package arena provides a fixed-capacity, write-once slot buffer used to
// lay out implicit trees.
//
// A Slots buffer is allocated with its final capacity up front. Every user
// slot must be written exactly once through Put before Freeze hands the
// buffer out; Freeze is the only way to obtain the backing slice.
//
// # Features
//
//   - Slot 0 is reserved (sentinel), user slots are 1..n
//   - Written slots are tracked in a roaring bitmap
//   - Double writes and out-of-range writes are reported, not ignored
//   - Optional cache-line aligned backing storage
//
// # Safety
//
// All methods return errors instead of panicking. A buffer that fails
// verification is never exposed.
package arena
