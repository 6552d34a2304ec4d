package mem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllocAligned(t *testing.T) {
	sizes := []int{1, 10, 63, 64, 65, 100, 1024}

	for _, size := range sizes {
		buf := AllocAligned[byte](size)
		assert.Len(t, buf, size)
		assert.Equal(t, size, cap(buf))
		assert.True(t, IsAligned(buf), "byte slice of size %d should be aligned to %d", size, Alignment)
	}

	assert.Nil(t, AllocAligned[byte](0))
	assert.Nil(t, AllocAligned[byte](-1))
}

func TestAllocAlignedUint32(t *testing.T) {
	sizes := []int{1, 10, 16, 17, 100, 1024}

	for _, size := range sizes {
		buf := AllocAligned[uint32](size)
		assert.Len(t, buf, size)
		assert.True(t, IsAligned(buf), "uint32 slice of size %d should be aligned to %d", size, Alignment)
	}
}

func TestAllocAlignedUint64(t *testing.T) {
	sizes := []int{1, 7, 8, 9, 1000}

	for _, size := range sizes {
		buf := AllocAligned[uint64](size)
		assert.Len(t, buf, size)
		assert.True(t, IsAligned(buf), "uint64 slice of size %d should be aligned to %d", size, Alignment)
	}
}

func TestAllocAlignedZeroed(t *testing.T) {
	buf := AllocAligned[int64](100)
	for i, v := range buf {
		assert.Zero(t, v, "element %d should be zero", i)
	}
}

func TestAllocAlignedPointers(t *testing.T) {
	// Pointer element types must remain GC-visible: the slice is a typed
	// allocation, so storing pointers and reading them back is safe.
	values := []int{1, 2, 3}
	buf := AllocAligned[*int](len(values))
	for i := range values {
		buf[i] = &values[i]
	}
	for i := range values {
		assert.Equal(t, values[i], *buf[i])
	}
}

func TestAllocAlignedOddSize(t *testing.T) {
	type triple struct{ a, b, c uint64 }

	buf := AllocAligned[triple](5)
	assert.Len(t, buf, 5)
	assert.Equal(t, 5, cap(buf))
}

func TestIsAligned(t *testing.T) {
	assert.True(t, IsAligned[byte](nil))

	buf := AllocAligned[byte](128)
	assert.True(t, IsAligned(buf))
	assert.False(t, IsAligned(buf[1:]))
}
