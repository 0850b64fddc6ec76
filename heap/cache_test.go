package heap

import "testing"
import "unsafe"

import "github.com/stretchr/testify/require"

import "github.com/bnclabs/goheap/lib"

func TestCachealloc(t *testing.T) {
	heap := NewHeap(testsettings())
	defer heap.Release()
	cache := heap.NewCache()

	if ptr := cache.Alloc(0); ptr != nil {
		t.Errorf("expected nil for zero sized request")
	}
	cache.Free(nil) // no-op

	ptr := cache.Alloc(100)
	require.NotNil(t, ptr)
	block := lib.Byteslice(ptr, 100)
	for i := range block {
		block[i] = 0xcd
	}
	cache.Free(ptr)

	// the freed chunk sits in the local list, invisible to the
	// shared free-list until flushed.
	size := Suitableslab(heap.slabs, 100+chunkheader)
	require.Equal(t, int64(1), cache.local[size].Count())
	require.Equal(t, int64(0), heap.classes[size].shared.Count())

	cache.Flush()
	require.Equal(t, int64(0), cache.local[size].Count())
	require.Equal(t, int64(1), heap.classes[size].shared.Count())

	// and the heap recycles it.
	require.Equal(t, ptr, heap.Alloc(100))
	heap.Free(ptr)
}

func TestCacherefill(t *testing.T) {
	heap := NewHeap(testsettings())
	defer heap.Release()
	cache := heap.NewCache()

	// seed the shared free-list with freed chunks.
	ptrs := make([]unsafe.Pointer, 0, 64)
	for i := 0; i < 64; i++ {
		ptrs = append(ptrs, heap.Alloc(100))
	}
	for _, ptr := range ptrs {
		heap.Free(ptr)
	}
	size := Suitableslab(heap.slabs, 100+chunkheader)
	require.Equal(t, int64(64), heap.classes[size].shared.Count())

	// the first cache miss drains the shared supply into the local
	// list, within "cache.max".
	ptr := cache.Alloc(100)
	require.NotNil(t, ptr)
	require.Equal(t, int64(0), heap.classes[size].shared.Count())
	require.Equal(t, int64(63), cache.local[size].Count())

	// subsequent allocations never touch the shared list.
	for i := 0; i < 63; i++ {
		require.NotNil(t, cache.Alloc(100))
	}
	require.Equal(t, int64(0), cache.local[size].Count())
	cache.Free(ptr)
}

func TestCachemax(t *testing.T) {
	setts := testsettings()
	setts["cache.max"] = int64(8)
	heap := NewHeap(setts)
	defer heap.Release()
	cache := heap.NewCache()

	size := Suitableslab(heap.slabs, 100+chunkheader)
	ptrs := make([]unsafe.Pointer, 0, 16)
	for i := 0; i < 16; i++ {
		ptrs = append(ptrs, cache.Alloc(100))
	}
	for _, ptr := range ptrs {
		cache.Free(ptr)
	}
	// crossing cache.max splices the local supply back.
	require.True(t, heap.classes[size].shared.Count() > 0)
	require.True(t, cache.local[size].Count() <= 8)
}
