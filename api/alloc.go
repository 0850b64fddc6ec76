package api

import "unsafe"

// Mallocer interface for custom memory management.
type Mallocer interface {
	// Slabs allocatable slab of sizes.
	Slabs() (sizes []int64)

	// Alloc allocate a chunk of `n` bytes. Allocated memory is
	// always 64-bit aligned, a zero sized request returns nil.
	Alloc(n int64) unsafe.Pointer

	// Allocslab allocate a chunk from slab. Use this only if slab
	// size is known to exist with mallocer.
	Allocslab(slab int64) unsafe.Pointer

	// Calloc allocate zero initialized memory for an array of
	// `nmemb` items of `size` bytes each.
	Calloc(nmemb, size int64) unsafe.Pointer

	// Realloc resize the chunk to `n` bytes, preserving content up
	// to the smaller of the old and new sizes.
	Realloc(ptr unsafe.Pointer, n int64) unsafe.Pointer

	// Slabsize return the size of the chunk's slab.
	Slabsize(ptr unsafe.Pointer) int64

	// Chunklen return the length of the chunk usable by application.
	Chunklen(ptr unsafe.Pointer) int64

	// Free chunk back to its slab pool, nil is a no-op.
	Free(ptr unsafe.Pointer)

	// Release the heap, all its pools and resources.
	Release()

	// Info of memory accounting for this heap.
	Info() (capacity, heap, alloc, overhead int64)

	// Utilization map of slab-size and its utilization.
	Utilization() ([]int, []float64)
}
