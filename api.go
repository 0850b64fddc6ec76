package goheap

import "sync"
import "unsafe"

import s "github.com/bnclabs/gosettings"

import "github.com/bnclabs/goheap/heap"

// Process wide default heap. Initialized exactly once, either
// explicitly via Init or lazily with Defaultsettings on first use;
// it lives for the remainder of the process, there is no teardown.
var defaultheap *heap.Heap
var initonce sync.Once

// Init construct the process wide heap with configurable settings,
// start from heap.Defaultsettings(). Subsequent calls, and calls
// after an allocation already happened, are no-ops.
func Init(setts s.Settings) {
	initonce.Do(func() {
		defaultheap = heap.NewHeap(setts)
	})
}

func gethdefault() *heap.Heap {
	Init(heap.Defaultsettings())
	return defaultheap
}

// Malloc allocate `size` bytes from the process wide heap. A zero
// sized request returns nil, not a valid block.
func Malloc(size int64) unsafe.Pointer {
	if size == 0 {
		return nil
	}
	return gethdefault().Alloc(size)
}

// Free release a block obtained from Malloc, Calloc or Realloc.
// Freeing nil is a no-op.
func Free(ptr unsafe.Pointer) {
	if ptr == nil {
		return
	}
	gethdefault().Free(ptr)
}

// Calloc allocate zero initialized memory for an array of `nmemb`
// items of `size` bytes each.
func Calloc(nmemb, size int64) unsafe.Pointer {
	return gethdefault().Calloc(nmemb, size)
}

// Realloc resize a block, preserving content up to the smaller of
// the old and new sizes. Realloc(nil, size) behaves as Malloc,
// Realloc(ptr, 0) frees and returns nil.
func Realloc(ptr unsafe.Pointer, size int64) unsafe.Pointer {
	return gethdefault().Realloc(ptr, size)
}
