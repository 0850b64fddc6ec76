package heap

import "unsafe"

import "github.com/bnclabs/goheap/lflist"

// Cache a caller owned view over the heap, the thread-local analog.
// Frees take the single-producer fast path into a private free-list,
// empty classes refill by bulk-draining the shared free-list, and an
// overfull class splices its supply back. The Cache itself shall be
// used from one goroutine, the lists underneath remain fully
// concurrent with the rest of the heap.
type Cache struct {
	heap  *Heap
	local map[int64]*lflist.WordList
}

// NewCache create a worker cache, one per goroutine.
func (heap *Heap) NewCache() *Cache {
	cache := &Cache{heap: heap, local: make(map[int64]*lflist.WordList)}
	for _, size := range heap.slabs {
		cache.local[size] = lflist.NewWordList(heap.bufcap)
	}
	return cache
}

// Alloc like Heap.Alloc, served from the local supply first.
func (cache *Cache) Alloc(n int64) unsafe.Pointer {
	heap := cache.heap
	if n == 0 {
		return nil
	} else if n+chunkheader > heap.maxblock {
		panicerr("Alloc size %v exceeds maxblock %v", n, heap.maxblock-chunkheader)
	}
	size := Suitableslab(heap.slabs, n+chunkheader)
	class, local := heap.classes[size], cache.local[size]
	base, ok := local.Pop()
	if !ok {
		cache.refill(class, local)
		if base, ok = local.Pop(); !ok {
			if base, ok = class.shared.Pop(); !ok {
				base = heap.carve(class)
			}
		}
	}
	heap.accountalloc(class)
	ptr := unsafe.Pointer(uintptr(base) + uintptr(chunkheader))
	initblock(uintptr(ptr), class.size-chunkheader)
	return ptr
}

// Free give the chunk to the local free-list; crossing "cache.max"
// splices the whole local supply back to the shared list.
func (cache *Cache) Free(ptr unsafe.Pointer) {
	if ptr == nil {
		return
	}
	heap := cache.heap
	base, class := heap.chunkclass(ptr)
	heap.accountfree(class)
	local := cache.local[class.size]
	local.Exclusivepush(uint64(base))
	if local.Count() > heap.cachemax {
		class.shared.Prependwith(local)
	}
}

// Flush return every locally cached chunk to the shared free-lists.
// Call before abandoning the Cache, its supply is invisible to other
// workers until flushed.
func (cache *Cache) Flush() {
	for size, local := range cache.local {
		cache.heap.classes[size].shared.Prependwith(local)
	}
}

// refill drain the shared free-list into the local list, keeping at
// most "cache.max" chunks and pushing the overflow back.
func (cache *Cache) refill(class *sizeclass, local *lflist.WordList) {
	keep := cache.heap.cachemax
	for _, base := range class.shared.Dropoutall() {
		if keep > 0 {
			local.Exclusivepush(base)
			keep--
		} else {
			class.shared.Push(base)
		}
	}
}
