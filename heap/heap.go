package heap

import "sync/atomic"
import "unsafe"

import s "github.com/bnclabs/gosettings"

import "github.com/bnclabs/goheap/api"
import "github.com/bnclabs/goheap/lflist"
import "github.com/bnclabs/goheap/lib"
import "github.com/bnclabs/goheap/mmapheap"

// chunkheader every chunk starts with 8 bytes holding its slab
// size, the application block follows.
const chunkheader = int64(8)

// sizeclass one slab size and its shared lock-free free-list of
// chunk base addresses.
type sizeclass struct {
	// 64-bit aligned stats.
	npages  int64 // pages carved for this slab so far
	ncarved int64 // chunks carved from those pages
	nalloc  int64 // chunks currently with the application

	size   int64
	shared *lflist.WordList
}

// Heap a concurrent memory allocator. Slab sized chunks are served
// from per-slab free-lists, raw pages are supplied by mmapheap.
type Heap struct {
	// 64-bit aligned stats.
	allocated int64

	slabs   []int64
	classes map[int64]*sizeclass
	pages   *mmapheap.Heap

	// configuration
	capacity int64
	minblock int64
	maxblock int64
	bufcap   int64
	cachemax int64
}

var _ api.Mallocer = (*Heap)(nil)

// NewHeap create a heap with configurable settings, start from
// Defaultsettings().
func NewHeap(setts s.Settings) *Heap {
	heap := &Heap{
		minblock: setts.Int64("minblock"),
		maxblock: setts.Int64("maxblock"),
		capacity: setts.Int64("capacity"),
		bufcap:   setts.Int64("buffer.capacity"),
		cachemax: setts.Int64("cache.max"),
		pages:    mmapheap.New(),
	}
	if heap.capacity > Maxheapsize {
		panicerr("capacity %v cannot exceed %v", heap.capacity, Maxheapsize)
	} else if heap.minblock <= chunkheader {
		panicerr("minblock %v must exceed the chunk header", heap.minblock)
	}
	heap.slabs = Slabsizes(heap.minblock, heap.maxblock)
	heap.classes = make(map[int64]*sizeclass)
	for _, size := range heap.slabs {
		heap.classes[size] = &sizeclass{
			size:   size,
			shared: lflist.NewWordList(heap.bufcap),
		}
	}
	infof("goheap: new heap capacity:%v slabs:%v\n", heap.capacity, len(heap.slabs))
	return heap
}

//---- operations

// Alloc implement api.Mallocer{} interface.
func (heap *Heap) Alloc(n int64) unsafe.Pointer {
	if heap.classes == nil {
		panicerr("heap released")
	} else if n == 0 {
		return nil
	} else if n+chunkheader > heap.maxblock {
		panicerr("Alloc size %v exceeds maxblock %v", n, heap.maxblock-chunkheader)
	}
	return heap.Allocslab(Suitableslab(heap.slabs, n+chunkheader))
}

// Allocslab implement api.Mallocer{} interface.
func (heap *Heap) Allocslab(slab int64) unsafe.Pointer {
	class, ok := heap.classes[slab]
	if !ok {
		panicerr("no slab of size %v", slab)
	}
	base, ok := class.shared.Pop()
	if !ok {
		base = heap.carve(class)
	}
	heap.accountalloc(class)
	ptr := unsafe.Pointer(uintptr(base) + uintptr(chunkheader))
	initblock(uintptr(ptr), class.size-chunkheader)
	return ptr
}

// Calloc implement api.Mallocer{} interface.
func (heap *Heap) Calloc(nmemb, size int64) unsafe.Pointer {
	total := nmemb * size
	if total == 0 {
		return nil
	}
	ptr := heap.Alloc(total)
	lib.Memzero(ptr, int(total))
	return ptr
}

// Realloc implement api.Mallocer{} interface.
func (heap *Heap) Realloc(ptr unsafe.Pointer, n int64) unsafe.Pointer {
	if ptr == nil {
		return heap.Alloc(n)
	} else if n == 0 {
		heap.Free(ptr)
		return nil
	}
	slab := heap.Slabsize(ptr)
	if n+chunkheader <= slab {
		return ptr
	}
	newptr := heap.Alloc(n)
	lib.Memcpy(newptr, ptr, int(slab-chunkheader))
	heap.Free(ptr)
	return newptr
}

// Free implement api.Mallocer{} interface.
func (heap *Heap) Free(ptr unsafe.Pointer) {
	if ptr == nil {
		return
	}
	base, class := heap.chunkclass(ptr)
	heap.accountfree(class)
	class.shared.Push(uint64(base))
}

// Slabsize implement api.Mallocer{} interface.
func (heap *Heap) Slabsize(ptr unsafe.Pointer) int64 {
	_, class := heap.chunkclass(ptr)
	return class.size
}

// Chunklen implement api.Mallocer{} interface.
func (heap *Heap) Chunklen(ptr unsafe.Pointer) int64 {
	return heap.Slabsize(ptr) - chunkheader
}

// Slabs implement api.Mallocer{} interface.
func (heap *Heap) Slabs() []int64 {
	return heap.slabs
}

// Release implement api.Mallocer{} interface.
func (heap *Heap) Release() {
	for _, class := range heap.classes {
		class.shared.Release()
	}
	heap.pages.Release()
	heap.slabs, heap.classes = nil, nil
	infof("goheap: heap released\n")
}

//---- local functions

// carve obtain a fresh page for the class and slice it into chunks;
// the first chunk is returned, the rest feed the shared free-list.
func (heap *Heap) carve(class *sizeclass) uint64 {
	numchunks := heap.adaptivechunks(atomic.LoadInt64(&class.npages))
	pagesize := class.size * numchunks
	if heap.pages.Mapped()+pagesize > heap.capacity {
		panic(ErrorOutofMemory)
	}
	ptr := heap.pages.Alloc(pagesize)
	base := uint64(uintptr(ptr))
	for i := int64(1); i < numchunks; i++ {
		chunk := base + uint64(i*class.size)
		*(*int64)(unsafe.Pointer(uintptr(chunk))) = class.size
		class.shared.Push(chunk)
	}
	*(*int64)(unsafe.Pointer(uintptr(base))) = class.size
	atomic.AddInt64(&class.npages, 1)
	atomic.AddInt64(&class.ncarved, numchunks)
	debugf("goheap: carved %v chunks of slab %v\n", numchunks, class.size)
	return base
}

// adaptivechunks start pages small and double them every time a
// slab proves hot, capped at Maxchunks.
func (heap *Heap) adaptivechunks(npages int64) int64 {
	if npages >= 63 {
		return Maxchunks
	}
	numchunks := int64(1) << uint(npages)
	if numchunks > Maxchunks {
		return Maxchunks
	}
	return numchunks
}

// chunkclass map a chunk pointer back to its base address and size
// class, via the slab header.
func (heap *Heap) chunkclass(ptr unsafe.Pointer) (uintptr, *sizeclass) {
	base := uintptr(ptr) - uintptr(chunkheader)
	size := *(*int64)(unsafe.Pointer(base))
	class, ok := heap.classes[size]
	if !ok {
		panicerr("%p is not a chunk from this heap", ptr)
	}
	return base, class
}

func (heap *Heap) accountalloc(class *sizeclass) {
	atomic.AddInt64(&class.nalloc, 1)
	atomic.AddInt64(&heap.allocated, class.size)
}

func (heap *Heap) accountfree(class *sizeclass) {
	atomic.AddInt64(&class.nalloc, -1)
	atomic.AddInt64(&heap.allocated, -class.size)
}
