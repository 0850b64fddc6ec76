package heap

import "sync"
import "unsafe"

// Aligned serves host runtimes needing alignment guarantees beyond
// the heap's natural 8-byte alignment: requests are over-allocated
// by align-1 bytes and the aligned address is mapped back to its
// chunk in a translation table. Construct one per process and pass
// it where needed, there is no ambient instance and no teardown
// ordering to worry about.
type Aligned struct {
	heap    *Heap
	mapping sync.Map // aligned address -> chunk address
}

// NewAligned create an aligned-allocation bridge over the heap.
func NewAligned(heap *Heap) *Aligned {
	return &Aligned{heap: heap}
}

// Alloc allocate `n` bytes aligned to `align`, a power of two. Zero
// sized requests return nil.
func (al *Aligned) Alloc(n, align int64) unsafe.Pointer {
	if n == 0 {
		return nil
	} else if align <= 0 || (align&(align-1)) != 0 {
		panicerr("alignment %v is not a power of two", align)
	}
	base := al.heap.Alloc(n + align - 1)
	addr := uintptr(base)
	aligned := addr + alignpadding(addr, uintptr(align))
	al.mapping.Store(aligned, addr)
	return unsafe.Pointer(aligned)
}

// Free release an aligned allocation, nil is a no-op. Unknown
// addresses are ignored, they were freed already or never came
// from this bridge.
func (al *Aligned) Free(ptr unsafe.Pointer) {
	if ptr == nil {
		return
	}
	if addr, ok := al.mapping.LoadAndDelete(uintptr(ptr)); ok {
		al.heap.Free(unsafe.Pointer(addr.(uintptr)))
	}
}

func alignpadding(addr, align uintptr) uintptr {
	if off := addr & (align - 1); off != 0 {
		return align - off
	}
	return 0
}
