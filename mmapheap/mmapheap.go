// Package mmapheap supplies raw zeroed regions to slab pools via
// anonymous memory maps. Regions returned by Alloc live outside the
// golang heap and are given back to the OS on Free or Release.
package mmapheap

import "fmt"
import "sync"
import "sync/atomic"
import "unsafe"

import "golang.org/x/sys/unix"

// Pagesize granularity of memory obtained from the OS, region sizes
// are rounded up to a multiple of this.
const Pagesize = int64(4096)

// Heap hands out zeroed page-aligned regions and reclaims them.
type Heap struct {
	// 64-bit aligned stats.
	mapped int64 // bytes currently mapped

	mu      sync.Mutex
	regions map[uintptr][]byte
}

// New create a page supplier.
func New() *Heap {
	return &Heap{regions: make(map[uintptr][]byte)}
}

// Alloc map a zeroed region of at least `size` bytes. Failure to map
// is treated as unrecoverable memory exhaustion.
func (heap *Heap) Alloc(size int64) unsafe.Pointer {
	if size <= 0 {
		panicerr("mmapheap.Alloc(): size %v", size)
	}
	if mod := size % Pagesize; mod != 0 {
		size += Pagesize - mod
	}
	data, err := unix.Mmap(
		-1, 0, int(size),
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		panicerr("mmapheap.Alloc(%v): %v", size, err)
	}
	ptr := uintptr(unsafe.Pointer(&data[0]))
	heap.mu.Lock()
	heap.regions[ptr] = data
	heap.mu.Unlock()
	atomic.AddInt64(&heap.mapped, size)
	return unsafe.Pointer(ptr)
}

// Free unmap a region obtained from Alloc.
func (heap *Heap) Free(ptr unsafe.Pointer) {
	heap.mu.Lock()
	data, ok := heap.regions[uintptr(ptr)]
	delete(heap.regions, uintptr(ptr))
	heap.mu.Unlock()
	if !ok {
		panicerr("mmapheap.Free(): %p not mapped by this heap", ptr)
	}
	size := int64(len(data))
	if err := unix.Munmap(data); err != nil {
		panicerr("mmapheap.Free(%p): %v", ptr, err)
	}
	atomic.AddInt64(&heap.mapped, -size)
}

// Mapped bytes currently obtained from the OS.
func (heap *Heap) Mapped() int64 {
	return atomic.LoadInt64(&heap.mapped)
}

// Release unmap every region still held by this heap.
func (heap *Heap) Release() {
	heap.mu.Lock()
	defer heap.mu.Unlock()
	for ptr, data := range heap.regions {
		if err := unix.Munmap(data); err != nil {
			panicerr("mmapheap.Release(%x): %v", ptr, err)
		}
		atomic.AddInt64(&heap.mapped, -int64(len(data)))
	}
	heap.regions = make(map[uintptr][]byte)
}

func panicerr(fmsg string, args ...interface{}) {
	panic(fmt.Errorf(fmsg, args...))
}
