package heap

import "sort"
import "sync/atomic"
import "unsafe"

import gohumanize "github.com/dustin/go-humanize"

// Info implement api.Mallocer{} interface. capacity is the
// configured limit, heapmem the memory obtained from the OS, alloc
// the memory with the application and overhead the cost of managing
// it all.
func (heap *Heap) Info() (capacity, heapmem, alloc, overhead int64) {
	capacity = heap.capacity
	heapmem = heap.pages.Mapped()
	alloc = atomic.LoadInt64(&heap.allocated)
	overhead = int64(unsafe.Sizeof(*heap))
	for _, class := range heap.classes {
		overhead += int64(unsafe.Sizeof(*class))
		overhead += class.shared.Count() * int64(unsafe.Sizeof(uint64(0)))
	}
	return
}

// Utilization implement api.Mallocer{} interface, per-slab ratio of
// chunks with the application to chunks carved.
func (heap *Heap) Utilization() ([]int, []float64) {
	var sizes []int
	for _, size := range heap.slabs {
		sizes = append(sizes, int(size))
	}
	sort.Ints(sizes)

	ss, zs := make([]int, 0), make([]float64, 0)
	for _, size := range sizes {
		class := heap.classes[int64(size)]
		carved := atomic.LoadInt64(&class.ncarved)
		if carved == 0 {
			continue
		}
		nalloc := atomic.LoadInt64(&class.nalloc)
		ss = append(ss, size)
		zs = append(zs, (float64(nalloc)/float64(carved))*100)
	}
	return ss, zs
}

// Logstats log a one line summary of heap accounting, sizes are
// humanized.
func (heap *Heap) Logstats() {
	capacity, heapmem, alloc, overhead := heap.Info()
	infof(
		"goheap: capacity:%v heap:%v alloc:%v overhead:%v\n",
		gohumanize.Bytes(uint64(capacity)), gohumanize.Bytes(uint64(heapmem)),
		gohumanize.Bytes(uint64(alloc)), gohumanize.Bytes(uint64(overhead)),
	)
}
