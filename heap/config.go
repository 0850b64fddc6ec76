package heap

import s "github.com/bnclabs/gosettings"
import "github.com/cloudfoundry/gosigar"

// Alignment chunk addresses handed to the application are multiples
// of Alignment, and so shall be minblock and maxblock.
const Alignment = int64(8)

// MEMUtilization expected ratio between memory allocated to the
// application and useful memory obtained from the OS.
const MEMUtilization = float64(0.95)

// Maxheapsize maximum capacity of a heap.
const Maxheapsize = int64(1024 * 1024 * 1024 * 1024) // 1TB

// Maxchunks maximum number of chunks carved from a single page.
const Maxchunks = int64(1024)

// Heap configurable parameters and default settings.
//
// "minblock" (int64, default: 32)
//		Minimum size of a chunk, inclusive of its header.
//
// "maxblock" (int64, default: 1MB)
//		Maximum size of a chunk, inclusive of its header.
//
// "capacity" (int64, default: free system memory)
//		Maximum memory obtainable from the OS by this heap.
//
// "buffer.capacity" (int64, default: 256)
//		Number of slots per page in the free-lists.
//
// "cache.max" (int64, default: 1024)
//		Number of chunks a Cache holds per slab before flushing its
//		local supply back to the shared free-list.
func Defaultsettings() s.Settings {
	_, _, free := getsysmem()
	return s.Settings{
		"minblock":        int64(32),
		"maxblock":        int64(1024 * 1024),
		"capacity":        int64(free),
		"buffer.capacity": int64(256),
		"cache.max":       int64(1024),
	}
}

func getsysmem() (total, used, free uint64) {
	mem := sigar.Mem{}
	mem.Get()
	return mem.Total, mem.Used, mem.Free
}
