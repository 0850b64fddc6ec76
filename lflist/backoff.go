package lflist

import "runtime"
import "sync/atomic"

// spinlimit number of doubling spin rounds before falling back to
// yielding the processor.
const spinlimit = uint(6)

// backoff bounded exponential spinning for contended CAS loops.
// Zero value is ready to use, one instance per operation.
type backoff struct {
	shift uint
	pause uint64
}

func (bo *backoff) spin() {
	if bo.shift < spinlimit {
		for i := 0; i < 1<<bo.shift; i++ {
			atomic.AddUint64(&bo.pause, 1)
		}
		bo.shift++
		return
	}
	runtime.Gosched()
}
