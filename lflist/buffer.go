package lflist

import "sync/atomic"
import "unsafe"

// drainrefs reference count marker claimed by a bulk drain, keeps
// every other reclaimer away from the page while it is flushed.
const drainrefs = int64(1) << 32

// buffer is one page of the list, holding a parallel array of
// atomic flag words and payload cells. cursor counts the slots
// reserved so far and doubles as the page's occupancy bound. next
// links to the strictly older page in the chain.
type buffer[T any] struct {
	// 64-bit aligned atomics.
	cursor int64
	refs   int64          // 1 for the chain, +1 per live borrow
	next   unsafe.Pointer // *buffer[T]
	flags  []uint64       // Emptyslot | Sentinelslot | caller tag
	data   []T
}

// Entry one (tag, payload) pair moved out of the list by a flush
// or a bulk drain.
type Entry[T any] struct {
	Tag  uint64
	Data T
}

func newbuffer[T any](capacity int64) *buffer[T] {
	return &buffer[T]{
		refs:  1,
		flags: make([]uint64, capacity),
		data:  make([]T, capacity),
	}
}

// bufferRef scoped borrow on a page. Holding a live bufferRef is
// the only valid way to read or mutate page fields.
type bufferRef[T any] struct {
	buf *buffer[T]
}

func borrow[T any](buf *buffer[T]) bufferRef[T] {
	atomic.AddInt64(&buf.refs, 1)
	return bufferRef[T]{buf: buf}
}

func (ref bufferRef[T]) release() {
	unref(ref.buf)
}

// unref drop one reference; the reference hitting zero flushes and
// abandons the page.
func unref[T any](buf *buffer[T]) {
	if atomic.AddInt64(&buf.refs, -1) == 0 {
		flushbuffer(buf, nil)
	}
}

// flushbuffer move whatever the page still holds into retain and
// reset the cursor. Callers must have established quiescence, no
// concurrent pusher or popper can be touching the page.
func flushbuffer[T any](buf *buffer[T], retain *[]Entry[T]) {
	assertquiet(buf)
	var zero T
	n := atomic.LoadInt64(&buf.cursor)
	for i := int64(0); i < n; i++ {
		flag := atomic.LoadUint64(&buf.flags[i])
		if flag != Emptyslot && flag != Sentinelslot {
			if retain != nil {
				*retain = append(*retain, Entry[T]{Tag: flag, Data: buf.data[i]})
			}
			buf.data[i] = zero
		}
		atomic.StoreUint64(&buf.flags[i], Emptyslot)
	}
	atomic.StoreInt64(&buf.cursor, 0)
}
