package lflist

import "sync/atomic"
import "unsafe"

// List is a paged lock-free stack of (tag, payload) slots. The chain
// of pages is anchored at the newest page; pushes and pops target
// that page first. Pages are reference counted and reclaimed only
// when no borrower is left, so concurrent readers never observe a
// freed page.
type List[T any] struct {
	// 64-bit aligned atomics.
	count   int64          // approximate number of occupied slots
	current unsafe.Pointer // *buffer[T], newest page
	bufcap  int64
}

// NewList create an empty list backed by a single page of `bufcap`
// slots.
func NewList[T any](bufcap int64) *List[T] {
	if bufcap < 1 {
		panicerr("page capacity %v < 1", bufcap)
	}
	list := &List[T]{bufcap: bufcap}
	list.current = unsafe.Pointer(newbuffer[T](bufcap))
	return list
}

// Push insert one item. tag identifies the payload to the caller and
// shall not be Emptyslot or Sentinelslot. Push always succeeds; a
// full page gets a fresh page chained in front of it.
func (list *List[T]) Push(tag uint64, data T) {
	if tag == Emptyslot || tag == Sentinelslot {
		panicerr("tag %v is reserved", tag)
	}
	var bo backoff
	for {
		headptr := atomic.LoadPointer(&list.current)
		page := (*buffer[T])(headptr)
		ref := borrow(page)
		slot := atomic.LoadInt64(&page.cursor)
		if slot+1 > list.bufcap {
			list.growhead(headptr)
		} else if atomic.CompareAndSwapInt64(&page.cursor, slot, slot+1) {
			// write the payload first, publish with the flag swap.
			page.data[slot] = data
			if !atomic.CompareAndSwapUint64(&page.flags[slot], Emptyslot, tag) {
				panicerr("reserved slot %v is not empty", slot)
			}
			atomic.AddInt64(&list.count, 1)
			ref.release()
			return
		}
		ref.release()
		bo.spin()
	}
}

// Exclusivepush single-producer fast path: the caller guarantees no
// concurrent pusher on this list, so slot reservation is a plain
// increment. Pops and page retirement on the list remain fully
// concurrent; installing a fresh page still goes through a CAS.
func (list *List[T]) Exclusivepush(tag uint64, data T) {
	if tag == Emptyslot || tag == Sentinelslot {
		panicerr("tag %v is reserved", tag)
	}
	var bo backoff
	for {
		headptr := atomic.LoadPointer(&list.current)
		page := (*buffer[T])(headptr)
		ref := borrow(page)
		slot := atomic.LoadInt64(&page.cursor)
		if slot+1 > list.bufcap {
			list.growhead(headptr)
		} else {
			atomic.StoreInt64(&page.cursor, slot+1)
			page.data[slot] = data
			atomic.StoreUint64(&page.flags[slot], tag)
			atomic.AddInt64(&list.count, 1)
			ref.release()
			return
		}
		ref.release()
		bo.spin()
	}
}

// growhead link a fresh page in front of headptr and try to install
// it as the newest page. Losing the install race is fine, another
// thread has already grown or compacted the chain.
func (list *List[T]) growhead(headptr unsafe.Pointer) {
	newpage := newbuffer[T](list.bufcap)
	atomic.StorePointer(&newpage.next, headptr)
	if !atomic.CompareAndSwapPointer(&list.current, headptr, unsafe.Pointer(newpage)) {
		unref(newpage)
	}
}

// Pop return the most recently pushed item still present. Ordering
// across threads is approximate, but within a page the highest
// reserved live slot is always inspected first. An empty list
// reports ok false.
func (list *List[T]) Pop() (tag uint64, data T, ok bool) {
	if atomic.LoadInt64(&list.count) == 0 { // benign race
		return 0, data, false
	}
	var bo backoff
	for {
		headptr := atomic.LoadPointer(&list.current)
		page := (*buffer[T])(headptr)
		ref := borrow(page)
		slot := atomic.LoadInt64(&page.cursor)
		nextptr := atomic.LoadPointer(&page.next)
		if slot == 0 && nextptr == nil { // whole chain is empty
			ref.release()
			return 0, data, false

		} else if slot == 0 { // page exhausted, compact the chain
			if atomic.CompareAndSwapPointer(&list.current, headptr, nextptr) {
				unref(page) // the chain's own reference
			}
			ref.release()
			continue
		}
		flag := atomic.LoadUint64(&page.flags[slot-1])
		if flag == Emptyslot {
			// reserved by a pusher that has not published yet
			ref.release()
			bo.spin()
			continue
		}
		if atomic.CompareAndSwapUint64(&page.flags[slot-1], flag, Emptyslot) {
			if flag != Sentinelslot {
				var zero T
				data, page.data[slot-1] = page.data[slot-1], zero
			}
			if !atomic.CompareAndSwapInt64(&page.cursor, slot, slot-1) {
				// a pusher reserved a higher slot meanwhile; leave a
				// permanent hole so scans skip this slot.
				atomic.StoreUint64(&page.flags[slot-1], Sentinelslot)
			}
			if flag != Sentinelslot {
				atomic.AddInt64(&list.count, -1)
				ref.release()
				return flag, data, true
			}
			// popped a hole, discard and scan again.
		}
		ref.release()
		bo.spin()
	}
}

// Dropoutall detach every item currently in the list as a snapshot,
// leaving the list empty over a fresh page. Items racing exactly at
// the detach boundary land on either side. Returns nil when the
// list is empty.
func (list *List[T]) Dropoutall() []Entry[T] {
	if atomic.LoadInt64(&list.count) == 0 {
		return nil
	}
	newpage := newbuffer[T](list.bufcap)
	pageptr := atomic.SwapPointer(&list.current, unsafe.Pointer(newpage))

	var entries []Entry[T]
	var bo backoff
loop:
	for pageptr != nil {
		page := (*buffer[T])(pageptr)
		ref := borrow(page)
		nextptr := atomic.LoadPointer(&page.next)
		for {
			refs := atomic.LoadInt64(&page.refs)
			if refs >= drainrefs || refs <= 1 {
				// another thread is reclaiming this page or has
				// already retired it, the rest of the chain is
				// handled there.
				ref.release()
				break loop
			}
			// quiescence: the chain's reference plus our borrow and
			// nothing else. The claim consumes both.
			if refs == 2 && atomic.CompareAndSwapInt64(&page.refs, 2, drainrefs) {
				flushbuffer(page, &entries)
				atomic.StoreInt64(&page.refs, 0)
				break
			}
			bo.spin()
		}
		pageptr = nextptr
	}
	atomic.AddInt64(&list.count, -int64(len(entries)))
	debugf("lflist dropoutall: drained %v items\n", len(entries))
	return entries
}

// Prependwith splice the entire contents of other onto the front of
// this list in one logical step, leaving other empty. Chain order is
// preserved; there is no global ordering with operations running
// concurrently on either list.
func (list *List[T]) Prependwith(other *List[T]) {
	if atomic.LoadInt64(&other.count) == 0 {
		return
	}
	newpage := newbuffer[T](other.bufcap)
	headptr := atomic.SwapPointer(&other.current, unsafe.Pointer(newpage))
	moved := atomic.SwapInt64(&other.count, 0)

	// probe to the tail of the detached chain, trusting a page's
	// next pointer only once its borrowers have quiesced.
	var bo backoff
	tail := (*buffer[T])(headptr)
	tailref := borrow(tail)
	for {
		for atomic.LoadInt64(&tail.refs) > 2 {
			bo.spin()
		}
		nextptr := atomic.LoadPointer(&tail.next)
		if nextptr == nil {
			break
		}
		next := (*buffer[T])(nextptr)
		nextref := borrow(next)
		tailref.release()
		tail, tailref = next, nextref
	}
	for {
		currptr := atomic.LoadPointer(&list.current)
		if atomic.CompareAndSwapPointer(&list.current, currptr, headptr) {
			atomic.StorePointer(&tail.next, currptr)
			break
		}
	}
	tailref.release()
	atomic.AddInt64(&list.count, moved)
}

// Count approximate number of items in the list, transiently stale
// under concurrency but convergent.
func (list *List[T]) Count() int64 {
	return atomic.LoadInt64(&list.count)
}

// Release tear down the list, dropping every page in the chain. No
// concurrent operation shall be in flight.
func (list *List[T]) Release() {
	pageptr := atomic.SwapPointer(&list.current, nil)
	npages := 0
	for pageptr != nil {
		page := (*buffer[T])(pageptr)
		nextptr := atomic.LoadPointer(&page.next)
		unref(page)
		pageptr = nextptr
		npages++
	}
	atomic.StoreInt64(&list.count, 0)
	infof("lflist released %v pages\n", npages)
}
