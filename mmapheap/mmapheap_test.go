package mmapheap

import "testing"
import "unsafe"

import "github.com/bnclabs/goheap/lib"

func TestAlloc(t *testing.T) {
	heap := New()
	defer heap.Release()

	ptr := heap.Alloc(100) // rounds up to Pagesize
	if ptr == nil {
		t.Errorf("unexpected nil pointer")
	}
	if mapped := heap.Mapped(); mapped != Pagesize {
		t.Errorf("expected %v, got %v", Pagesize, mapped)
	}
	block := lib.Byteslice(ptr, int(Pagesize))
	for i, c := range block {
		if c != 0 {
			t.Fatalf("offset %v expected zero, got %v", i, c)
		}
	}
	block[0], block[Pagesize-1] = 0xde, 0xad

	ptr2 := heap.Alloc(Pagesize * 3)
	if mapped := heap.Mapped(); mapped != Pagesize*4 {
		t.Errorf("expected %v, got %v", Pagesize*4, mapped)
	}
	heap.Free(ptr)
	heap.Free(ptr2)
	if mapped := heap.Mapped(); mapped != 0 {
		t.Errorf("expected %v, got %v", 0, mapped)
	}

	// panic cases
	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("expected panic")
			}
		}()
		heap.Alloc(0)
	}()
	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("expected panic")
			}
		}()
		heap.Free(unsafe.Pointer(uintptr(0xdeadbeef)))
	}()
}

func TestRelease(t *testing.T) {
	heap := New()
	for i := 0; i < 10; i++ {
		heap.Alloc(Pagesize)
	}
	if mapped := heap.Mapped(); mapped != Pagesize*10 {
		t.Errorf("expected %v, got %v", Pagesize*10, mapped)
	}
	heap.Release()
	if mapped := heap.Mapped(); mapped != 0 {
		t.Errorf("expected %v, got %v", 0, mapped)
	}
}
