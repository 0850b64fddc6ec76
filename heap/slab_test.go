package heap

import "testing"

func TestSlabsizes(t *testing.T) {
	slabs := Slabsizes(32, 1024*1024)
	if slabs[0] != 32 {
		t.Errorf("expected %v, got %v", 32, slabs[0])
	}
	if last := slabs[len(slabs)-1]; last != 1024*1024 {
		t.Errorf("expected %v, got %v", 1024*1024, last)
	}
	for i, size := range slabs {
		if (size % Alignment) != 0 {
			t.Errorf("slab %v is not a multiple of %v", size, Alignment)
		}
		if i > 0 && size <= slabs[i-1] {
			t.Errorf("slabs not strictly increasing at %v: %v", i, size)
		}
	}

	// panic cases
	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("expected panic")
			}
		}()
		Slabsizes(1024, 32)
	}()
	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("expected panic")
			}
		}()
		Slabsizes(33, 1024)
	}()
	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("expected panic")
			}
		}()
		Slabsizes(32, 1023)
	}()
}

func TestSuitableslab(t *testing.T) {
	slabs := Slabsizes(32, 1024*1024)
	for _, size := range []int64{1, 31, 32, 33, 100, 555, 4096, 1024 * 1024} {
		slab := Suitableslab(slabs, size)
		if slab < size {
			t.Errorf("slab %v smaller than size %v", slab, size)
		}
		// the chosen slab is the smallest that fits.
		for _, candidate := range slabs {
			if candidate >= size && candidate < slab {
				t.Errorf("slab %v for size %v, %v fits better", slab, size, candidate)
			}
		}
	}
	// every slab maps to itself.
	for _, size := range slabs {
		if slab := Suitableslab(slabs, size); slab != size {
			t.Errorf("expected %v, got %v", size, slab)
		}
	}
}
