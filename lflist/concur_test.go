package lflist

import "sync"
import "testing"

func TestConcurpush(t *testing.T) {
	// P threads push 1000 uniquely tagged items each, the drained
	// snapshot holds exactly P*1000 entries, no duplicate and no
	// missing tag.
	nroutines, repeat := 8, 1000
	list := NewList[int64](128)
	defer list.Release()

	var wg sync.WaitGroup
	wg.Add(nroutines)
	for n := 0; n < nroutines; n++ {
		go func(n int) {
			defer wg.Done()
			for i := 0; i < repeat; i++ {
				tag := uint64(n*repeat+i) + 2
				list.Push(tag, int64(tag))
			}
		}(n)
	}
	wg.Wait()

	if count := list.Count(); count != int64(nroutines*repeat) {
		t.Errorf("expected %v, got %v", nroutines*repeat, count)
	}
	entries := list.Dropoutall()
	if len(entries) != nroutines*repeat {
		t.Errorf("expected %v, got %v", nroutines*repeat, len(entries))
	}
	seen := make(map[uint64]bool, len(entries))
	for _, entry := range entries {
		if seen[entry.Tag] {
			t.Errorf("duplicate tag %v", entry.Tag)
		} else if entry.Data != int64(entry.Tag) {
			t.Errorf("tag %v carries %v", entry.Tag, entry.Data)
		}
		seen[entry.Tag] = true
	}
	for n := 0; n < nroutines; n++ {
		for i := 0; i < repeat; i++ {
			if tag := uint64(n*repeat+i) + 2; !seen[tag] {
				t.Errorf("missing tag %v", tag)
			}
		}
	}
	if count := list.Count(); count != 0 {
		t.Errorf("expected %v, got %v", 0, count)
	}
}

func TestConcurpushpop(t *testing.T) {
	// no lost updates: pushers and poppers race, whatever the pops
	// miss the final drain recovers.
	nroutines, repeat := 8, 1000
	list := NewList[int64](128)
	defer list.Release()

	popped := make([]map[uint64]bool, nroutines)
	var pushwg, popwg sync.WaitGroup
	done := make(chan struct{})

	pushwg.Add(nroutines)
	for n := 0; n < nroutines; n++ {
		go func(n int) {
			defer pushwg.Done()
			for i := 0; i < repeat; i++ {
				list.Push(uint64(n*repeat+i)+2, int64(i))
			}
		}(n)
	}
	popwg.Add(nroutines)
	for n := 0; n < nroutines; n++ {
		popped[n] = make(map[uint64]bool)
		go func(n int) {
			defer popwg.Done()
			for {
				if tag, _, ok := list.Pop(); ok {
					if popped[n][tag] {
						panic("tag popped twice by one goroutine")
					}
					popped[n][tag] = true
					continue
				}
				select {
				case <-done:
					return
				default:
				}
			}
		}(n)
	}

	pushwg.Wait()
	close(done)
	popwg.Wait()

	seen := make(map[uint64]bool)
	for n := 0; n < nroutines; n++ {
		for tag := range popped[n] {
			if seen[tag] {
				t.Errorf("tag %v popped twice", tag)
			}
			seen[tag] = true
		}
	}
	for _, entry := range list.Dropoutall() {
		if seen[entry.Tag] {
			t.Errorf("tag %v drained and popped", entry.Tag)
		}
		seen[entry.Tag] = true
	}
	if len(seen) != nroutines*repeat {
		t.Errorf("expected %v, got %v", nroutines*repeat, len(seen))
	}
}

func TestConcurdrain(t *testing.T) {
	// pushers race concurrent drainers, nothing is lost and nothing
	// is duplicated across drains.
	nroutines, repeat, ndrainers := 4, 1000, 2
	list := NewList[int64](64)
	defer list.Release()

	var pushwg, drainwg sync.WaitGroup
	done := make(chan struct{})
	drained := make(chan []Entry[int64], nroutines*repeat+1)

	pushwg.Add(nroutines)
	for n := 0; n < nroutines; n++ {
		go func(n int) {
			defer pushwg.Done()
			for i := 0; i < repeat; i++ {
				list.Push(uint64(n*repeat+i)+2, int64(i))
			}
		}(n)
	}
	drainwg.Add(ndrainers)
	for n := 0; n < ndrainers; n++ {
		go func() {
			defer drainwg.Done()
			for {
				if entries := list.Dropoutall(); entries != nil {
					drained <- entries
				}
				select {
				case <-done:
					return
				default:
				}
			}
		}()
	}

	pushwg.Wait()
	close(done)
	drainwg.Wait()
	if entries := list.Dropoutall(); entries != nil {
		drained <- entries
	}
	close(drained)

	seen := make(map[uint64]bool)
	for entries := range drained {
		for _, entry := range entries {
			if seen[entry.Tag] {
				t.Errorf("tag %v drained twice", entry.Tag)
			}
			seen[entry.Tag] = true
		}
	}
	if len(seen) != nroutines*repeat {
		t.Errorf("expected %v, got %v", nroutines*repeat, len(seen))
	}
}

func TestConcurprepend(t *testing.T) {
	// workers push into private lists, a collector splices them
	// into one shared list; the total survives.
	nroutines, repeat := 8, 1000
	shared := NewList[int64](128)
	defer shared.Release()

	var wg sync.WaitGroup
	wg.Add(nroutines)
	for n := 0; n < nroutines; n++ {
		go func(n int) {
			defer wg.Done()
			private := NewList[int64](32)
			for i := 0; i < repeat; i++ {
				private.Exclusivepush(uint64(n*repeat+i)+2, int64(i))
			}
			shared.Prependwith(private)
			private.Release()
		}(n)
	}
	wg.Wait()

	if count := shared.Count(); count != int64(nroutines*repeat) {
		t.Errorf("expected %v, got %v", nroutines*repeat, count)
	}
	seen := make(map[uint64]bool)
	for {
		tag, _, ok := shared.Pop()
		if !ok {
			break
		}
		if seen[tag] {
			t.Errorf("tag %v popped twice", tag)
		}
		seen[tag] = true
	}
	if len(seen) != nroutines*repeat {
		t.Errorf("expected %v, got %v", nroutines*repeat, len(seen))
	}
}
