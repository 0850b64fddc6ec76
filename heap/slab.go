package heap

// Slabsizes generate slab sizes between minblock and maxblock such
// that any allocation fits its slab within MEMUtilization.
func Slabsizes(minblock, maxblock int64) []int64 {
	if maxblock < minblock {
		panicerr("minblock %v > maxblock %v", minblock, maxblock)
	} else if (minblock % Alignment) != 0 {
		panicerr("minblock %v is not a multiple of %v", minblock, Alignment)
	} else if (maxblock % Alignment) != 0 {
		panicerr("maxblock %v is not a multiple of %v", maxblock, Alignment)
	}

	nextsize := func(from int64) int64 {
		addby := int64(float64(from) * (1.0 - MEMUtilization))
		if addby <= Alignment {
			addby = Alignment
		} else if mod := addby % Alignment; mod != 0 {
			addby -= mod
		}
		size := from + addby
		for (float64(from+size)/2.0)/float64(size) > MEMUtilization {
			size += addby
		}
		return size
	}

	sizes := make([]int64, 0, 64)
	for size := minblock; size < maxblock; {
		sizes = append(sizes, size)
		size = nextsize(size)
	}
	sizes = append(sizes, maxblock)
	return sizes
}

// Suitableslab pick the smallest slab that can hold `size` bytes.
func Suitableslab(slabs []int64, size int64) int64 {
	for {
		switch len(slabs) {
		case 1:
			return slabs[0]

		case 2:
			if size <= slabs[0] {
				return slabs[0]
			} else if size <= slabs[1] {
				return slabs[1]
			}
			panic("size greater than configured maxblock")

		default:
			pivot := len(slabs) / 2
			if slabs[pivot] < size {
				slabs = slabs[pivot+1:]
			} else {
				slabs = slabs[0 : pivot+1]
			}
		}
	}
}
