package lib

import "reflect"
import "unsafe"

// Memcpy copy memory block of length `ln` from `src` to `dst`. This
// function is useful if memory block is obtained outside golang
// runtime.
func Memcpy(dst, src unsafe.Pointer, ln int) int {
	var srcnd, dstnd []byte
	srcsl := (*reflect.SliceHeader)(unsafe.Pointer(&srcnd))
	srcsl.Len, srcsl.Cap = ln, ln
	srcsl.Data = (uintptr)(src)
	dstsl := (*reflect.SliceHeader)(unsafe.Pointer(&dstnd))
	dstsl.Len, dstsl.Cap = ln, ln
	dstsl.Data = (uintptr)(dst)
	return copy(dstnd, srcnd)
}

// Memzero clear memory block of length `ln` starting at `blk`.
func Memzero(blk unsafe.Pointer, ln int) {
	var dst []byte
	dstsl := (*reflect.SliceHeader)(unsafe.Pointer(&dst))
	dstsl.Len, dstsl.Cap = ln, ln
	dstsl.Data = (uintptr)(blk)
	for i := range dst {
		dst[i] = 0
	}
}

// Byteslice project a memory block obtained outside golang runtime
// as a byte slice of length `ln`.
func Byteslice(blk unsafe.Pointer, ln int) []byte {
	var blknd []byte
	blksl := (*reflect.SliceHeader)(unsafe.Pointer(&blknd))
	blksl.Len, blksl.Cap = ln, ln
	blksl.Data = (uintptr)(blk)
	return blknd
}
