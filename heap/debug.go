//go:build debug
// +build debug

package heap

import "reflect"
import "unsafe"

// initblock poison freshly allocated chunks, stale reads show up as
// 0xff patterns instead of silent zeros.
func initblock(block uintptr, size int64) {
	var dst []byte
	initsz := len(poolblkinit)
	sl := (*reflect.SliceHeader)(unsafe.Pointer(&dst))
	sl.Data, sl.Len = block, initsz
	for i := int64(0); i < size/int64(initsz); i++ {
		copy(dst, poolblkinit)
		sl.Data = (uintptr)(uint64(sl.Data) + uint64(initsz))
	}
	if sl.Len = int(size) % len(poolblkinit); sl.Len > 0 {
		copy(dst, poolblkinit)
	}
}
