package heap

import "errors"
import "fmt"

// ErrorOutofMemory panic value when a page supply would exceed the
// heap's configured capacity.
var ErrorOutofMemory = errors.New("goheap.outofmemory")

func panicerr(fmsg string, args ...interface{}) {
	panic(fmt.Errorf(fmsg, args...))
}

var poolblkinit = make([]byte, 1024)
var zeroblkinit = make([]byte, 1024)

func init() {
	for i := 0; i < len(poolblkinit); i++ {
		poolblkinit[i] = 0xff
	}
}
