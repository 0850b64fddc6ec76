//go:build debug
// +build debug

package lflist

import "sync/atomic"

// A page is flushed either by the last unref or under a drain
// claim; any other reference count means a reclamation-safety bug.
func assertquiet[T any](buf *buffer[T]) {
	if refs := atomic.LoadInt64(&buf.refs); refs != 0 && refs != drainrefs {
		panicerr("flushing page with %v live references", refs)
	}
}
