//go:build !debug
// +build !debug

package lflist

func assertquiet[T any](buf *buffer[T]) {
}
