// Package goheap implements a general purpose concurrent memory
// allocator with a C-like malloc/free/calloc/realloc surface, and
// necessary tools and libraries.
//
// api:
//
// Interface specification to access goheap allocators.
//
// lflist:
//
// Paged, lock-free, reference counted concurrent stack. The
// free-list and object-pool primitive underneath every size class
// and worker cache.
//
// mmapheap:
//
// Page supplier, hands out raw zeroed regions obtained from the OS
// via anonymous memory maps.
//
// heap:
//
// Size-class heap over lflist free-lists, with worker caches and an
// aligned-allocation bridge for host runtimes.
//
// lib:
//
// Convenience functions that can be used by other packages. Package
// shall not import packages other than golang's standard packages.
package goheap
