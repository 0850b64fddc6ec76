// Package heap implements a concurrent memory allocator with a
// C-like malloc/free/calloc/realloc surface, with a limited scope:
//
//   - Allocations are served from slab sized chunks, every slab size
//     backed by a lock-free free-list of chunk addresses.
//   - Raw zeroed pages come from an anonymous-mmap supplier and are
//     carved into chunks on demand; pages grow adaptively as a slab
//     proves hot.
//   - Chunks carry an 8-byte slab header, so Free and Realloc work
//     from the pointer alone. Chunks handed to the application are
//     always 64-bit aligned.
//   - Caches give a worker goroutine a private free-list view with a
//     single-producer fast path; empty caches refill by bulk-draining
//     the shared free-list and full caches splice their supply back.
//
// Memory obtained from the OS is returned only when the heap is
// Released.
package heap
