// Package lflist supplies a paged, lock-free, reference counted
// concurrent stack, meant as the free-list and object-pool primitive
// underneath memory allocators, with a limited scope:
//
//   - All coordination is via compare-and-swap and bounded spinning,
//     no operation blocks on a mutex or suspends cooperatively.
//   - Items live in fixed capacity pages; a full page gets a fresh
//     page chained in front of it, an exhausted page is unlinked and
//     reclaimed once its borrowers quiesce.
//   - LIFO ordering holds within a page for a single producer; under
//     concurrency ordering across threads is approximate.
//   - Reference counting is the sole memory-safety mechanism, every
//     code path touching a page holds a scoped borrow for the
//     duration.
//
// Two typed views are supplied on top of List: WordList stores bare
// words (addresses) in the slot flags themselves, ObjectList stores
// richer per-slot objects with a fixed all-bits-set tag.
package lflist
