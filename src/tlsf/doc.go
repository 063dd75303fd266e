// Package tlsf implements a Two-Level Segregated Fit memory allocator over a
// single contiguous byte region.
//
// Allocation and deallocation are O(1): a size is mapped to a (first-level,
// second-level) bucket via a pair of bitmaps, and the search for a fitting
// free block degrades to a bounded linear walk only in the one bucket whose
// nominal class matches the request but whose members may individually fall
// short of it.
//
// The allocator is not goroutine-safe for sustained concurrent use; see
// Pool's doc comment.
package tlsf
