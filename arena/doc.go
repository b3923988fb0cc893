// Package arena provides a bounded bump allocator for moving variable-length
// data across the host/sandbox boundary.
//
// An Arena owns a fixed-capacity Region and hands out (offset, length) spans
// instead of pointers. Allocation is a bump of a single watermark; there is
// no per-allocation free. Reset drops the watermark back to zero and is the
// only way space is reclaimed, so spans are valid exactly until the next
// Reset of the arena that produced them.
//
//	a := arena.New(1 << 20)
//	off, err := a.Write([]byte("hello"))
//	...
//	data, err := a.Read(off, 5)
//	a.Reset()
//
// Exhaustion and out-of-range reads are recoverable errors; only failure to
// obtain the backing region itself is fatal. An arena is single-owner: the
// alternating boundary call protocol serializes access, so no methods lock.
package arena
