package tlsf

import "unsafe"

// First-level / second-level matrix shape. Fixed regardless of word size;
// only fliOffset (and therefore the size classes themselves) varies by
// target, see align_64.go / align_32.go.
const (
	fliCount = 16
	sliCount = 16
	sliLog2  = 4
)

const alignMask = uintptr(1<<alignShift) - 1

// blockHeader precedes every block's user payload, whether the block is
// free or allocated. size's low bit doubles as the free flag: 1 means the
// block is on a free list, 0 means it has been handed to a caller.
// prevFree/nextFree are only meaningful while the block is free.
type blockHeader struct {
	size     uintptr
	prevPhys *blockHeader
	prevFree *blockHeader
	nextFree *blockHeader
}

func (b *blockHeader) isFree() bool { return b.size&1 == 1 }
func (b *blockHeader) setFree()     { b.size |= 1 }
func (b *blockHeader) clearFree()   { b.size &^= 1 }

// effectiveSize returns size with the free flag masked off.
func (b *blockHeader) effectiveSize() uintptr { return b.size &^ 1 }

// setSize replaces the size portion of the header, preserving the current
// free flag.
func (b *blockHeader) setSize(s uintptr) {
	b.size = (s &^ 1) | (b.size & 1)
}

// poolHeader is the allocator's own bookkeeping: the two-level bitmap and
// the bucket matrix. It is kept as ordinary Go state alongside the backing
// region rather than overlaid on the pool's bytes.
type poolHeader struct {
	size     int
	flBitmap uint32
	slBitmap [fliCount]uint32
	blocks   [fliCount][sliCount]*blockHeader
}

const (
	blockHeaderSize    = unsafe.Sizeof(blockHeader{})
	poolHeaderOverhead = unsafe.Sizeof(poolHeader{})

	minBlockSize = uintptr(1) << fliOffset
	maxBlockSize = (uintptr(1) << (fliCount + fliOffset)) - 1

	minPoolSize = minBlockSize + poolHeaderOverhead
	maxPoolSize = maxBlockSize + poolHeaderOverhead
)

// blockSizeForBucket returns BLOCK_SIZE(fli, sli): the lower size bound a
// block must meet to have been indexed into this bucket.
func blockSizeForBucket(fli, sli int) uintptr {
	return (uintptr(1) << uint(fli+fliOffset)) + (uintptr(sli) << uint(fli+fliOffset-sliLog2))
}
