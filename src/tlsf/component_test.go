package tlsf

import (
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAlignSizeLiftsToMinBlockSize(t *testing.T) {
	fmt.Fprintln(os.Stderr, "->Testing alignSize lifts undersized requests")
	assert.Equal(t, minBlockSize, alignSize(1))
	assert.Equal(t, minBlockSize, alignSize(minBlockSize))
}

func TestAlignSizeRoundsUp(t *testing.T) {
	fmt.Fprintln(os.Stderr, "->Testing alignSize rounds up to word alignment")
	want := minBlockSize + uintptr(1<<alignShift)
	got := alignSize(minBlockSize + 1)
	assert.Equal(t, want, got)
}

func TestFindIndexesMonotonic(t *testing.T) {
	fmt.Fprintln(os.Stderr, "->Testing findIndexes orders buckets monotonically with size")
	prevFli, prevSli := -1, -1
	size := minBlockSize
	for i := 0; i < 64; i++ {
		fli, sli := findIndexes(size)
		assert.GreaterOrEqual(t, fli, 0)
		assert.True(t, fli > prevFli || (fli == prevFli && sli >= prevSli))
		assert.GreaterOrEqual(t, size, blockSizeForBucket(fli, sli))
		prevFli, prevSli = fli, sli
		size += size / 8
	}
}

func TestSizeDifferenceMasksFreeFlag(t *testing.T) {
	fmt.Fprintln(os.Stderr, "->Testing sizeDifference ignores the free flag bit")
	assert.Equal(t, 0, sizeDifference(64|1, 64))
	assert.Equal(t, 16, sizeDifference(80, 64|1))
	assert.Equal(t, -16, sizeDifference(64, 80))
}

func TestFreeListAddRemoveRoundTrip(t *testing.T) {
	fmt.Fprintln(os.Stderr, "->Testing addBlockToPool/removeBlockFromPool round trip")
	p := newTestPool(t, int(minPoolSize)*4)

	b := p.blockAtAddr(p.base() + poolHeaderOverhead)
	fli, sli := findIndexes(b.effectiveSize())
	assert.Same(t, b, p.header.blocks[fli][sli])
	assert.True(t, b.isFree())

	p.removeBlockFromPool(b)
	assert.Nil(t, p.header.blocks[fli][sli])
	assert.False(t, b.isFree())
	assert.Equal(t, uint32(0), p.header.flBitmap&(1<<uint(fli)))

	p.addBlockToPool(b)
	assert.Same(t, b, p.header.blocks[fli][sli])
	assert.True(t, b.isFree())

	assert.NoError(t, p.Teardown())
}

func TestSplitBlockLeavesResidualOnFreeList(t *testing.T) {
	fmt.Fprintln(os.Stderr, "->Testing splitBlock carves a correctly-sized block and keeps the residual free")
	p := newTestPool(t, int(minPoolSize)*8)

	whole := p.blockAtAddr(p.base() + poolHeaderOverhead)
	wholeSize := whole.effectiveSize()

	wanted := minBlockSize * 2
	carved := p.splitBlock(whole, wanted)

	assert.Equal(t, wanted, carved.effectiveSize())
	assert.False(t, carved.isFree())

	// splitBlock carves the requested block off the high end of the
	// original extent: the shrunk residual keeps the low address and
	// becomes carved's prevPhys, and carved ends up the pool's last block.
	assert.True(t, p.isBlockLast(carved))
	residual := carved.prevPhys
	assert.NotNil(t, residual)
	assert.True(t, residual.isFree())
	assert.Equal(t, p.addrOf(residual)+residual.effectiveSize(), p.addrOf(carved))

	total := carved.effectiveSize() + residual.effectiveSize()
	assert.Equal(t, wholeSize, total)

	// residual and carved are physically adjacent free-to-be blocks;
	// merge them back into one before checking invariants, since two
	// adjacent free blocks would otherwise violate invariant 6.
	merged := p.mergeBlock(carved)
	assert.Equal(t, wholeSize, merged.effectiveSize())
	p.addBlockToPool(merged)
	assert.NoError(t, p.CheckInvariants())
	assert.NoError(t, p.Teardown())
}

func TestMergeBlockCoalescesNeighbors(t *testing.T) {
	fmt.Fprintln(os.Stderr, "->Testing mergeBlock absorbs free physical neighbors")
	p := newTestPool(t, int(minPoolSize)*4)

	// Malloc carves from the tail of the free residual, so after three
	// calls the physical order is residual(free) | c | b | a(last). A
	// third allocation, c, is needed so b's low-address neighbor is
	// allocated rather than the free residual — otherwise freeing a
	// neighbor of b and merging would also pull in that residual.
	a, err := p.Malloc(64)
	assert.NoError(t, err)
	b, err := p.Malloc(64)
	assert.NoError(t, err)
	c, err := p.Malloc(64)
	assert.NoError(t, err)

	aHeader := p.blockAtAddr(uintptr(a) - blockHeaderSize)
	bHeader := p.blockAtAddr(uintptr(b) - blockHeaderSize)
	cHeader := p.blockAtAddr(uintptr(c) - blockHeaderSize)
	assert.Same(t, cHeader, bHeader.prevPhys)
	assert.Same(t, aHeader, p.nextPhysOf(bHeader))

	combined := aHeader.effectiveSize() + bHeader.effectiveSize()

	p.Free(a)
	merged := p.mergeBlock(bHeader)
	assert.Equal(t, combined, merged.effectiveSize())

	p.addBlockToPool(merged)
	assert.NoError(t, p.CheckInvariants())
	assert.NoError(t, p.Teardown())
}
