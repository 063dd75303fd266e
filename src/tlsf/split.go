package tlsf

// splitBlock carves a wanted-size block out of b, a free block whose
// effective size is already known to be >= wanted. If the residual left
// over is too small to stand on its own as a block, the split is skipped
// and b is returned whole (the caller absorbs the slight overallocation).
// Otherwise b is shrunk to the residual and reinserted, and a new header
// is written at its tail describing the carved-out block, which is
// returned with its free flag left clear.
func (p *Pool) splitBlock(b *blockHeader, wanted uintptr) *blockHeader {
	p.removeBlockFromPool(b)

	diff := sizeDifference(b.size, wanted)
	if diff < int(minBlockSize) {
		return b
	}

	residual := uintptr(diff)
	b.setSize(residual)
	p.addBlockToPool(b)

	carved := p.blockAtAddr(p.addrOf(b) + residual)
	carved.setSize(wanted)
	carved.prevPhys = b
	carved.prevFree = nil
	carved.nextFree = nil

	// The block physically following the carved-out block still believes
	// its predecessor is b's old, larger extent. b's address hasn't
	// moved, but carved now sits between b and that successor, so the
	// successor's prevPhys must be repointed at carved to keep invariant
	// 7 (P + P.size == successor) intact.
	p.fixupSuccessorPrevPhys(carved)

	return carved
}
