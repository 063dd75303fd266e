package tlsf

// mergeBlock absorbs b's free physical neighbors into it. b is not yet
// reinserted into any free list — its free flag is still clear on entry.
// It returns the merged block, which carries the final, merged size: b
// itself, or b's physical predecessor when that predecessor was free and
// absorbed b. The caller (Free) is responsible for calling addBlockToPool
// on the returned block afterward.
func (p *Pool) mergeBlock(b *blockHeader) *blockHeader {
	if b.prevPhys != nil && b.prevPhys.isFree() {
		prev := b.prevPhys
		p.removeBlockFromPool(prev)
		prev.setSize(prev.effectiveSize() + b.effectiveSize())
		b = prev
	}

	if !p.isBlockLast(b) {
		next := p.nextPhysOf(b)
		if next.isFree() {
			p.removeBlockFromPool(next)
			b.setSize(b.effectiveSize() + next.effectiveSize())
		}
	}

	// Whichever merges happened, b's extent changed; its new physical
	// successor (if any) must point back at b, not at whatever used to
	// occupy b's former, smaller footprint.
	p.fixupSuccessorPrevPhys(b)

	return b
}
