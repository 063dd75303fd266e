package tlsf

import "fmt"

// CheckInvariants walks the pool's live state checking structural
// consistency (block sizing and alignment, free-list/bitmap agreement,
// no adjacent free blocks, physical linkage) and reports the first
// violation found, or nil if none. It performs no repair.
func (p *Pool) CheckInvariants() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	seen := make(map[uintptr]bool)
	total := uintptr(0)
	prevWasFree := false

	b := p.blockAtAddr(p.base() + poolHeaderOverhead)
	for {
		addr := p.addrOf(b)
		if seen[addr] {
			return fmt.Errorf("tlsf: invariant 1 violated: block at %#x visited twice while walking the pool", addr)
		}
		seen[addr] = true

		size := b.effectiveSize()
		if size%uintptr(1<<alignShift) != 0 || size < minBlockSize {
			return fmt.Errorf("tlsf: invariant 2 violated: block at %#x has size %d", addr, size)
		}

		if b.isFree() && prevWasFree {
			return fmt.Errorf("tlsf: invariant 6 violated: two adjacent free blocks at/before %#x", addr)
		}
		prevWasFree = b.isFree()

		if b.prevPhys != nil {
			if p.addrOf(b.prevPhys)+b.prevPhys.effectiveSize() != addr {
				return fmt.Errorf("tlsf: invariant 7 violated: prevPhys of block at %#x does not end there", addr)
			}
		}

		total += size
		if p.isBlockLast(b) {
			if addr+size != p.end() {
				return fmt.Errorf("tlsf: invariant 8 violated: last block at %#x does not end at pool boundary", addr)
			}
			break
		}
		b = p.nextPhysOf(b)
	}

	if want := uintptr(len(p.mem)) - poolHeaderOverhead; total != want {
		return fmt.Errorf("tlsf: sum of block sizes is %d, want %d", total, want)
	}

	for fli := 0; fli < fliCount; fli++ {
		for sli := 0; sli < sliCount; sli++ {
			head := p.header.blocks[fli][sli]
			flSet := p.header.flBitmap&(1<<uint(fli)) != 0
			slSet := p.header.slBitmap[fli]&(1<<uint(sli)) != 0

			if head != nil && !slSet {
				return fmt.Errorf("tlsf: invariant 4 violated: blocks[%d][%d] non-nil but sl_bitmap bit clear", fli, sli)
			}
			if head == nil && slSet {
				return fmt.Errorf("tlsf: invariant 4 violated: sl_bitmap[%d] bit %d set but blocks[%d][%d] is nil", fli, sli, fli, sli)
			}
			if slSet && !flSet {
				return fmt.Errorf("tlsf: invariant 4 violated: sl_bitmap[%d] has bits set but fl_bitmap bit %d clear", fli, fli)
			}

			min := blockSizeForBucket(fli, sli)
			for n := head; n != nil; n = n.nextFree {
				if !n.isFree() {
					return fmt.Errorf("tlsf: invariant 3 violated: block at %#x in free list but free flag clear", p.addrOf(n))
				}
				if n.effectiveSize() < min {
					return fmt.Errorf("tlsf: invariant 5 violated: block at %#x in bucket (%d,%d) below its class minimum", p.addrOf(n), fli, sli)
				}
			}
		}
	}

	for fli := 0; fli < fliCount; fli++ {
		flSet := p.header.flBitmap&(1<<uint(fli)) != 0
		if flSet && p.header.slBitmap[fli] == 0 {
			return fmt.Errorf("tlsf: invariant 4 violated: fl_bitmap bit %d set but sl_bitmap[%d] is empty", fli, fli)
		}
	}

	return nil
}
