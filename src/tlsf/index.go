package tlsf

import "math/bits"

// alignUp rounds size up to the configured word alignment. It does not
// enforce the minimum block size; callers that need that guarantee use
// alignSize.
func alignUp(size int) int {
	return (size + int(alignMask)) &^ int(alignMask)
}

// alignSize aligns size and lifts it to at least minBlockSize.
func alignSize(size uintptr) uintptr {
	aligned := (size + alignMask) &^ alignMask
	if aligned < minBlockSize {
		aligned = minBlockSize
	}
	return aligned
}

// msb returns the 0-based index of the highest set bit of size. Undefined
// for size == 0; callers must guard (every call site here aligns to at
// least minBlockSize first).
func msb(size uintptr) int {
	return bits.Len(uint(size)) - 1
}

// msbBits/lsbBits operate on the 32-bit per-first-level bitmap words,
// distinct from msb (which operates on block sizes) because the two have
// different undefined-at-zero callers and different widths.
func msbBits(w uint32) int { return bits.Len32(w) - 1 }
func lsbBits(w uint32) int { return bits.TrailingZeros32(w) }

// findIndexes maps size to its (first-level, second-level) bucket
// coordinates. size must already be >= minBlockSize; find_indexes on a
// smaller size produces a negative fli, which the caller (locateFreeBlock)
// treats as "no fit" but which is otherwise a programming error — callers
// are expected to have aligned via alignSize first.
func findIndexes(size uintptr) (fli, sli int) {
	m := msb(size)
	raw := uint32(size >> uint(m-sliLog2))
	raw &^= 1 << uint(msbBits(raw))
	return m - fliOffset, int(raw)
}

// sizeDifference returns the flag-free difference size1 - size2, as a
// signed magnitude, with each operand's free flag masked off first.
func sizeDifference(size1, size2 uintptr) int {
	return int(size1&^1) - int(size2&^1)
}
