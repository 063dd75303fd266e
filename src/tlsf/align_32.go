//go:build 386 || arm || mips || mipsle

package tlsf

// On 32-bit targets block sizes are aligned to 4 bytes, and the smallest
// first-level class starts at 1<<5 = 32 bytes.
const (
	alignShift = 2
	fliOffset  = 5
)
