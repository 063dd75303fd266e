//go:build amd64 || arm64 || riscv64 || ppc64 || ppc64le || mips64 || mips64le || s390x || wasm

package tlsf

// On 64-bit targets block sizes are aligned to 8 bytes, and the smallest
// first-level class starts at 1<<6 = 64 bytes.
const (
	alignShift = 3
	fliOffset  = 6
)
