package tlsf

import "golang.org/x/sys/unix"

// Provider acquires and releases the contiguous byte region a Pool manages.
// Pool backing acquisition is treated as an external collaborator by this
// package: the allocator only requires that Acquire return a region of
// exactly the requested size, and that Release reclaim whatever Acquire
// returned.
type Provider interface {
	// Acquire returns a contiguous region of exactly size bytes.
	Acquire(size int) ([]byte, error)

	// Release reclaims a region previously returned by Acquire.
	Release(mem []byte) error
}

// MmapProvider acquires anonymous, zero-filled pages via mmap. It is the
// default provider for New/Init.
type MmapProvider struct{}

// NewMmapProvider returns a Provider backed by anonymous mmap regions.
func NewMmapProvider() *MmapProvider { return &MmapProvider{} }

func (*MmapProvider) Acquire(size int) ([]byte, error) {
	return unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
}

func (*MmapProvider) Release(mem []byte) error {
	return unix.Munmap(mem)
}

// FixedProvider hands out a single, caller-supplied region, for
// freestanding configurations with a fixed backing address and for tests
// that want a plain Go-allocated buffer instead of mmap.
//
// The caller remains responsible for keeping buf alive and unmoved for as
// long as the Pool built on it is in use.
type FixedProvider struct {
	buf  []byte
	used bool
}

// NewFixedProvider wraps buf for use as a single pool's backing region.
func NewFixedProvider(buf []byte) *FixedProvider {
	return &FixedProvider{buf: buf}
}

func (f *FixedProvider) Acquire(size int) ([]byte, error) {
	if f.used {
		return nil, ErrProviderExhausted
	}
	if len(f.buf) < size {
		return nil, ErrProviderTooSmall
	}
	f.used = true
	return f.buf[:size:size], nil
}

func (f *FixedProvider) Release(mem []byte) error {
	f.used = false
	return nil
}
