package tlsf

import (
	"fmt"
	"sync"
	"unsafe"
)

// Pool is a TLSF memory pool bound to a single backing byte region acquired
// from a Provider.
//
// WARNING: Pool is not safe for sustained concurrent use from multiple
// goroutines. It embeds a mutex purely so that two overlapping calls are
// serialized (the second blocks until the first returns) instead of
// silently corrupting free-list state. Callers needing
// concurrent access must serialize externally.
type Pool struct {
	mu sync.Mutex

	mem      []byte
	provider Provider
	header   poolHeader

	doubleFreeDetect  bool
	panicOnDoubleFree bool
}

// config holds the resolved Option values for New.
type config struct {
	provider          Provider
	doubleFreeDetect  bool
	panicOnDoubleFree bool
}

func defaultConfig() config {
	return config{
		provider:          NewMmapProvider(),
		doubleFreeDetect:  true,
		panicOnDoubleFree: true,
	}
}

// Option configures a Pool at construction time.
type Option func(*config)

// WithProvider selects the backing memory provider. The default is a
// MmapProvider.
func WithProvider(p Provider) Option {
	return func(c *config) { c.provider = p }
}

// WithDoubleFreeDetection enables or disables the free-flag check that
// rejects a second Free of the same pointer. Enabled by default.
func WithDoubleFreeDetection(enabled bool) Option {
	return func(c *config) { c.doubleFreeDetect = enabled }
}

// WithPanicOnDoubleFree controls whether a detected double-free panics
// (the default) or is silently ignored. Has no effect if double-free
// detection is disabled.
func WithPanicOnDoubleFree(panics bool) Option {
	return func(c *config) { c.panicOnDoubleFree = panics }
}

// New creates a pool managing a freshly acquired region of at least
// poolSize bytes (after rounding to alignment and the pool size bounds).
// It fails if the resolved size falls outside [MinPoolSize, MaxPoolSize].
func New(poolSize int, opts ...Option) (*Pool, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	size := alignUp(poolSize)
	if size < int(minPoolSize) {
		size = int(minPoolSize)
	}
	if size > int(maxPoolSize) {
		return nil, ErrInvalidPoolSize
	}

	mem, err := cfg.provider.Acquire(size)
	if err != nil {
		return nil, err
	}
	if len(mem) != size {
		return nil, fmt.Errorf("tlsf: provider returned %d bytes, want %d", len(mem), size)
	}
	for i := range mem {
		mem[i] = 0
	}

	p := &Pool{
		mem:               mem,
		provider:          cfg.provider,
		doubleFreeDetect:  cfg.doubleFreeDetect,
		panicOnDoubleFree: cfg.panicOnDoubleFree,
	}
	p.header.size = size

	initial := p.blockAtAddr(p.base() + poolHeaderOverhead)
	initial.size = uintptr(size) - poolHeaderOverhead
	initial.prevPhys = nil
	initial.prevFree = nil
	initial.nextFree = nil
	p.addBlockToPool(initial)

	return p, nil
}

// Teardown releases the pool's backing region via its Provider. The Pool
// must not be used afterward.
func (p *Pool) Teardown() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.mem == nil {
		return nil
	}
	mem := p.mem
	p.mem = nil
	p.header = poolHeader{}
	return p.provider.Release(mem)
}

// Malloc allocates at least size bytes and returns a pointer to the user
// payload, or an error if size exceeds MaxPoolSize or no block fits.
func (p *Pool) Malloc(size int) (unsafe.Pointer, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if size < 0 {
		return nil, ErrInvalidPoolSize
	}
	if uintptr(size) > maxPoolSize {
		return nil, ErrOutOfMemory
	}

	total := alignSize(uintptr(size) + blockHeaderSize)

	block := p.locateFreeBlock(total)
	if block == nil {
		fmt.Println("ERROR: No memory available to be allocated")
		return nil, ErrOutOfMemory
	}

	fit := p.splitBlock(block, total)
	fit.clearFree()

	return unsafe.Pointer(p.addrOf(fit) + blockHeaderSize), nil
}

// Free returns a previously Malloc'd allocation to the pool. Freeing nil
// is a no-op.
func (p *Pool) Free(ptr unsafe.Pointer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if ptr == nil {
		return
	}

	b := p.blockAtAddr(uintptr(ptr) - blockHeaderSize)

	if p.doubleFreeDetect && b.isFree() {
		if p.panicOnDoubleFree {
			panic(ErrDoubleFree)
		}
		return
	}

	merged := p.mergeBlock(b)
	p.addBlockToPool(merged)
}

// Walk visits every physical block in address order, starting from the
// first block after the pool header, until visit returns false or the
// last block has been visited.
func (p *Pool) Walk(visit func(addr uintptr, size int, free bool) bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	b := p.blockAtAddr(p.base() + poolHeaderOverhead)
	for {
		if !visit(p.addrOf(b), int(b.effectiveSize()), b.isFree()) {
			return
		}
		if p.isBlockLast(b) {
			return
		}
		b = p.nextPhysOf(b)
	}
}

// --- physical-address helpers ---

func (p *Pool) base() uintptr { return uintptr(unsafe.Pointer(&p.mem[0])) }
func (p *Pool) end() uintptr  { return p.base() + uintptr(len(p.mem)) }

func (p *Pool) addrOf(b *blockHeader) uintptr { return uintptr(unsafe.Pointer(b)) }

func (p *Pool) blockAtAddr(addr uintptr) *blockHeader {
	return (*blockHeader)(unsafe.Pointer(addr))
}

func (p *Pool) isBlockLast(b *blockHeader) bool {
	return p.addrOf(b)+b.effectiveSize() >= p.end()
}

func (p *Pool) nextPhysOf(b *blockHeader) *blockHeader {
	return p.blockAtAddr(p.addrOf(b) + b.effectiveSize())
}

// fixupSuccessorPrevPhys repoints b's physical successor's prevPhys at b.
// Needed after any operation that changes b's size or address identity
// (split, coalesce) without moving the successor itself.
func (p *Pool) fixupSuccessorPrevPhys(b *blockHeader) {
	if !p.isBlockLast(b) {
		p.nextPhysOf(b).prevPhys = b
	}
}
