package tlsf

import (
	"sync"
	"unsafe"
)

// singleton is the process-wide pool backing the package-level
// Init/Malloc/Free/Teardown convenience wrappers.
var singleton struct {
	mu   sync.Mutex
	pool *Pool
}

// Init creates the process-wide pool. It fails with ErrAlreadyInitialized
// if called again before Teardown.
func Init(poolSize int, opts ...Option) error {
	singleton.mu.Lock()
	defer singleton.mu.Unlock()

	if singleton.pool != nil {
		return ErrAlreadyInitialized
	}
	p, err := New(poolSize, opts...)
	if err != nil {
		return err
	}
	singleton.pool = p
	return nil
}

// Malloc allocates from the process-wide pool created by Init.
func Malloc(size int) (unsafe.Pointer, error) {
	singleton.mu.Lock()
	p := singleton.pool
	singleton.mu.Unlock()

	if p == nil {
		return nil, ErrNotInitialized
	}
	return p.Malloc(size)
}

// Free returns an allocation to the process-wide pool created by Init.
// Freeing nil, or calling Free before Init, is a no-op.
func Free(ptr unsafe.Pointer) {
	singleton.mu.Lock()
	p := singleton.pool
	singleton.mu.Unlock()

	if p == nil {
		return
	}
	p.Free(ptr)
}

// Teardown releases the process-wide pool created by Init, if any.
func Teardown() error {
	singleton.mu.Lock()
	defer singleton.mu.Unlock()

	if singleton.pool == nil {
		return nil
	}
	err := singleton.pool.Teardown()
	singleton.pool = nil
	return err
}
