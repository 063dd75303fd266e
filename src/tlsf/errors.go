package tlsf

import "errors"

var (
	// ErrInvalidPoolSize is returned by New/Init when the resolved pool
	// size falls outside [MinPoolSize, MaxPoolSize], or when Malloc is
	// asked for a negative size.
	ErrInvalidPoolSize = errors.New("tlsf: pool size outside [MinPoolSize, MaxPoolSize]")

	// ErrOutOfMemory is returned by Malloc when the request exceeds
	// MaxPoolSize or no free block large enough could be found.
	ErrOutOfMemory = errors.New("tlsf: no free block large enough")

	// ErrAlreadyInitialized is returned by Init when called twice without
	// an intervening Teardown.
	ErrAlreadyInitialized = errors.New("tlsf: pool already initialized")

	// ErrNotInitialized is returned by the singleton Malloc wrapper when no
	// pool has been created with Init. The singleton Free and Teardown are
	// no-ops in that case.
	ErrNotInitialized = errors.New("tlsf: pool not initialized")

	// ErrDoubleFree is the panic value raised by Free when double-free
	// detection is enabled and observes a block being freed twice.
	ErrDoubleFree = errors.New("tlsf: double free detected")

	// ErrProviderExhausted is returned by FixedProvider.Acquire when the
	// provider has already handed out its one region.
	ErrProviderExhausted = errors.New("tlsf: fixed provider already in use")

	// ErrProviderTooSmall is returned by FixedProvider.Acquire when its
	// backing buffer is smaller than the requested size.
	ErrProviderTooSmall = errors.New("tlsf: fixed provider buffer smaller than requested size")
)
