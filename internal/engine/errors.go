package engine

import "errors"

// Failure taxonomy for the facade. Every failure is reported synchronously:
// it is logged at the point of occurrence and surfaced as one of these
// sentinels (wrapped with context). Nothing panics across the facade
// boundary and nothing retries.
var (
	// ErrInitialization marks a backend subsystem that failed to
	// construct. Fatal to Initialize; the engine must not be used.
	ErrInitialization = errors.New("engine: initialization failed")

	// ErrInvalidArgument marks malformed input such as an index count
	// that is not a multiple of three. The operation is aborted.
	ErrInvalidArgument = errors.New("engine: invalid argument")

	// ErrNotFound marks an out-of-range handle.
	ErrNotFound = errors.New("engine: handle not found")

	// ErrCooking marks a mesh or heightfield that failed to cook.
	// Recoverable: no resource is registered and no actor is placed.
	ErrCooking = errors.New("engine: resource cooking failed")
)
