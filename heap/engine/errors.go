package engine

import "errors"

var (
	// ErrNoSpace indicates that no free block large enough exists in any
	// registered pool.
	ErrNoSpace = errors.New("engine: no free block large enough")

	// ErrBadAddress indicates a free of an address the engine never
	// handed out, or handed out and already reclaimed.
	ErrBadAddress = errors.New("engine: bad block address")

	// ErrBadPool indicates an attempt to register an empty or undersized
	// pool region.
	ErrBadPool = errors.New("engine: pool region too small")

	// ErrBadRequest indicates a non-positive size or an alignment that is
	// not a power of two.
	ErrBadRequest = errors.New("engine: invalid size or alignment")

	// ErrReleased indicates use of an engine after Release.
	ErrReleased = errors.New("engine: released")
)
