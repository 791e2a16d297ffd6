package heap

import "errors"

var (
	// ErrOutOfMemory indicates the OS could not supply a region when
	// creating or growing an arena. The failing operation returns this
	// error; the heap remains usable.
	ErrOutOfMemory = errors.New("heap: out of memory")

	// ErrUnknownAddress indicates a Free of a block the registry does
	// not know. The call is rejected and no allocator state is touched.
	ErrUnknownAddress = errors.New("heap: free of unknown address")

	// ErrHeapClosed indicates use of a Heap after Close.
	ErrHeapClosed = errors.New("heap: closed")

	// ErrBadSize indicates a non-positive allocation size.
	ErrBadSize = errors.New("heap: invalid allocation size")

	// ErrBadAlign indicates an alignment that is not a power of two.
	ErrBadAlign = errors.New("heap: alignment must be a power of two")
)
