//go:build !unix && !windows

package mem

import "fmt"

// Reserve allocates a zeroed region from the Go heap when no native
// mapping primitive is available.
func Reserve(size int) ([]byte, error) {
	if size <= 0 {
		return nil, fmt.Errorf("mem: invalid region size %d", size)
	}
	return make([]byte, RoundToPages(size)), nil
}

// Release is a no-op for Go-heap regions; the GC reclaims them once the
// caller drops its reference.
func Release(region []byte) error {
	return nil
}
