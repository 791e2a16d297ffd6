//go:build unix

package mem

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Reserve commits size bytes of anonymous private memory and returns the
// region. The mapping is page-aligned and zero-filled by the kernel.
func Reserve(size int) ([]byte, error) {
	if size <= 0 {
		return nil, fmt.Errorf("mem: invalid region size %d", size)
	}
	size = RoundToPages(size)
	region, err := unix.Mmap(-1, 0, size,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, fmt.Errorf("mem: mmap %d bytes: %w", size, err)
	}
	return region, nil
}

// Release returns a region obtained from Reserve back to the OS.
func Release(region []byte) error {
	if len(region) == 0 {
		return nil
	}
	if err := unix.Munmap(region); err != nil {
		return fmt.Errorf("mem: munmap: %w", err)
	}
	return nil
}
