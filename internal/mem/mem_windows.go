//go:build windows

package mem

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

// Reserve commits size bytes via VirtualAlloc and returns the region.
func Reserve(size int) ([]byte, error) {
	if size <= 0 {
		return nil, fmt.Errorf("mem: invalid region size %d", size)
	}
	size = RoundToPages(size)
	base, err := windows.VirtualAlloc(0, uintptr(size),
		windows.MEM_COMMIT|windows.MEM_RESERVE, windows.PAGE_READWRITE)
	if err != nil {
		return nil, fmt.Errorf("mem: VirtualAlloc %d bytes: %w", size, err)
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(base)), size), nil
}

// Release returns a region obtained from Reserve back to the OS.
func Release(region []byte) error {
	if len(region) == 0 {
		return nil
	}
	base := uintptr(unsafe.Pointer(&region[0]))
	if err := windows.VirtualFree(base, 0, windows.MEM_RELEASE); err != nil {
		return fmt.Errorf("mem: VirtualFree: %w", err)
	}
	return nil
}
