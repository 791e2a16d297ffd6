// Package mem reserves and releases raw memory regions from the OS.
//
// Regions come from anonymous private mappings on unix, VirtualAlloc on
// windows, and the Go heap everywhere else. Reserved regions are
// page-aligned and zero-filled on every platform.
package mem

import "os"

// PageSize is the OS page granularity used when rounding region sizes.
var PageSize = os.Getpagesize()

// RoundToPages rounds size up to a whole number of pages.
func RoundToPages(size int) int {
	if size <= 0 {
		return PageSize
	}
	return (size + PageSize - 1) &^ (PageSize - 1)
}
