// Package vmem wraps the platform virtual memory API used by the arena:
// reserving address space, committing and decommitting pages inside a
// reservation, and releasing it.
//
// A reservation is returned as a byte slice whose length is the requested
// size and whose capacity is the page-rounded size of the mapping. Only the
// committed parts of the slice may be touched.
package vmem

import (
	"errors"
	"fmt"
	"os"
)

// ErrEmpty is returned when a zero or negative reservation is requested.
var ErrEmpty = errors.New("vmem: empty reservation")

var pageSize = os.Getpagesize()

// PageSize returns the granularity commit and decommit operate on.
func PageSize() int { return pageSize }

// Reserve reserves size bytes of address space without backing it with
// physical memory.
func Reserve(size int) ([]byte, error) {
	if size <= 0 {
		return nil, ErrEmpty
	}
	mem, err := reserve(roundUp(size, pageSize))
	if err != nil {
		return nil, fmt.Errorf("vmem: reserve %d bytes: %w", size, err)
	}
	return mem[:size], nil
}

// Commit backs [off, off+n) of a reservation with readable, writable pages.
// The range is widened to page boundaries.
func Commit(mem []byte, off, n int) error {
	start, end := off&^(pageSize-1), roundUp(off+n, pageSize)
	if end > cap(mem) {
		end = cap(mem)
	}
	if n <= 0 || start >= end {
		return nil
	}
	if err := commit(mem[:cap(mem)], start, end); err != nil {
		return fmt.Errorf("vmem: commit [%d, %d): %w", start, end, err)
	}
	return nil
}

// Decommit returns the pages lying entirely inside [off, off+n) to the OS.
// Their contents are lost; the address range stays reserved.
func Decommit(mem []byte, off, n int) error {
	start, end := roundUp(off, pageSize), (off+n)&^(pageSize-1)
	if off+n >= len(mem) {
		end = cap(mem)
	}
	if n <= 0 || start >= end {
		return nil
	}
	if err := decommit(mem[:cap(mem)], start, end); err != nil {
		return fmt.Errorf("vmem: decommit [%d, %d): %w", start, end, err)
	}
	return nil
}

// Release gives the whole reservation back to the OS.
func Release(mem []byte) error {
	if cap(mem) == 0 {
		return nil
	}
	if err := release(mem[:cap(mem)]); err != nil {
		return fmt.Errorf("vmem: release %d bytes: %w", cap(mem), err)
	}
	return nil
}

func roundUp(n, align int) int {
	return (n + align - 1) &^ (align - 1)
}
