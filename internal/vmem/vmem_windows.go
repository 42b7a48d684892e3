//go:build windows

package vmem

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

func reserve(size int) ([]byte, error) {
	addr, err := windows.VirtualAlloc(0, uintptr(size), windows.MEM_RESERVE, windows.PAGE_NOACCESS)
	if err != nil {
		return nil, err
	}
	// Cast from *uintptr to keep vet quiet: addr never points into the Go heap.
	base := *(**byte)(unsafe.Pointer(&addr))
	return unsafe.Slice(base, size), nil
}

func commit(mem []byte, start, end int) error {
	_, err := windows.VirtualAlloc(uintptr(unsafe.Pointer(&mem[start])), uintptr(end-start),
		windows.MEM_COMMIT, windows.PAGE_READWRITE)
	return err
}

func decommit(mem []byte, start, end int) error {
	return windows.VirtualFree(uintptr(unsafe.Pointer(&mem[start])), uintptr(end-start), windows.MEM_DECOMMIT)
}

func release(mem []byte) error {
	return windows.VirtualFree(uintptr(unsafe.Pointer(unsafe.SliceData(mem))), 0, windows.MEM_RELEASE)
}
