package arena

import (
	"unsafe"
)

// The typed helpers below place values inside arena memory, which the
// garbage collector does not scan. T must not hold pointers to Go heap
// memory; pointers into arena memory or to static data are fine.

// Alloc returns a pointer to a zeroed T stored inside the arena.
// The returned pointer is valid as long as the arena hasn't been rewound past it.
func Alloc[T any](a *Arena) *T {
	p := AllocUninitialized[T](a)
	clear(unsafe.Slice((*byte)(unsafe.Pointer(p)), unsafe.Sizeof(*p)))
	return p
}

// AllocZeroed is identical to Alloc - provided for API consistency.
func AllocZeroed[T any](a *Arena) *T {
	return Alloc[T](a)
}

// AllocUninitialized returns a *T located in the arena without zeroing memory.
func AllocUninitialized[T any](a *Arena) *T {
	var zero T
	size := int(unsafe.Sizeof(zero))
	if size == 0 {
		return new(T)
	}
	b := allocAligned(a, size, unsafe.Alignof(zero))
	return (*T)(unsafe.Pointer(&b[0]))
}

// AllocSlice allocates n uninitialised elements of type T.
// Returns nil if n <= 0. An overflowing size panics with ErrOverflow.
func AllocSlice[T any](a *Arena, n int) []T {
	if n <= 0 {
		return nil
	}
	var zero T
	elemSize := int(unsafe.Sizeof(zero))
	if elemSize == 0 {
		return make([]T, n)
	}
	total, ok := mulSize(elemSize, n)
	if !ok {
		a.fatal(ErrOverflow, "%d elements of %d bytes", n, elemSize)
	}
	b := allocAligned(a, total, unsafe.Alignof(zero))
	return unsafe.Slice((*T)(unsafe.Pointer(&b[0])), n)
}

// AllocSliceZeroed allocates n zeroed elements of type T.
func AllocSliceZeroed[T any](a *Arena, n int) []T {
	s := AllocSlice[T](a, n)
	clear(s)
	return s
}

// AllocArray is AllocSlice under the name the rest of the codebase uses for
// fixed-count element blocks.
func AllocArray[T any](a *Arena, n int) []T {
	return AllocSlice[T](a, n)
}

// allocAligned pads the cursor so the returned block starts at an address
// that is a multiple of align.
func allocAligned(a *Arena, size int, align uintptr) []byte {
	a.panicIfFreed()
	p := a.addr()
	if pad := int(alignPtr(p, align) - p); pad > 0 {
		a.Alloc(pad)
	}
	return a.Alloc(size)
}
