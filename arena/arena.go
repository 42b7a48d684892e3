package arena

import (
	"unsafe"

	"github.com/pavanmanishd/fexp/internal/vmem"
)

// Arena is a linear allocator over one reserved address range. Memory is
// committed lazily in CommitSize chunks as the cursor advances; deallocation
// only ever rewinds the cursor. Not goroutine-safe; use SafeArena to share one.
//
//	0 <= Pos() <= Committed() <= Max()
type Arena struct {
	mem        []byte
	max        int
	pos        int
	commitPos  int
	commitSize int
	generation uint64
	static     bool
	freed      bool
}

// New reserves an address range and returns an empty arena.
// Reservation failure panics with ErrReserve.
func New(opts ...Option) *Arena {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	a := &Arena{max: o.max, commitSize: o.commitSize}
	if o.fixed {
		a.mem = o.buf
		a.max = len(o.buf)
		a.commitPos = len(o.buf)
		a.static = true
		return a
	}
	mem, err := vmem.Reserve(o.max)
	if err != nil {
		a.fatal(ErrReserve, "%v", err)
	}
	a.mem = mem
	return a
}

// NewSized is New(WithMax(max)).
func NewSized(max int) *Arena {
	return New(WithMax(max))
}

// NewFixed returns an arena that allocates from buf.
func NewFixed(buf []byte) *Arena {
	return New(WithBuffer(buf))
}

// Alloc returns size uninitialised bytes at the current cursor and advances
// it. Going past Max panics with ErrExhausted. Returns nil if size <= 0.
//
// The returned slice is valid until the arena is rewound past it or freed.
func (a *Arena) Alloc(size int) []byte {
	if size <= 0 {
		return nil
	}
	a.panicIfFreed()
	end := a.pos + size
	if end > a.max || end < a.pos {
		a.fatal(ErrExhausted, "alloc %d bytes at %d", size, a.pos)
	}
	if end > a.commitPos {
		a.commitTo(end)
	}
	b := a.mem[a.pos:end:end]
	a.pos = end
	return b
}

// AllocZero is Alloc with the returned bytes zeroed.
func (a *Arena) AllocZero(size int) []byte {
	b := a.Alloc(size)
	clear(b)
	return b
}

// AllocArraySized allocates count elements of elemSize bytes each.
// An overflowing product panics with ErrOverflow.
func (a *Arena) AllocArraySized(elemSize, count int) []byte {
	total, ok := mulSize(elemSize, count)
	if !ok {
		a.fatal(ErrOverflow, "%d elements of %d bytes", count, elemSize)
	}
	return a.Alloc(total)
}

// Dealloc rewinds the cursor by size bytes, stopping at zero.
// Committed memory stays committed.
func (a *Arena) Dealloc(size int) {
	a.panicIfFreed()
	if size <= 0 {
		return
	}
	a.pos = max(a.pos-size, 0)
	a.generation++
}

// DeallocTo rewinds the cursor to pos. Moving the cursor forward, or to a
// negative position, panics with ErrInvalidRewind.
func (a *Arena) DeallocTo(pos int) {
	a.panicIfFreed()
	if pos < 0 || pos > a.pos {
		a.fatal(ErrInvalidRewind, "rewind to %d from %d", pos, a.pos)
	}
	a.pos = pos
	a.generation++
}

// Raise grows b, which must be the most recent allocation, by n bytes in
// place and returns the extended slice. A nil b is equivalent to Alloc(n).
// Any other b panics with ErrNotLast.
func (a *Arena) Raise(b []byte, n int) []byte {
	if len(b) == 0 {
		return a.Alloc(n)
	}
	a.panicIfFreed()
	off, ok := a.offsetOf(b)
	if !ok || off+len(b) != a.pos {
		a.fatal(ErrNotLast, "raise %d bytes", n)
	}
	a.Alloc(n)
	end := a.pos
	return a.mem[off:end:end]
}

// Clear rewinds the cursor to the start of the arena.
func (a *Arena) Clear() {
	a.DeallocTo(0)
}

// EnsureCapacity commits enough memory for the next n bytes to be allocated
// without further commits.
func (a *Arena) EnsureCapacity(n int) {
	a.panicIfFreed()
	end := a.pos + n
	if end > a.max || end < a.pos {
		a.fatal(ErrExhausted, "ensure %d bytes at %d", n, a.pos)
	}
	if end > a.commitPos {
		a.commitTo(end)
	}
}

// Decommit returns committed chunks above the cursor to the OS.
// No-op for fixed-buffer arenas.
func (a *Arena) Decommit() {
	a.panicIfFreed()
	if a.static {
		return
	}
	keep := min(roundUp(a.pos, a.commitSize), a.max)
	if keep >= a.commitPos {
		return
	}
	if err := vmem.Decommit(a.mem, keep, a.commitPos-keep); err != nil {
		Logger().Warn("arena: decommit failed", "err", err)
		return
	}
	a.commitPos = keep
}

// Free releases the reserved range. The arena cannot be used afterwards;
// any slice obtained from it is dangling. Free on a fixed-buffer arena only
// detaches the buffer. Calling Free twice is a no-op.
func (a *Arena) Free() {
	if a.freed {
		return
	}
	if !a.static {
		if err := vmem.Release(a.mem); err != nil {
			Logger().Warn("arena: release failed", "err", err)
		}
	}
	a.mem = nil
	a.pos, a.commitPos = 0, 0
	a.freed = true
	a.generation++
}

// Pos returns the allocation cursor.
func (a *Arena) Pos() int { return a.pos }

// Committed returns how many bytes of the reservation are backed by memory.
func (a *Arena) Committed() int { return a.commitPos }

// Max returns the reservation ceiling.
func (a *Arena) Max() int { return a.max }

// Remaining returns how many bytes can still be allocated.
func (a *Arena) Remaining() int { return a.max - a.pos }

// CommitSize returns the commit granularity.
func (a *Arena) CommitSize() int { return a.commitSize }

// IsFixed reports whether the arena allocates from an external buffer.
func (a *Arena) IsFixed() bool { return a.static }

// Generation changes every time the cursor is rewound. Slices allocated
// before a change in generation may have been overwritten.
func (a *Arena) Generation() uint64 { return a.generation }

// Owns reports whether b points into the arena's range.
func (a *Arena) Owns(b []byte) bool {
	_, ok := a.offsetOf(b)
	return ok
}

func (a *Arena) commitTo(end int) {
	target := min(roundUp(end, a.commitSize), a.max)
	if err := vmem.Commit(a.mem, a.commitPos, target-a.commitPos); err != nil {
		a.fatal(ErrCommit, "%v", err)
	}
	Logger().Debug("arena: commit", "from", a.commitPos, "to", target)
	a.commitPos = target
}

func (a *Arena) offsetOf(b []byte) (int, bool) {
	if len(b) == 0 || len(a.mem) == 0 {
		return 0, false
	}
	base := uintptr(unsafe.Pointer(unsafe.SliceData(a.mem)))
	p := uintptr(unsafe.Pointer(unsafe.SliceData(b)))
	if p < base || p >= base+uintptr(a.max) {
		return 0, false
	}
	return int(p - base), true
}

func (a *Arena) panicIfFreed() {
	if a.freed {
		panic(ErrFreed)
	}
}

// addr returns the address of the cursor.
func (a *Arena) addr() uintptr {
	return uintptr(unsafe.Pointer(unsafe.SliceData(a.mem))) + uintptr(a.pos)
}

func roundUp(n, align int) int {
	return (n + align - 1) / align * align
}

// alignPtr aligns p up to a multiple of align, which must be a power of two.
func alignPtr(p, align uintptr) uintptr {
	mask := align - 1
	return (p + mask) & ^mask
}

func mulSize(elemSize, count int) (int, bool) {
	if elemSize < 0 || count < 0 {
		return 0, false
	}
	if elemSize == 0 || count == 0 {
		return 0, true
	}
	total := elemSize * count
	if total/count != elemSize {
		return 0, false
	}
	return total, true
}
