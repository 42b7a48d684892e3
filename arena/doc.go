// Package arena implements a reserve-and-commit linear allocator.
//
// # Overview
//
// An Arena reserves one contiguous range of address space up front (1 GiB by
// default) and backs it with physical pages only as the allocation cursor
// reaches them, in fixed commit chunks (8 KiB by default). Allocation moves
// the cursor forward; deallocation only moves it back. There is no
// per-allocation metadata and no individual free.
//
// # Basic Usage
//
//	a := arena.New()        // reserve 1 GiB, commit lazily
//	defer a.Free()          // release the whole range
//
//	buf := a.Alloc(1024)    // uninitialised bytes
//	ptr := arena.Alloc[Vertex](a)
//	vs := arena.AllocSlice[Vertex](a, 100)
//
//	t := a.BeginTemp()      // scope transient allocations
//	_ = a.Alloc(4096)
//	t.End()                 // cursor back where it was
//
//	a.Clear()               // cursor back to zero, pages stay committed
//
// # Failure Model
//
// Running past the reservation ceiling, failing to reserve or commit, and
// overflowing an element-count multiplication are fatal: the arena logs the
// condition and panics with an error wrapping ErrExhausted, ErrReserve,
// ErrCommit or ErrOverflow. Size arenas for the worst case of the workload
// they serve (one frame, one directory scan).
//
// Rewinding forward with DeallocTo or growing anything but the latest
// allocation with Raise panics as well.
//
// # Lifetimes
//
// Every slice returned by an arena is a view that stays valid until the
// cursor is rewound below it or the arena is freed. Arena memory is not
// scanned by the garbage collector: never store pointers to Go heap objects
// in it.
//
// # Thread Safety
//
// Arena is not goroutine-safe and never locks. Give each goroutine its own
// arena (see package tctx), or wrap a shared one in SafeArena.
package arena
