package tctx

import (
	"errors"

	"github.com/pavanmanishd/fexp/arena"
)

// DefaultScratchSize is the reservation ceiling of each scratch slot (32 KiB).
const DefaultScratchSize = 32 << 10

var (
	// ErrNotLeased is the panic value when a slot that is not currently
	// leased is reset or returned.
	ErrNotLeased = errors.New("tctx: scratch slot not leased")
	// ErrNoContext is the panic value when no ThreadContext is bound to a
	// context.Context.
	ErrNoContext = errors.New("tctx: no thread context bound")
)

// Scratch is a lease on one of the thread's scratch arenas.
type Scratch struct {
	Arena *arena.Arena
	Index uint32
}

type freeNode struct {
	next  *freeNode
	index uint32
}

// ThreadContext holds one goroutine's general-purpose arena and its scratch
// slot bookkeeping.
type ThreadContext struct {
	arena       *arena.Arena
	scratchSize int
	scratchOpts []arena.Option

	slots      []*arena.Arena
	leased     []bool
	numLeased  int
	maxCreated uint32
	freeList   *freeNode
	spare      *freeNode // popped nodes kept for the next Return
	freed      bool
}

// New creates a thread context and its general-purpose arena.
func New(opts ...Option) *ThreadContext {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &ThreadContext{
		arena:       arena.New(o.arenaOpts...),
		scratchSize: o.scratchSize,
		scratchOpts: append([]arena.Option{arena.WithMax(o.scratchSize)}, o.scratchArenaOpts...),
	}
}

// Arena returns the general-purpose arena for this thread's long-lived data.
func (c *ThreadContext) Arena() *arena.Arena { return c.arena }

// Get leases a scratch slot. A reclaimed slot is reused as is: its cursor was
// rewound on return, but its bytes are whatever the previous holder left.
// When no slot is free a new one is created with the next index.
func (c *ThreadContext) Get() Scratch {
	c.panicIfFreed()
	if n := c.freeList; n != nil {
		c.freeList = n.next
		n.next = c.spare
		c.spare = n
		c.lease(n.index)
		return Scratch{Arena: c.slots[n.index], Index: n.index}
	}

	idx := c.maxCreated
	a := arena.New(c.scratchOpts...)
	c.slots = append(c.slots, a)
	c.leased = append(c.leased, false)
	c.maxCreated++
	c.lease(idx)
	arena.Logger().Debug("tctx: scratch slot created", "index", idx, "size", c.scratchSize)
	return Scratch{Arena: a, Index: idx}
}

// Reset rewinds a leased slot to zero without giving it back.
func (c *ThreadContext) Reset(s *Scratch) {
	c.checkLeased(s)
	s.Arena.Clear()
}

// Return rewinds a leased slot and puts it back on the free list. s is
// cleared so that it cannot be used again by accident.
func (c *ThreadContext) Return(s *Scratch) {
	c.checkLeased(s)
	idx := s.Index
	c.slots[idx].Clear()
	c.leased[idx] = false
	c.numLeased--

	n := c.spare
	if n != nil {
		c.spare = n.next
	} else {
		n = new(freeNode)
	}
	n.index = idx
	n.next = c.freeList
	c.freeList = n
	*s = Scratch{}
}

// Free releases the general arena and every scratch slot.
func (c *ThreadContext) Free() {
	if c.freed {
		return
	}
	for _, a := range c.slots {
		a.Free()
	}
	c.arena.Free()
	c.slots, c.leased = nil, nil
	c.freeList, c.spare = nil, nil
	c.numLeased = 0
	c.freed = true
}

// Created returns how many scratch slots exist.
func (c *ThreadContext) Created() int { return int(c.maxCreated) }

// Leased returns how many scratch slots are currently handed out.
func (c *ThreadContext) Leased() int { return c.numLeased }

// ScratchSize returns the reservation ceiling of each slot.
func (c *ThreadContext) ScratchSize() int { return c.scratchSize }

// Stats is a snapshot of a thread context.
type Stats struct {
	Created     int
	Leased      int
	ScratchSize int
	Arena       arena.ArenaMetrics
	Scratch     []arena.ArenaMetrics
}

// Stats returns a snapshot of the context's arenas.
func (c *ThreadContext) Stats() Stats {
	st := Stats{
		Created:     c.Created(),
		Leased:      c.numLeased,
		ScratchSize: c.scratchSize,
		Arena:       c.arena.Metrics(),
	}
	for _, a := range c.slots {
		st.Scratch = append(st.Scratch, a.Metrics())
	}
	return st
}

func (c *ThreadContext) lease(idx uint32) {
	c.leased[idx] = true
	c.numLeased++
}

func (c *ThreadContext) checkLeased(s *Scratch) {
	c.panicIfFreed()
	if s == nil || s.Arena == nil || int(s.Index) >= len(c.slots) ||
		!c.leased[s.Index] || c.slots[s.Index] != s.Arena {
		panic(ErrNotLeased)
	}
}

func (c *ThreadContext) panicIfFreed() {
	if c.freed {
		panic(arena.ErrFreed)
	}
}
