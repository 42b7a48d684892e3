package arena

import (
	"sync"
)

// SafeArena is a mutex-protected wrapper around Arena for data that has to be
// shared between goroutines, such as a long-lived registry arena. The core
// Arena and the scratch pool never lock; SafeArena is the layer above them.
type SafeArena struct {
	mu sync.Mutex
	a  *Arena
}

// NewSafeArena creates a new thread-safe arena.
func NewSafeArena(opts ...Option) *SafeArena {
	return &SafeArena{a: New(opts...)}
}

// Alloc thread-safely allocates size bytes.
func (s *SafeArena) Alloc(size int) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Alloc(size)
}

// AllocZero thread-safely allocates size zeroed bytes.
func (s *SafeArena) AllocZero(size int) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.AllocZero(size)
}

// Do runs fn with exclusive access to the underlying arena, for callers that
// need several allocations to happen atomically (building a string list).
func (s *SafeArena) Do(fn func(a *Arena)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.a)
}

// Clear thread-safely rewinds the arena to its start.
func (s *SafeArena) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.a.Clear()
}

// Free thread-safely releases the arena.
func (s *SafeArena) Free() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.a.Free()
}

// SafeAlloc thread-safely returns a pointer to a zeroed T stored inside the arena.
func SafeAlloc[T any](s *SafeArena) *T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Alloc[T](s.a)
}

// SafeAllocSlice thread-safely allocates a slice of n elements of type T.
func SafeAllocSlice[T any](s *SafeArena, n int) []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return AllocSlice[T](s.a, n)
}

// SafeAllocSliceZeroed thread-safely allocates a slice of n zeroed elements.
func SafeAllocSliceZeroed[T any](s *SafeArena, n int) []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return AllocSliceZeroed[T](s.a, n)
}
