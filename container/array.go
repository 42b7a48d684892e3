// Package container holds small generic containers used across fexp.
package container

import "iter"

// Array is a growable array with capacity doubling. Removal swaps the last
// element into the hole, so element order is not preserved across Remove.
//
// The zero value is an empty array ready to use.
type Array[T any] struct {
	elems    []T
	borrowed bool
}

// Wrap returns a read-only view of s, which may live in arena memory. The
// first Add, Set or Remove copies the elements to the Go heap, so values written
// later are always visible to the garbage collector.
func Wrap[T any](s []T) Array[T] {
	return Array[T]{elems: s, borrowed: true}
}

// Add appends v, doubling the capacity when full.
func (a *Array[T]) Add(v T) {
	if a.borrowed || len(a.elems) == cap(a.elems) {
		a.grow(max(4, 2*cap(a.elems)))
	}
	a.elems = append(a.elems, v)
}

// grow moves the elements to a heap slice with room for n.
func (a *Array[T]) grow(n int) {
	grown := make([]T, len(a.elems), max(n, len(a.elems)))
	copy(grown, a.elems)
	a.elems = grown
	a.borrowed = false
}

// Borrowed reports whether the elements still live in the wrapped slice.
func (a *Array[T]) Borrowed() bool { return a.borrowed }

// Remove deletes the element at i and returns it. The last element takes its
// place. Panics if i is out of range.
func (a *Array[T]) Remove(i int) T {
	v := a.elems[i]
	if a.borrowed {
		a.grow(cap(a.elems))
	}
	last := len(a.elems) - 1
	a.elems[i] = a.elems[last]
	var zero T
	a.elems[last] = zero
	a.elems = a.elems[:last]
	return v
}

// Free drops the backing storage.
func (a *Array[T]) Free() {
	a.elems = nil
	a.borrowed = false
}

// Len returns the number of elements.
func (a *Array[T]) Len() int { return len(a.elems) }

// Cap returns the capacity.
func (a *Array[T]) Cap() int { return cap(a.elems) }

// At returns the element at i.
func (a *Array[T]) At(i int) T { return a.elems[i] }

// Set replaces the element at i. Panics if i is out of range.
func (a *Array[T]) Set(i int, v T) {
	_ = a.elems[i]
	if a.borrowed {
		a.grow(cap(a.elems))
	}
	a.elems[i] = v
}

// Slice returns the elements. The slice aliases the array until the next Add
// and must not be written to while Borrowed reports true.
func (a *Array[T]) Slice() []T { return a.elems }

// All iterates over index/element pairs.
func (a *Array[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, v := range a.elems {
			if !yield(i, v) {
				return
			}
		}
	}
}
