package str

import (
	"github.com/pavanmanishd/fexp/arena"
	"github.com/pavanmanishd/fexp/container"
)

// Array is a growable array of strings. Remove swaps the last element into
// the removed slot.
type Array = container.Array[String]

// MakeStatic builds an array whose element storage and bytes live in a.
// The first Add or Set moves the element storage to the Go heap; the strings
// already copied stay in a.
func MakeStatic(a *arena.Arena, strs ...String) Array {
	if len(strs) == 0 {
		return Array{}
	}
	elems := arena.AllocSlice[String](a, len(strs))
	for i, s := range strs {
		elems[i] = Copy(a, s)
	}
	return container.Wrap(elems)
}

// IndexOf returns the index of the first element equal to s, or -1.
func IndexOf(arr *Array, s String) int {
	for i, v := range arr.Slice() {
		if Eq(v, s) {
			return i
		}
	}
	return -1
}
