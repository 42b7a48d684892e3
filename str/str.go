// Package str provides byte-string views and the containers built on them.
//
// A String is a view: it owns nothing, and its lifetime is the lifetime of
// whatever memory it points at. Functions that produce new strings take the
// arena the result is allocated from; nothing here allocates on the Go heap
// behind the caller's back.
package str

import (
	"bytes"
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/pavanmanishd/fexp/arena"
)

// String is a (pointer, length) view over bytes living in some arena or in
// static data. There is no terminator guarantee.
type String []byte

// Lit views a Go string without copying it. The result must not be written.
func Lit(s string) String {
	if s == "" {
		return nil
	}
	return String(unsafeBytes(s))
}

// Size returns the length in bytes.
func (s String) Size() int { return len(s) }

// String copies the view into a Go string.
func (s String) String() string { return string(s) }

// Alloc allocates a String of size uninitialised bytes. When the arena has
// room, one more byte is reserved behind the view and set to zero for OS
// calls that want a terminator.
func Alloc(a *arena.Arena, size int) String {
	if size <= 0 {
		return nil
	}
	n := size
	if a.Remaining() > size {
		n++
	}
	b := a.Alloc(n)
	if n > size {
		b[size] = 0
	}
	return String(b[:size:size])
}

// Copy deep-copies s into a.
func Copy(a *arena.Arena, s String) String {
	dst := Alloc(a, len(s))
	copy(dst, s)
	return dst
}

// Cat allocates x followed by y.
func Cat(a *arena.Arena, x, y String) String {
	dst := Alloc(a, len(x)+len(y))
	copy(dst, x)
	copy(dst[len(x):], y)
	return dst
}

// Format renders fmt-style output into a string sized exactly to the result.
func Format(a *arena.Arena, format string, args ...any) String {
	var n countWriter
	fmt.Fprintf(&n, format, args...)
	dst := Alloc(a, int(n))
	out := fmt.Appendf(dst[:0], format, args...)
	if len(out) != len(dst) || (len(out) > 0 && &out[0] != &dst[0]) {
		// A value formatted differently the second time round.
		return Copy(a, out)
	}
	return dst
}

// Eq reports whether x and y hold the same bytes.
func Eq(x, y String) bool {
	return len(x) == len(y) && bytes.Equal(x, y)
}

// Hash returns a 32-bit xxhash of the content.
func Hash(s String) uint32 {
	h := xxhash.Sum64(s)
	return uint32(h ^ h>>32)
}

type countWriter int

func (c *countWriter) Write(p []byte) (int, error) {
	*c += countWriter(len(p))
	return len(p), nil
}
