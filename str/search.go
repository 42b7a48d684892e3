package str

import (
	"bytes"

	"github.com/pavanmanishd/fexp/arena"
)

// FindFirst returns the offset of the first occurrence of needle in s that
// starts at or after offset. When there is none it returns len(s).
func FindFirst(s, needle String, offset int) int {
	if offset < 0 {
		offset = 0
	}
	if offset > len(s) {
		return len(s)
	}
	i := bytes.Index(s[offset:], needle)
	if i < 0 {
		return len(s)
	}
	return offset + i
}

// FindLast returns the offset of the last occurrence of needle in s that
// starts at or after offset. When there is none it returns len(s).
func FindLast(s, needle String, offset int) int {
	if offset < 0 {
		offset = 0
	}
	if offset > len(s) {
		return len(s)
	}
	i := bytes.LastIndex(s[offset:], needle)
	if i < 0 {
		return len(s)
	}
	return offset + i
}

// SubstrCount counts non-overlapping occurrences of needle. An empty needle
// occurs zero times.
func SubstrCount(s, needle String) int {
	if len(needle) == 0 {
		return 0
	}
	return bytes.Count(s, needle)
}

// ReplaceAll allocates a copy of s with every non-overlapping occurrence of
// needle replaced by replacement.
func ReplaceAll(a *arena.Arena, s, needle, replacement String) String {
	n := SubstrCount(s, needle)
	if n == 0 {
		return Copy(a, s)
	}
	dst := Alloc(a, len(s)+n*(len(replacement)-len(needle)))
	w := 0
	for {
		i := bytes.Index(s, needle)
		if i < 0 {
			break
		}
		w += copy(dst[w:], s[:i])
		w += copy(dst[w:], replacement)
		s = s[i+len(needle):]
	}
	copy(dst[w:], s)
	return dst
}

// HasPrefix reports whether s begins with prefix.
func HasPrefix(s, prefix String) bool {
	return bytes.HasPrefix(s, prefix)
}

// HasSuffix reports whether s ends with suffix.
func HasSuffix(s, suffix String) bool {
	return bytes.HasSuffix(s, suffix)
}
