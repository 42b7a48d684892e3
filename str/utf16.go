package str

import (
	"unicode/utf16"
	"unicode/utf8"
	"unsafe"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/pavanmanishd/fexp/arena"
)

// String16 is a sequence of UTF-16 code units, as passed to wide-char OS APIs.
type String16 []uint16

var nativeUTF16 = unicode.UTF16(nativeEndianness(), unicode.IgnoreBOM)

// To16 transcodes s to UTF-16 in a. The result is followed by a zero code
// unit that is not part of its length. Invalid UTF-8 becomes U+FFFD.
func To16(a *arena.Arena, s String) String16 {
	if len(s) == 0 {
		return nil
	}
	n := 0
	for rest := []byte(s); len(rest) > 0; {
		r, size := utf8.DecodeRune(rest)
		rest = rest[size:]
		n += utf16.RuneLen(r)
	}
	units := arena.AllocSlice[uint16](a, n+1)
	dst := unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(units))), 2*n)
	nDst, _, err := nativeUTF16.NewEncoder().Transform(dst, s, true)
	if err != nil || nDst != len(dst) {
		arena.Logger().Warn("str: utf-16 encode fell back", "err", err, "want", len(dst), "got", nDst)
		out, _, _ := transform.Bytes(nativeUTF16.NewEncoder(), s)
		nDst = copy(dst, out)
	}
	units[n] = 0
	return String16(units[:nDst/2 : nDst/2])
}

// From16 transcodes UTF-16 into a UTF-8 String in a. Unpaired surrogates
// become U+FFFD.
func From16(a *arena.Arena, s String16) String {
	if len(s) == 0 {
		return nil
	}
	n := 0
	for _, r := range utf16.Decode(s) {
		n += utf8.RuneLen(r)
	}
	src := unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(s))), 2*len(s))
	dst := Alloc(a, n)
	nDst, _, err := nativeUTF16.NewDecoder().Transform(dst, src, true)
	if err != nil || nDst != n {
		arena.Logger().Warn("str: utf-16 decode fell back", "err", err, "want", n, "got", nDst)
		out, _, _ := transform.Bytes(nativeUTF16.NewDecoder(), src)
		nDst = copy(dst, out)
	}
	return dst[:nDst:nDst]
}

// Cstring16 views a zero-terminated UTF-16 buffer owned by the OS.
func Cstring16(p *uint16) String16 {
	if p == nil {
		return nil
	}
	n := 0
	for q := unsafe.Pointer(p); *(*uint16)(q) != 0; q = unsafe.Add(q, 2) {
		n++
	}
	return String16(unsafe.Slice(p, n))
}

func nativeEndianness() unicode.Endianness {
	x := uint16(1)
	if *(*byte)(unsafe.Pointer(&x)) == 1 {
		return unicode.LittleEndian
	}
	return unicode.BigEndian
}
