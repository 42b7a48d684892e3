package str

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pavanmanishd/fexp/arena"
)

func newArena(t *testing.T) *arena.Arena {
	t.Helper()
	a := arena.NewSized(1 << 20)
	t.Cleanup(a.Free)
	return a
}

func TestCat(t *testing.T) {
	a := newArena(t)
	got := Cat(a, Lit("foo"), Lit("bar"))
	require.Equal(t, "foobar", got.String())
	require.Equal(t, 6, got.Size())
	assert.True(t, a.Owns(got))
}

func TestAllocTerminator(t *testing.T) {
	a := newArena(t)
	s := Alloc(a, 4)
	require.Len(t, s, 4)
	require.Equal(t, 4, cap(s))
	assert.Equal(t, 5, a.Pos(), "one extra byte for the terminator")
	assert.Equal(t, byte(0), *(*byte)(unsafe.Add(unsafe.Pointer(unsafe.SliceData(s)), 4)))

	assert.Nil(t, Alloc(a, 0))
}

func TestAllocTerminatorSkippedWhenFull(t *testing.T) {
	a := arena.New(arena.WithMax(8), arena.WithCommitSize(8))
	defer a.Free()
	s := Alloc(a, 8)
	require.Len(t, s, 8)
	assert.Equal(t, 8, a.Pos())
}

func TestCopyIsDistinct(t *testing.T) {
	a := newArena(t)
	src := Lit("hello")
	dst := Copy(a, src)
	require.True(t, Eq(src, dst))
	assert.NotSame(t, unsafe.SliceData(src), unsafe.SliceData(dst))
}

func TestFormat(t *testing.T) {
	a := newArena(t)
	s := Format(a, "%s has %d entries", "dir", 42)
	require.Equal(t, "dir has 42 entries", s.String())
	assert.True(t, a.Owns(s))
	assert.Equal(t, 0, Format(a, "").Size())
}

func TestEq(t *testing.T) {
	assert.True(t, Eq(Lit("abc"), Lit("abc")))
	assert.True(t, Eq(nil, Lit("")))
	assert.False(t, Eq(Lit("abc"), Lit("abd")))
	assert.False(t, Eq(Lit("abc"), Lit("ab")))
}

func TestHash(t *testing.T) {
	a := newArena(t)
	h := Hash(Lit("some/path"))
	assert.Equal(t, h, Hash(Copy(a, Lit("some/path"))))
	assert.NotEqual(t, h, Hash(Lit("some/patH")))
}
