package str

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUTF16RoundTrip(t *testing.T) {
	a := newArena(t)
	for _, s := range []string{"plain", "Grüße", "日本語", "emoji 😀 here", "a"} {
		wide := To16(a, Lit(s))
		back := From16(a, wide)
		require.Equal(t, s, back.String())
	}
}

func TestTo16Units(t *testing.T) {
	a := newArena(t)
	wide := To16(a, Lit("a😀"))
	require.Len(t, wide, 3, "one unit for 'a', a surrogate pair for the emoji")
	assert.Equal(t, uint16('a'), wide[0])
	assert.Equal(t, uint16(0xD83D), wide[1])
	assert.Equal(t, uint16(0xDE00), wide[2])

	assert.Equal(t, wide, Cstring16(&wide[0]), "To16 leaves a terminator behind the view")
	assert.Nil(t, To16(a, nil))
	assert.Nil(t, From16(a, nil))
	assert.Nil(t, Cstring16(nil))
}

func TestFrom16UnpairedSurrogate(t *testing.T) {
	a := newArena(t)
	got := From16(a, String16{'x', 0xD800, 'y'})
	assert.Equal(t, "x\uFFFDy", got.String())
}
