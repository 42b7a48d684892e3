package psys

import (
	"testing"

	"github.com/pavanmanishd/fexp/arena"
)

func newHostArena(t *testing.T) *arena.Arena {
	t.Helper()
	a := arena.NewSized(1 << 20)
	t.Cleanup(a.Free)
	return a
}
