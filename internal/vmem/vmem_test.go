package vmem

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReserveCommitRelease(t *testing.T) {
	mem, err := Reserve(3*PageSize() + 10)
	require.NoError(t, err)
	require.Len(t, mem, 3*PageSize()+10)
	require.Equal(t, 4*PageSize(), cap(mem))

	require.NoError(t, Commit(mem, 0, PageSize()+1))
	for i := 0; i < 2*PageSize(); i++ {
		mem[i] = byte(i)
	}
	require.Equal(t, byte(7), mem[7])

	require.NoError(t, Decommit(mem, PageSize(), len(mem)-PageSize()))
	require.Equal(t, byte(7), mem[7], "first page must stay committed")

	require.NoError(t, Commit(mem, PageSize(), 1))
	mem[PageSize()] = 42
	require.NoError(t, Release(mem))
}

func TestReserveEmpty(t *testing.T) {
	_, err := Reserve(0)
	require.ErrorIs(t, err, ErrEmpty)
}

func TestCommitUnaligned(t *testing.T) {
	mem, err := Reserve(64)
	require.NoError(t, err)
	defer Release(mem)

	require.NoError(t, Commit(mem, 8, 8))
	require.NoError(t, Commit(mem, 16, 48))
	mem[63] = 1
	require.NoError(t, Commit(mem, 0, 0))
}

func TestRoundUp(t *testing.T) {
	tests := []struct{ n, align, want int }{
		{0, 8, 0},
		{1, 8, 8},
		{8, 8, 8},
		{9, 4096, 4096},
	}
	for _, tt := range tests {
		if got := roundUp(tt.n, tt.align); got != tt.want {
			t.Errorf("roundUp(%d, %d) = %d, want %d", tt.n, tt.align, got, tt.want)
		}
	}
}
