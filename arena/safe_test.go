package arena

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSafeArenaAlloc(t *testing.T) {
	s := NewSafeArena(WithMax(1 << 16))
	defer s.Free()

	require.Len(t, s.Alloc(100), 100)
	require.Nil(t, s.Alloc(0))
	z := s.AllocZero(8)
	require.Equal(t, make([]byte, 8), z)
	require.Equal(t, 108, s.Metrics().SizeInUse)

	s.Clear()
	require.Equal(t, 0, s.Metrics().SizeInUse)
}

func TestSafeArenaConcurrent(t *testing.T) {
	s := NewSafeArena(WithMax(1 << 20))
	defer s.Free()

	const workers, perWorker = 8, 100
	var wg sync.WaitGroup
	results := make([][][]byte, workers)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				b := s.Alloc(16)
				for j := range b {
					b[j] = byte(w)
				}
				results[w] = append(results[w], b)
			}
		}(w)
	}
	wg.Wait()

	require.Equal(t, workers*perWorker*16, s.Metrics().SizeInUse)
	for w, bufs := range results {
		for _, b := range bufs {
			for _, v := range b {
				if v != byte(w) {
					t.Fatalf("worker %d buffer overwritten with %d", w, v)
				}
			}
		}
	}
}

func TestSafeArenaDo(t *testing.T) {
	s := NewSafeArena(WithMax(1 << 16))
	defer s.Free()

	var pos int
	s.Do(func(a *Arena) {
		a.Alloc(10)
		pos = a.Pos()
	})
	require.Equal(t, 10, pos)
}

func TestSafeAllocFunctions(t *testing.T) {
	s := NewSafeArena(WithMax(1 << 16))
	defer s.Free()

	p := SafeAlloc[int64](s)
	require.Zero(t, *p)
	require.Len(t, SafeAllocSlice[int32](s, 4), 4)
	require.Equal(t, []int16{0, 0, 0}, SafeAllocSliceZeroed[int16](s, 3))
}

func TestSafeArenaFree(t *testing.T) {
	s := NewSafeArena(WithMax(1 << 16))
	s.Free()
	require.ErrorIs(t, panicErr(t, func() { s.Alloc(1) }), ErrFreed)
}
