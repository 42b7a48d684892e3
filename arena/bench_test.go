package arena

import (
	"runtime"
	"testing"
)

// BenchmarkRealisticUsage compares frame-style arena usage with the Go heap.
func BenchmarkRealisticUsage(b *testing.B) {

	b.Run("ManySmallAllocs/Arena", func(b *testing.B) {
		a := NewSized(64 << 20)
		defer a.Free()
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			for j := 0; j < 100; j++ {
				a.Alloc(64)
			}
			a.Clear()
		}
	})

	b.Run("ManySmallAllocs/Builtin", func(b *testing.B) {
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			objects := make([][]byte, 100)
			for j := 0; j < 100; j++ {
				objects[j] = make([]byte, 64)
			}
			if i%10 == 0 {
				runtime.GC()
			}
		}
	})

	b.Run("TempScopes/Arena", func(b *testing.B) {
		a := NewSized(64 << 20)
		defer a.Free()
		a.Alloc(4096)
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			t := a.BeginTemp()
			for j := 0; j < 16; j++ {
				AllocSlice[float32](a, 64)
			}
			t.End()
		}
	})

	b.Run("Commit/Arena", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			a := New(WithMax(1<<20), WithCommitSize(8<<10))
			a.Alloc(512 << 10)
			a.Free()
		}
	})
}

func BenchmarkArenaVsBuiltin(b *testing.B) {
	b.Run("arena", func(b *testing.B) {
		a := NewSized(64 << 20)
		defer a.Free()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			a.Alloc(64)
			if i%1000 == 999 {
				a.Clear()
			}
		}
	})

	b.Run("builtin", func(b *testing.B) {
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_ = make([]byte, 64)
		}
	})
}
