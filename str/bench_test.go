package str

import (
	"testing"

	"github.com/pavanmanishd/fexp/arena"
)

// BenchmarkFrameStrings builds the strings one explorer frame needs, the way
// a frame does: in a scratch arena that is rewound afterwards.
func BenchmarkFrameStrings(b *testing.B) {
	names := []String{Lit("main.go"), Lit("README.md"), Lit("internal"), Lit("go.mod"), Lit("photo.png")}
	dir := Lit("/home/user/projects/fexp")

	b.Run("Arena", func(b *testing.B) {
		a := arena.NewSized(1 << 20)
		defer a.Free()
		b.ReportAllocs()
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			tmp := a.BeginTemp()
			pattern := Cat(a, dir, Lit("/*"))
			var l List
			for _, n := range names {
				if FindFirst(n, Lit("o"), 0) != len(n) {
					l.Push(a, Cat(a, Cat(a, dir, Lit("/")), n))
				}
			}
			_ = l.Join(a, Lit("\n"))
			_ = pattern
			tmp.End()
		}
	})

	b.Run("Builtin", func(b *testing.B) {
		b.ReportAllocs()
		s := dir.String()
		for i := 0; i < b.N; i++ {
			pattern := s + "/*"
			var out []string
			for _, n := range names {
				if FindFirst(n, Lit("o"), 0) != len(n) {
					out = append(out, s+"/"+n.String())
				}
			}
			joined := ""
			for j, o := range out {
				if j > 0 {
					joined += "\n"
				}
				joined += o
			}
			_, _ = pattern, joined
		}
	})
}

func BenchmarkFormat(b *testing.B) {
	a := arena.NewSized(1 << 20)
	defer a.Free()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		tmp := a.BeginTemp()
		Format(a, "%s: %d entries, %d folders", "dir", i, i/3)
		tmp.End()
	}
}

func BenchmarkReplaceAll(b *testing.B) {
	a := arena.NewSized(1 << 20)
	defer a.Free()
	path := Lit(`C:\Users\someone\Documents\projects\fexp\main.go`)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		tmp := a.BeginTemp()
		ReplaceAll(a, path, Lit(`\`), Lit("/"))
		tmp.End()
	}
}

func BenchmarkUTF16(b *testing.B) {
	a := arena.NewSized(1 << 20)
	defer a.Free()
	s := Lit("Documents/写真/😀 holiday.png")
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		tmp := a.BeginTemp()
		From16(a, To16(a, s))
		tmp.End()
	}
}
