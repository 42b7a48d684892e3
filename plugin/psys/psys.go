// Package psys is a particle-system plugin. A .psys file holds an emitter
// description in a fixed little-endian layout; the plugin simulates it and
// writes the (possibly edited) emitter back when closed.
package psys

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/pavanmanishd/fexp/arena"
	"github.com/pavanmanishd/fexp/input"
	"github.com/pavanmanishd/fexp/osfs"
	"github.com/pavanmanishd/fexp/str"
)

// PoolSize is the number of particle slots.
const PoolSize = 128

// Vec2 is a 2D vector.
type Vec2 struct{ X, Y float32 }

// Vec4 is a 4D vector, used for RGBA colours.
type Vec4 struct{ X, Y, Z, W float32 }

// Particle is both a live particle and, in a File, an emission template.
type Particle struct {
	Pos      Vec2
	Vel      Vec2
	Acc      Vec2
	Color    Vec4
	ColorVel Vec4
	Lifetime float32
}

// File is the on-disk emitter: a blueprint, the per-field random spread
// around it, and the emission interval in seconds.
type File struct {
	Blueprint Particle
	Variance  Particle
	Speed     float32
}

// FileSize is the encoded size of a File.
var FileSize = binary.Size(File{})

// DefaultFile is used when the file is missing or has the wrong size.
var DefaultFile = File{
	Blueprint: Particle{
		Vel:      Vec2{0, -50},
		Acc:      Vec2{0, 50},
		Color:    Vec4{1, 0, 0, 1},
		Lifetime: 4,
	},
	Variance: Particle{
		Vel:      Vec2{10, 2},
		Acc:      Vec2{0, 2},
		Color:    Vec4{0.1, 0, 0.02, 0},
		Lifetime: 0.1,
	},
	Speed: 0.1,
}

// Decode parses an encoded File.
func Decode(b []byte) (File, error) {
	var f File
	if len(b) != FileSize {
		return f, fmt.Errorf("psys: file is %d bytes, want %d", len(b), FileSize)
	}
	err := binary.Read(bytes.NewReader(b), binary.LittleEndian, &f)
	return f, err
}

// Encode appends the encoding of f to dst.
func (f *File) Encode(dst []byte) ([]byte, error) {
	return binary.Append(dst, binary.LittleEndian, f)
}

// System implements plugin.Plugin, Initer, Updater, Renderer, KeyHandler
// and Freer.
type System struct {
	rng *rand.Rand

	a     *arena.Arena
	path  str.String
	data  File
	timer float32
	parts [PoolSize]Particle
	used  [PoolSize]bool
}

// New returns a particle system whose random spread is seeded by seed.
func New(seed uint64) *System {
	return &System{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *System) Name() string { return "psys" }

func (s *System) Extensions(a *arena.Arena) str.Array {
	return str.MakeStatic(a, str.Lit("psys"))
}

// Init loads the emitter at path. Unreadable or malformed files fall back
// to DefaultFile.
func (s *System) Init(path str.String) error {
	s.release()
	s.a = arena.New(arena.WithMax(1 << 20))
	s.path = path
	s.timer = 0
	s.used = [PoolSize]bool{}

	s.data = DefaultFile
	raw, err := osfs.Read(s.a, path)
	if err != nil {
		arena.Logger().Info("psys: using default emitter", "path", path.String(), "err", err)
		return nil
	}
	if f, err := Decode(raw); err == nil {
		s.data = f
	} else {
		arena.Logger().Info("psys: using default emitter", "path", path.String(), "err", err)
	}
	return nil
}

// Emitter returns the current emitter description.
func (s *System) Emitter() File { return s.data }

// Live returns the number of active particles.
func (s *System) Live() int {
	n := 0
	for _, u := range s.used {
		if u {
			n++
		}
	}
	return n
}

// Update emits at most one particle per elapsed interval and integrates
// every live particle by dt.
func (s *System) Update(dt float32) {
	s.timer += dt
	if s.timer >= s.data.Speed {
		for i := range s.parts {
			if !s.used[i] {
				s.used[i] = true
				s.parts[i] = s.spawn()
				break
			}
		}
		s.timer = 0
	}

	for i := range s.parts {
		if !s.used[i] {
			continue
		}
		p := &s.parts[i]
		p.Pos.X += p.Vel.X * dt
		p.Pos.Y += p.Vel.Y * dt
		p.Vel.X += p.Acc.X * dt
		p.Vel.Y += p.Acc.Y * dt
		p.Color.X += p.ColorVel.X * dt
		p.Color.Y += p.ColorVel.Y * dt
		p.Color.Z += p.ColorVel.Z * dt
		p.Color.W += p.ColorVel.W * dt
		p.Lifetime -= dt
		if p.Lifetime <= 0 {
			s.used[i] = false
		}
	}
}

// spread returns a value uniformly distributed in [-r, r).
func (s *System) spread(r float32) float32 {
	return (s.rng.Float32()*2 - 1) * r
}

func (s *System) spawn() Particle {
	b, v := &s.data.Blueprint, &s.data.Variance
	return Particle{
		Pos: Vec2{b.Pos.X + s.spread(v.Pos.X), b.Pos.Y + s.spread(v.Pos.Y)},
		Vel: Vec2{b.Vel.X + s.spread(v.Vel.X), b.Vel.Y + s.spread(v.Vel.Y)},
		Acc: Vec2{b.Acc.X + s.spread(v.Acc.X), b.Acc.Y + s.spread(v.Acc.Y)},
		Color: Vec4{
			b.Color.X + s.spread(v.Color.X), b.Color.Y + s.spread(v.Color.Y),
			b.Color.Z + s.spread(v.Color.Z), b.Color.W + s.spread(v.Color.W),
		},
		ColorVel: Vec4{
			b.ColorVel.X + s.spread(v.ColorVel.X), b.ColorVel.Y + s.spread(v.ColorVel.Y),
			b.ColorVel.Z + s.spread(v.ColorVel.Z), b.ColorVel.W + s.spread(v.ColorVel.W),
		},
		Lifetime: b.Lifetime + s.spread(v.Lifetime),
	}
}

// Grid geometry for Render: the view spans [-extent, extent) on both axes.
const (
	gridCols = 40
	gridRows = 20
	extent   = 200
)

// Render plots live particles on a character grid centred on the emitter
// origin.
func (s *System) Render(w io.Writer) error {
	b := s.data.Blueprint
	if _, err := fmt.Fprintf(w, "%s\nlive %d/%d  origin (%.0f, %.0f)  interval %.2fs\n",
		s.path, s.Live(), PoolSize, b.Pos.X, b.Pos.Y, s.data.Speed); err != nil {
		return err
	}
	var grid [gridRows][gridCols + 1]byte
	for y := range grid {
		for x := 0; x < gridCols; x++ {
			grid[y][x] = ' '
		}
		grid[y][gridCols] = '\n'
	}
	for i, p := range s.parts {
		if !s.used[i] {
			continue
		}
		x := int((p.Pos.X + extent) * gridCols / (2 * extent))
		y := int((p.Pos.Y + extent) * gridRows / (2 * extent))
		if x >= 0 && x < gridCols && y >= 0 && y < gridRows {
			grid[y][x] = '*'
		}
	}
	for y := range grid {
		if _, err := w.Write(grid[y][:]); err != nil {
			return err
		}
	}
	return nil
}

// nudge is how far one arrow press moves the emitter.
const nudge = 10

// OnKey moves the emitter origin with the arrow keys.
func (s *System) OnKey(ev input.Event) {
	if !ev.Pressed() {
		return
	}
	p := &s.data.Blueprint.Pos
	switch ev.Key {
	case input.KeyLeft:
		p.X = max(p.X-nudge, -extent)
	case input.KeyRight:
		p.X = min(p.X+nudge, extent)
	case input.KeyUp:
		p.Y = max(p.Y-nudge, -extent)
	case input.KeyDown:
		p.Y = min(p.Y+nudge, extent)
	}
}

// Free writes the emitter back to its file and releases the plugin arena.
func (s *System) Free() error {
	defer s.release()
	if s.path == nil {
		return nil
	}
	buf, err := s.data.Encode(s.a.Alloc(FileSize)[:0])
	if err != nil {
		return err
	}
	return osfs.Write(s.path, buf)
}

func (s *System) release() {
	if s.a != nil {
		s.a.Free()
		s.a = nil
	}
	s.path = nil
}
