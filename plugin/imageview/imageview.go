// Package imageview is a plugin that shows an image's format, dimensions and
// a text thumbnail.
package imageview

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/pavanmanishd/fexp/arena"
	"github.com/pavanmanishd/fexp/osfs"
	"github.com/pavanmanishd/fexp/str"
)

// ramp maps luminance to glyphs, darkest first.
const ramp = " .:-=+*#%@"

// charWidth is the pixel width assumed per thumbnail column.
const charWidth = 8

const (
	DefaultColumns = 64
	minColumns     = 8
	maxColumns     = 160
)

// Viewer implements plugin.Plugin, Initer, Renderer, Resizer and Freer.
type Viewer struct {
	columns int

	a      *arena.Arena
	path   str.String
	format string
	bounds image.Rectangle
	img    image.Image
	thumb  *image.Gray
}

// New returns a viewer that renders thumbnails columns wide.
func New(columns int) *Viewer {
	if columns <= 0 {
		columns = DefaultColumns
	}
	return &Viewer{columns: columns}
}

func (v *Viewer) Name() string { return "imageview" }

func (v *Viewer) Extensions(a *arena.Arena) str.Array {
	return str.MakeStatic(a,
		str.Lit("png"), str.Lit("jpg"), str.Lit("jpeg"), str.Lit("gif"),
		str.Lit("bmp"), str.Lit("tif"), str.Lit("tiff"), str.Lit("webp"),
	)
}

// Init reads the file and decodes its header. A file whose pixels cannot be
// decoded still opens; it just has no thumbnail.
func (v *Viewer) Init(path str.String) error {
	v.release()
	v.a = arena.New(arena.WithMax(256 << 20))
	v.path = path

	data, err := osfs.Read(v.a, path)
	if err != nil {
		return err
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("imageview: %w", err)
	}
	v.format = format
	v.bounds = image.Rect(0, 0, cfg.Width, cfg.Height)

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		arena.Logger().Warn("imageview: decode failed", "path", path.String(), "err", err)
		return nil
	}
	v.img = img
	v.rescale()
	return nil
}

// Format returns the decoder name, such as "png".
func (v *Viewer) Format() string { return v.format }

// Size returns the image dimensions in pixels.
func (v *Viewer) Size() (w, h int) { return v.bounds.Dx(), v.bounds.Dy() }

// Columns returns the current thumbnail width.
func (v *Viewer) Columns() int { return v.columns }

func (v *Viewer) rescale() {
	if v.img == nil {
		return
	}
	w, h := v.Size()
	if w == 0 || h == 0 {
		v.thumb = nil
		return
	}
	cols := min(v.columns, w)
	// Glyphs are about twice as tall as they are wide.
	rows := max(cols*h/w/2, 1)
	v.thumb = image.NewGray(image.Rect(0, 0, cols, rows))
	xdraw.ApproxBiLinear.Scale(v.thumb, v.thumb.Bounds(), v.img, v.img.Bounds(), xdraw.Src, nil)
}

func (v *Viewer) Render(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%s\n%s %dx%d\n", v.path, v.format, v.bounds.Dx(), v.bounds.Dy()); err != nil {
		return err
	}
	if v.thumb == nil {
		return nil
	}
	b := v.thumb.Bounds()
	line := make([]byte, b.Dx()+1)
	line[b.Dx()] = '\n'
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			line[x-b.Min.X] = ramp[int(v.thumb.GrayAt(x, y).Y)*(len(ramp)-1)/255]
		}
		if _, err := w.Write(line); err != nil {
			return err
		}
	}
	return nil
}

// OnResize fits the thumbnail to a window w pixels wide.
func (v *Viewer) OnResize(w, _ int) {
	v.columns = min(max(w/charWidth, minColumns), maxColumns)
	v.rescale()
}

func (v *Viewer) Free() error {
	v.release()
	return nil
}

func (v *Viewer) release() {
	if v.a != nil {
		v.a.Free()
		v.a = nil
	}
	v.path = nil
	v.format = ""
	v.bounds = image.Rectangle{}
	v.img = nil
	v.thumb = nil
}
