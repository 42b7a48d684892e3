// Package explorer is the file-explorer shell: a current directory, a
// filter query typed by the user, and a selection over the matching entries.
//
// Long-lived state (the current path and the query buffers) lives in the
// arena given to New. Everything computed per frame lives in a scratch
// block taken from the thread context bound to the frame's context.
package explorer

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/pavanmanishd/fexp/arena"
	"github.com/pavanmanishd/fexp/fpath"
	"github.com/pavanmanishd/fexp/input"
	"github.com/pavanmanishd/fexp/osfs"
	"github.com/pavanmanishd/fexp/plugin"
	"github.com/pavanmanishd/fexp/str"
	"github.com/pavanmanishd/fexp/tctx"
)

// PathMax bounds the length of a typed query.
const PathMax = 4096

// Mode selects what typed text means.
type Mode int

const (
	// ModeRegular filters the current directory.
	ModeRegular Mode = iota
	// ModeDrive types a new root path.
	ModeDrive
)

func (m Mode) String() string {
	if m == ModeDrive {
		return "drive"
	}
	return "regular"
}

// Opener hands a file no plugin claims to the operating system. The default
// is osfs.Launch.
type Opener func(path str.String) error

// pending collects navigation requested by key events until the next Update.
type pending struct {
	move   int
	enter  bool
	parent bool
}

// Explorer is the state of one explorer view. It is not safe for concurrent
// use.
type Explorer struct {
	arena  *arena.Arena
	reg    *plugin.Registry
	opener Opener

	path      str.String
	query     str.String
	queryLen  int
	stored    str.String
	storedLen int
	mode      Mode

	selected int
	count    int
	swapped  bool
	pending  pending
	lastErr  error
}

// Option configures an Explorer in New.
type Option func(*Explorer)

// WithRoot starts the explorer in dir instead of the working directory.
func WithRoot(dir str.String) Option {
	return func(e *Explorer) {
		if len(dir) > 0 {
			e.path = fpath.Fix(e.arena, dir)
		}
	}
}

// WithOpener sets how files without a plugin are opened.
func WithOpener(o Opener) Option {
	return func(e *Explorer) { e.opener = o }
}

// New creates an explorer whose long-lived state is allocated from a.
// reg may be nil, in which case every file goes to the opener.
func New(a *arena.Arena, reg *plugin.Registry, opts ...Option) (*Explorer, error) {
	e := &Explorer{
		arena:  a,
		reg:    reg,
		query:  str.Alloc(a, PathMax),
		stored: str.Alloc(a, PathMax),
	}
	e.opener = e.launch
	for _, opt := range opts {
		opt(e)
	}
	if e.path == nil {
		wd, err := osfs.Path(a, osfs.CurrentDir)
		if err != nil {
			return nil, fmt.Errorf("explorer: %w", err)
		}
		e.path = wd
	}
	return e, nil
}

// launch hands path to the desktop's default application.
func (e *Explorer) launch(path str.String) error {
	arena.Logger().Info("explorer: no plugin for file", "path", path.String())
	return osfs.Launch(path)
}

// Path returns the current directory.
func (e *Explorer) Path() str.String { return e.path }

// Query returns the text typed so far in the current mode.
func (e *Explorer) Query() str.String { return e.query[:e.queryLen] }

// SetQuery replaces the typed text.
func (e *Explorer) SetQuery(q str.String) {
	e.queryLen = copy(e.query, q)
}

// Mode returns the current input mode.
func (e *Explorer) Mode() Mode { return e.mode }

// Selected returns the index of the selection among matching entries.
func (e *Explorer) Selected() int { return e.selected }

// Count returns how many entries matched the query in the last Update.
func (e *Explorer) Count() int { return e.count }

// Err returns the error from the last directory scan.
func (e *Explorer) Err() error { return e.lastErr }

func matches(name, query str.String) bool {
	return str.FindFirst(name, query, 0) != len(name)
}

// pattern returns "<path>/*" in a.
func (e *Explorer) pattern(a *arena.Arena) str.String {
	return str.Cat(a, e.path, str.Lit("/*"))
}

// wrap keeps v in [lo, hi], wrapping past either end.
func wrap(lo, v, hi int) int {
	if hi < lo {
		return lo
	}
	if v > hi {
		return lo
	}
	if v < lo {
		return hi
	}
	return v
}

// Update counts the matching entries, applies queued navigation and opens
// the selection when enter was pressed.
func (e *Explorer) Update(ctx context.Context) error {
	s := tctx.ScratchGet(ctx)
	defer tctx.ScratchReturn(ctx, &s)
	sa := s.Arena

	pat := e.pattern(sa)
	query := e.Query()
	nav := e.pending
	e.pending = pending{}

	e.count = 0
	e.lastErr = e.each(sa, pat, func(name str.String, _ osfs.Properties) bool {
		if matches(name, query) {
			e.count++
		}
		return true
	})

	e.selected = wrap(0, e.selected+nav.move, e.count-1)
	changed := e.swapped

	k := 0
	err := e.each(sa, pat, func(name str.String, props osfs.Properties) bool {
		if !matches(name, query) {
			return true
		}
		if k == e.selected && nav.enter && !e.swapped {
			e.activate(sa, name, props)
			changed = true
			return false
		}
		k++
		return true
	})
	if e.lastErr == nil {
		e.lastErr = err
	}

	if nav.parent {
		if str.FindFirst(e.path, str.Lit("/"), 0) != len(e.path) {
			e.path = fpath.Fix(e.arena, str.Cat(sa, e.path, str.Lit("/..")))
			changed = true
		} else {
			e.path = nil
		}
	}

	if changed {
		e.selected = 0
		e.queryLen = 0
	}
	e.swapped = false
	return e.lastErr
}

// activate descends into a folder or opens a file.
func (e *Explorer) activate(sa *arena.Arena, name str.String, props osfs.Properties) {
	full := str.Cat(sa, str.Cat(sa, e.path, str.Lit("/")), name)
	if props.IsFolder() {
		e.path = fpath.Fix(e.arena, full)
		arena.Logger().Debug("explorer: enter folder", "path", e.path.String())
		return
	}
	if e.reg != nil {
		opened, err := e.reg.Open(full)
		if err != nil {
			arena.Logger().Warn("explorer: plugin open failed", "path", full.String(), "err", err)
		}
		if opened {
			return
		}
	}
	if err := e.opener(full); err != nil {
		arena.Logger().Warn("explorer: open failed", "path", full.String(), "err", err)
	}
}

// each calls fn for every entry matching pat until fn returns false. Entry
// names are only valid during the call.
func (e *Explorer) each(sa *arena.Arena, pat str.String, fn func(str.String, osfs.Properties) bool) error {
	it, err := osfs.OpenPattern(pat)
	if err != nil {
		return err
	}
	mark := sa.Pos()
	for {
		sa.DeallocTo(mark)
		name, props, ok := it.Next(sa)
		if !ok || !fn(name, props) {
			break
		}
	}
	sa.DeallocTo(mark)
	return it.Close()
}

// Key handles one key event. Navigation takes effect on the next Update.
func (e *Explorer) Key(ev input.Event) {
	if !ev.Pressed() {
		return
	}
	if e.mode == ModeDrive {
		switch ev.Key {
		case input.KeyEnter:
			e.commitDrive()
			return
		case input.KeyEscape:
			e.leaveDrive()
			return
		}
	}

	switch k := ev.Key; {
	case k == input.KeyUp:
		e.pending.move--
	case k == input.KeyDown:
		e.pending.move++
	case k == input.KeyEnter:
		e.pending.enter = true
	case k == input.KeyBackspace && ev.Mods.Has(input.ModControl):
		e.pending.parent = true
	case k == input.KeyBackspace:
		e.queryLen = max(e.queryLen-1, 0)
	case k == 'D' && ev.Mods.Has(input.ModControl) && e.mode == ModeRegular:
		e.enterDrive()
	case k.IsLetter():
		if ev.Mods.Has(input.ModShift) {
			e.typeChar(byte(k))
		} else {
			e.typeChar(byte(k) + 'a' - 'A')
		}
	case k == input.KeyMinus && ev.Mods.Has(input.ModShift):
		e.typeChar('_')
	case k == input.KeySemicolon && ev.Mods.Has(input.ModShift):
		e.typeChar(':')
	case ev.Mods.Has(input.ModShift):
	case k == input.KeyPeriod, k == input.KeyMinus, k == input.KeyApostrophe,
		k == input.KeySemicolon, k == input.KeySpace, k == input.KeySlash, k.IsDigit():
		e.typeChar(byte(k))
	}
}

func (e *Explorer) typeChar(c byte) {
	if e.queryLen < len(e.query) {
		e.query[e.queryLen] = c
		e.queryLen++
	}
}

// swapQueries exchanges the regular and drive query buffers.
func (e *Explorer) swapQueries() {
	e.query, e.stored = e.stored, e.query
	e.queryLen, e.storedLen = e.storedLen, e.queryLen
}

func (e *Explorer) enterDrive() {
	e.mode = ModeDrive
	e.swapQueries()
	e.swapped = false
}

// commitDrive makes the typed drive text the current path and returns to
// regular mode with an empty filter.
func (e *Explorer) commitDrive() {
	e.swapQueries()
	e.path = fpath.Fix(e.arena, e.stored[:e.storedLen])
	e.queryLen = 0
	e.mode = ModeRegular
	e.swapped = true
}

func (e *Explorer) leaveDrive() {
	e.swapQueries()
	e.mode = ModeRegular
	e.swapped = true
}

// Render writes the prompt line followed, in regular mode, by the matching
// entries. The selected entry is marked with '>'.
func (e *Explorer) Render(ctx context.Context, w io.Writer) error {
	s := tctx.ScratchGet(ctx)
	defer tctx.ScratchReturn(ctx, &s)
	sa := s.Arena

	bw := bufio.NewWriter(w)
	var prompt str.String
	if e.mode == ModeDrive {
		prompt = str.Cat(sa, str.Lit("Enter Drive: "), e.Query())
	} else {
		prompt = str.Cat(sa, str.Cat(sa, e.path, str.Lit("/")), e.Query())
	}
	bw.Write(prompt)
	bw.WriteByte('\n')
	for range min(max(len(prompt), 16), 80) {
		bw.WriteByte('-')
	}
	bw.WriteByte('\n')

	if e.mode == ModeRegular {
		query := e.Query()
		idx := 0
		err := e.each(sa, e.pattern(sa), func(name str.String, props osfs.Properties) bool {
			if !matches(name, query) {
				return true
			}
			if idx == e.selected {
				bw.WriteString("> ")
			} else {
				bw.WriteString("  ")
			}
			bw.Write(name)
			if props.IsFolder() {
				bw.WriteByte('/')
			}
			bw.WriteByte('\n')
			idx++
			return true
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			fmt.Fprintf(bw, "  (%v)\n", err)
		}
	}
	return bw.Flush()
}
