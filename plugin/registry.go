package plugin

import (
	"fmt"
	"io"

	"golang.org/x/text/cases"
	"golang.org/x/text/transform"

	"github.com/pavanmanishd/fexp/arena"
	"github.com/pavanmanishd/fexp/fpath"
	"github.com/pavanmanishd/fexp/input"
	"github.com/pavanmanishd/fexp/str"
)

type entry struct {
	p    Plugin
	exts str.Array
}

// Registry maps file extensions to plugins and tracks the one that is open.
// Extensions match case-insensitively. When two plugins claim the same
// extension the first registered wins.
type Registry struct {
	arena   *arena.Arena
	entries []entry
	byExt   map[uint32][]int
	active  int
}

// NewRegistry returns an empty registry that allocates from a, which must
// outlive it.
func NewRegistry(a *arena.Arena) *Registry {
	return &Registry{arena: a, byExt: make(map[uint32][]int), active: -1}
}

// Register adds p and indexes its extensions.
func (r *Registry) Register(p Plugin) {
	exts := p.Extensions(r.arena)
	idx := len(r.entries)
	for i, ext := range exts.All() {
		folded := fold(r.arena, ext)
		exts.Set(i, folded)
		h := str.Hash(folded)
		r.byExt[h] = append(r.byExt[h], idx)
	}
	r.entries = append(r.entries, entry{p: p, exts: exts})
	arena.Logger().Debug("plugin: registered", "name", p.Name(), "extensions", exts.Len())
}

// Len returns the number of registered plugins.
func (r *Registry) Len() int { return len(r.entries) }

// Names returns the registered plugin names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.entries))
	for i, e := range r.entries {
		names[i] = e.p.Name()
	}
	return names
}

// Lookup returns the plugin that handles the extension of path.
func (r *Registry) Lookup(path str.String) (Plugin, bool) {
	i := r.lookup(path)
	if i < 0 {
		return nil, false
	}
	return r.entries[i].p, true
}

func (r *Registry) lookup(path str.String) int {
	ext := fpath.Extension(path)
	if len(ext) == 0 {
		return -1
	}
	tmp := r.arena.BeginTemp()
	defer tmp.End()
	folded := fold(r.arena, ext)
	for _, i := range r.byExt[str.Hash(folded)] {
		if str.IndexOf(&r.entries[i].exts, folded) >= 0 {
			return i
		}
	}
	return -1
}

// Open activates the plugin for path. It reports false, with no error, when
// no plugin handles the extension. An already open plugin is closed first.
func (r *Registry) Open(path str.String) (bool, error) {
	i := r.lookup(path)
	if i < 0 {
		return false, nil
	}
	if err := r.Close(); err != nil {
		arena.Logger().Warn("plugin: close before open failed", "err", err)
	}
	p := r.entries[i].p
	if in, ok := p.(Initer); ok {
		if err := in.Init(str.Copy(r.arena, path)); err != nil {
			return true, fmt.Errorf("plugin %s: init %s: %w", p.Name(), path, err)
		}
	}
	r.active = i
	arena.Logger().Info("plugin: opened", "name", p.Name(), "path", path.String())
	return true, nil
}

// Active returns the open plugin.
func (r *Registry) Active() (Plugin, bool) {
	if r.active < 0 {
		return nil, false
	}
	return r.entries[r.active].p, true
}

// Close frees the open plugin, if any.
func (r *Registry) Close() error {
	if r.active < 0 {
		return nil
	}
	p := r.entries[r.active].p
	r.active = -1
	if f, ok := p.(Freer); ok {
		if err := f.Free(); err != nil {
			return fmt.Errorf("plugin %s: free: %w", p.Name(), err)
		}
	}
	arena.Logger().Info("plugin: closed", "name", p.Name())
	return nil
}

// Update advances the open plugin by dt seconds.
func (r *Registry) Update(dt float32) {
	if p, ok := r.Active(); ok {
		if u, ok := p.(Updater); ok {
			u.Update(dt)
		}
	}
}

// Render runs the open plugin's custom pass and then its drawing pass.
func (r *Registry) Render(w io.Writer) error {
	p, ok := r.Active()
	if !ok {
		return nil
	}
	if c, ok := p.(CustomRenderer); ok {
		c.CustomRender()
	}
	if rr, ok := p.(Renderer); ok {
		return rr.Render(w)
	}
	return nil
}

// Key forwards a key event to the open plugin.
func (r *Registry) Key(ev input.Event) {
	if p, ok := r.Active(); ok {
		if k, ok := p.(KeyHandler); ok {
			k.OnKey(ev)
		}
	}
}

// Button forwards a mouse button event to the open plugin.
func (r *Registry) Button(b input.Button, action input.Action) {
	if p, ok := r.Active(); ok {
		if h, ok := p.(ButtonHandler); ok {
			h.OnButton(b, action)
		}
	}
}

// Resize forwards a window resize. Zero dimensions are ignored.
func (r *Registry) Resize(w, h int) {
	if w == 0 || h == 0 {
		return
	}
	if p, ok := r.Active(); ok {
		if rs, ok := p.(Resizer); ok {
			rs.OnResize(w, h)
		}
	}
}

// fold case-folds s into a.
func fold(a *arena.Arena, s str.String) str.String {
	buf := a.Alloc(len(s))
	out, _, err := transform.Append(cases.Fold(), buf[:0], s)
	if err != nil {
		return str.Copy(a, s)
	}
	if len(out) > 0 && len(buf) > 0 && &out[0] != &buf[0] {
		// Folding grew the string past its arena slot.
		return str.Copy(a, out)
	}
	return str.String(out)
}
