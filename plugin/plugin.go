// Package plugin hosts file viewers keyed by file extension.
//
// A plugin is any value implementing Plugin. The remaining interfaces in
// this package are optional capabilities: the host checks for each one and
// skips the call when a plugin does not implement it.
package plugin

import (
	"io"

	"github.com/pavanmanishd/fexp/arena"
	"github.com/pavanmanishd/fexp/input"
	"github.com/pavanmanishd/fexp/str"
)

// Plugin is the required surface.
//
// Extensions is called once at registration with the host's long-lived
// arena; the returned array and its strings may live there. Plugins must
// not keep a reference to the arena itself.
type Plugin interface {
	Name() string
	Extensions(a *arena.Arena) str.Array
}

// Initer is called when a file is opened. path lives in the host's
// long-lived arena and stays valid until the host shuts down.
type Initer interface {
	Init(path str.String) error
}

// Updater advances the plugin once per frame by dt seconds.
type Updater interface {
	Update(dt float32)
}

// CustomRenderer runs before the host's own drawing pass each frame.
type CustomRenderer interface {
	CustomRender()
}

// Renderer draws the plugin's frame to w.
type Renderer interface {
	Render(w io.Writer) error
}

// Freer is called when the plugin is closed.
type Freer interface {
	Free() error
}

// KeyHandler receives key events while the plugin is open.
type KeyHandler interface {
	OnKey(ev input.Event)
}

// ButtonHandler receives mouse button events while the plugin is open.
type ButtonHandler interface {
	OnButton(b input.Button, action input.Action)
}

// Resizer is told the new window size in pixels.
type Resizer interface {
	OnResize(w, h int)
}
