// Package app wires the long-lived arena, the main thread context, the
// plugin registry and the explorer into one frame loop.
package app

import (
	"context"
	"io"

	"github.com/pavanmanishd/fexp/arena"
	"github.com/pavanmanishd/fexp/explorer"
	"github.com/pavanmanishd/fexp/input"
	"github.com/pavanmanishd/fexp/metrics"
	"github.com/pavanmanishd/fexp/plugin"
	"github.com/pavanmanishd/fexp/str"
	"github.com/pavanmanishd/fexp/tctx"
)

type options struct {
	arenaOpts    []arena.Option
	threadOpts   []tctx.Option
	explorerOpts []explorer.Option
	plugins      []plugin.Plugin
	collector    *metrics.Collector
}

// Option configures an App in New.
type Option func(*options)

// WithArenaOptions configures the long-lived arena.
func WithArenaOptions(opts ...arena.Option) Option {
	return func(o *options) { o.arenaOpts = append(o.arenaOpts, opts...) }
}

// WithThreadOptions configures the main thread context.
func WithThreadOptions(opts ...tctx.Option) Option {
	return func(o *options) { o.threadOpts = append(o.threadOpts, opts...) }
}

// WithExplorerOptions configures the explorer.
func WithExplorerOptions(opts ...explorer.Option) Option {
	return func(o *options) { o.explorerOpts = append(o.explorerOpts, opts...) }
}

// WithPlugins registers plugins in order.
func WithPlugins(ps ...plugin.Plugin) Option {
	return func(o *options) { o.plugins = append(o.plugins, ps...) }
}

// WithCollector reports the app's arenas to c under "global" and "main".
// The thread-context snapshot is not synchronised, so c must be gathered on
// the app's goroutine.
func WithCollector(c *metrics.Collector) Option {
	return func(o *options) { o.collector = c }
}

// App is the application context. All methods must be called from the
// goroutine that owns it.
type App struct {
	global *arena.SafeArena
	tc     *tctx.ThreadContext
	reg    *plugin.Registry
	exp    *explorer.Explorer
	col    *metrics.Collector
	closed bool
}

// New builds the application. Close releases everything it allocated.
func New(opts ...Option) (*App, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	global := arena.NewSafeArena(o.arenaOpts...)
	app := &App{global: global, tc: tctx.New(o.threadOpts...), col: o.collector}

	var err error
	global.Do(func(a *arena.Arena) {
		app.reg = plugin.NewRegistry(a)
		for _, p := range o.plugins {
			app.reg.Register(p)
		}
		app.exp, err = explorer.New(a, app.reg, o.explorerOpts...)
	})
	if err != nil {
		app.tc.Free()
		global.Free()
		return nil, err
	}
	if app.col != nil {
		app.col.AddArena("global", global.Metrics)
		app.col.AddThread("main", app.tc.Stats)
	}
	return app, nil
}

// Context binds the main thread context to ctx.
func (app *App) Context(ctx context.Context) context.Context {
	if c, ok := tctx.FromContext(ctx); ok && c == app.tc {
		return ctx
	}
	return tctx.NewContext(ctx, app.tc)
}

// Explorer returns the file explorer.
func (app *App) Explorer() *explorer.Explorer { return app.exp }

// Registry returns the plugin registry.
func (app *App) Registry() *plugin.Registry { return app.reg }

// Thread returns the main thread context.
func (app *App) Thread() *tctx.ThreadContext { return app.tc }

// Open activates the plugin for path without going through the explorer.
func (app *App) Open(path str.String) (opened bool, err error) {
	app.global.Do(func(*arena.Arena) {
		opened, err = app.reg.Open(path)
	})
	return opened, err
}

// Frame advances by dt seconds and draws to w. The open plugin, if any,
// takes the frame; otherwise the explorer does.
func (app *App) Frame(ctx context.Context, dt float32, w io.Writer) error {
	ctx = app.Context(ctx)
	if _, ok := app.reg.Active(); ok {
		app.reg.Update(dt)
		return app.reg.Render(w)
	}

	var err error
	app.global.Do(func(*arena.Arena) {
		if uerr := app.exp.Update(ctx); uerr != nil {
			arena.Logger().Debug("app: explorer update", "err", uerr)
		}
		// Update may have opened a plugin.
		if _, ok := app.reg.Active(); ok {
			err = app.reg.Render(w)
			return
		}
		err = app.exp.Render(ctx, w)
	})
	return err
}

// Key routes a key event. Alt+Left closes the open plugin.
func (app *App) Key(ev input.Event) {
	if _, ok := app.reg.Active(); !ok {
		app.exp.Key(ev)
		return
	}
	if ev.Action == input.Press && ev.Key == input.KeyLeft && ev.Mods.Has(input.ModAlt) {
		if err := app.reg.Close(); err != nil {
			arena.Logger().Warn("app: close plugin", "err", err)
		}
		return
	}
	app.reg.Key(ev)
}

// Button forwards a mouse button event to the open plugin.
func (app *App) Button(b input.Button, action input.Action) {
	app.reg.Button(b, action)
}

// Resize forwards a window resize to the open plugin.
func (app *App) Resize(w, h int) {
	app.reg.Resize(w, h)
}

// Close frees the open plugin and releases the app's memory. It is safe to
// call more than once.
func (app *App) Close() error {
	if app.closed {
		return nil
	}
	app.closed = true
	err := app.reg.Close()
	if app.col != nil {
		app.col.Remove("global")
		app.col.Remove("main")
	}
	app.tc.Free()
	app.global.Free()
	return err
}
