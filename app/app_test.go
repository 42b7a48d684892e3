package app

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pavanmanishd/fexp/arena"
	"github.com/pavanmanishd/fexp/explorer"
	"github.com/pavanmanishd/fexp/input"
	"github.com/pavanmanishd/fexp/metrics"
	"github.com/pavanmanishd/fexp/str"
	"github.com/pavanmanishd/fexp/tctx"
)

type counter struct {
	updates int
	keys    []input.Key
	freed   bool
}

func (c *counter) Name() string { return "counter" }
func (c *counter) Extensions(a *arena.Arena) str.Array {
	return str.MakeStatic(a, str.Lit("cnt"))
}
func (c *counter) Init(str.String) error {
	c.freed = false
	return nil
}

func (c *counter) Update(float32) { c.updates++ }

func (c *counter) OnKey(ev input.Event) { c.keys = append(c.keys, ev.Key) }

func (c *counter) Free() error {
	c.freed = true
	return nil
}

func (c *counter) Render(w io.Writer) error {
	_, err := io.WriteString(w, "counter\n")
	return err
}

func newApp(t *testing.T, opts ...Option) (*App, string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tally.cnt"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.txt"), nil, 0o644))
	opts = append([]Option{
		WithArenaOptions(arena.WithMax(1 << 20)),
		WithExplorerOptions(explorer.WithRoot(str.Lit(dir))),
	}, opts...)
	app, err := New(opts...)
	require.NoError(t, err)
	t.Cleanup(func() { app.Close() })
	return app, filepath.ToSlash(dir)
}

func typeText(app *App, s string) {
	for _, c := range []byte(s) {
		app.Key(input.Event{Key: input.Key(c - 'a' + 'A'), Action: input.Press})
	}
}

func TestFrameRendersExplorer(t *testing.T) {
	app, dir := newApp(t)
	var out bytes.Buffer
	require.NoError(t, app.Frame(context.Background(), 0.016, &out))
	assert.True(t, strings.HasPrefix(out.String(), dir+"/\n"))
	assert.Contains(t, out.String(), "tally.cnt")
	assert.Contains(t, out.String(), "readme.txt")
	assert.Equal(t, 0, app.Thread().Leased())
}

func TestPluginLifecycle(t *testing.T) {
	c := &counter{}
	app, _ := newApp(t, WithPlugins(c))
	ctx := context.Background()
	var out bytes.Buffer

	typeText(app, "tally")
	require.NoError(t, app.Frame(ctx, 0.016, &out))
	app.Key(input.Event{Key: input.KeyEnter, Action: input.Press})

	out.Reset()
	require.NoError(t, app.Frame(ctx, 0.016, &out))
	assert.Equal(t, "counter\n", out.String(), "the plugin draws the frame it was opened in")
	_, ok := app.Registry().Active()
	require.True(t, ok)

	require.NoError(t, app.Frame(ctx, 0.016, io.Discard))
	assert.Equal(t, 1, c.updates)

	app.Key(input.Event{Key: 'Q', Action: input.Press})
	app.Key(input.Event{Key: input.KeyLeft, Action: input.Press})
	assert.Equal(t, []input.Key{'Q', input.KeyLeft}, c.keys)
	assert.Equal(t, 0, app.Explorer().Query().Size(), "keys go to the plugin")

	app.Key(input.Event{Key: input.KeyLeft, Action: input.Press, Mods: input.ModAlt})
	assert.True(t, c.freed)
	_, ok = app.Registry().Active()
	assert.False(t, ok)

	out.Reset()
	require.NoError(t, app.Frame(ctx, 0.016, &out))
	assert.Contains(t, out.String(), "readme.txt")
}

func TestContextBinding(t *testing.T) {
	app, _ := newApp(t)
	ctx := app.Context(context.Background())
	c, ok := tctx.FromContext(ctx)
	require.True(t, ok)
	assert.Same(t, app.Thread(), c)
	assert.Equal(t, ctx, app.Context(ctx), "already bound")
}

func TestCollector(t *testing.T) {
	col := metrics.NewCollector()
	app, _ := newApp(t, WithCollector(col))
	require.NoError(t, app.Frame(context.Background(), 0, io.Discard))
	assert.Positive(t, testutil.CollectAndCount(col, "fexp_arena_bytes_in_use"))

	require.NoError(t, app.Close())
	require.NoError(t, app.Close())
	assert.Equal(t, 0, testutil.CollectAndCount(col))
}

func TestNewBadRoot(t *testing.T) {
	app, err := New(
		WithArenaOptions(arena.WithMax(1<<16)),
		WithExplorerOptions(explorer.WithRoot(str.Lit(filepath.Join(t.TempDir(), "missing")))),
	)
	require.NoError(t, err, "a missing root only shows up when listing")
	var out bytes.Buffer
	require.NoError(t, app.Frame(context.Background(), 0, &out))
	assert.Contains(t, out.String(), "no such file")
	require.NoError(t, app.Close())
}

func TestOpen(t *testing.T) {
	c := &counter{}
	app, dir := newApp(t, WithPlugins(c))

	opened, err := app.Open(str.Lit(dir + "/tally.cnt"))
	require.NoError(t, err)
	require.True(t, opened)

	opened, err = app.Open(str.Lit(dir + "/readme.txt"))
	require.NoError(t, err)
	assert.False(t, opened)
	_, ok := app.Registry().Active()
	assert.True(t, ok, "a file without a plugin leaves the open one alone")
}
