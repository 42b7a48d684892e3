package tctx

import (
	"context"

	"golang.org/x/sync/errgroup"
)

type ctxKey struct{}

// NewContext returns a copy of ctx carrying c. Only the goroutine owning c
// may use the returned context for scratch access.
func NewContext(ctx context.Context, c *ThreadContext) context.Context {
	return context.WithValue(ctx, ctxKey{}, c)
}

// FromContext returns the thread context bound to ctx, if any.
func FromContext(ctx context.Context) (*ThreadContext, bool) {
	c, ok := ctx.Value(ctxKey{}).(*ThreadContext)
	return c, ok
}

// MustFromContext is FromContext that panics with ErrNoContext.
func MustFromContext(ctx context.Context) *ThreadContext {
	c, ok := FromContext(ctx)
	if !ok {
		panic(ErrNoContext)
	}
	return c
}

// ScratchGet leases a scratch slot from the thread context bound to ctx.
func ScratchGet(ctx context.Context) Scratch {
	return MustFromContext(ctx).Get()
}

// ScratchReset rewinds a slot leased through ScratchGet.
func ScratchReset(ctx context.Context, s *Scratch) {
	MustFromContext(ctx).Reset(s)
}

// ScratchReturn gives back a slot leased through ScratchGet.
func ScratchReturn(ctx context.Context, s *Scratch) {
	MustFromContext(ctx).Return(s)
}

// Run creates a thread context, binds it to ctx for the duration of fn and
// frees it afterwards.
func Run(ctx context.Context, fn func(ctx context.Context) error, opts ...Option) error {
	c := New(opts...)
	defer c.Free()
	return fn(NewContext(ctx, c))
}

// Group runs workers on separate goroutines, each with its own thread context.
type Group struct {
	g    *errgroup.Group
	ctx  context.Context
	opts []Option
}

// WithGroup returns a Group whose workers are cancelled together, like
// errgroup.WithContext.
func WithGroup(ctx context.Context, opts ...Option) (*Group, context.Context) {
	g, gctx := errgroup.WithContext(ctx)
	return &Group{g: g, ctx: gctx, opts: opts}, gctx
}

// SetLimit bounds the number of concurrently running workers.
func (g *Group) SetLimit(n int) { g.g.SetLimit(n) }

// Go starts fn on a new goroutine with a fresh thread context.
func (g *Group) Go(fn func(ctx context.Context) error) {
	g.g.Go(func() error {
		return Run(g.ctx, fn, g.opts...)
	})
}

// Wait blocks until all workers return and reports the first error.
func (g *Group) Wait() error { return g.g.Wait() }
