package tctx

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pavanmanishd/fexp/arena"
)

func TestFromContext(t *testing.T) {
	_, ok := FromContext(context.Background())
	require.False(t, ok)
	require.ErrorIs(t, recoverErr(t, func() { ScratchGet(context.Background()) }), ErrNoContext)

	c := newTest(t)
	ctx := NewContext(context.Background(), c)
	got, ok := FromContext(ctx)
	require.True(t, ok)
	require.Same(t, c, got)

	s := ScratchGet(ctx)
	s.Arena.Alloc(10)
	ScratchReset(ctx, &s)
	require.Zero(t, s.Arena.Pos())
	ScratchReturn(ctx, &s)
	require.Zero(t, c.Leased())
}

func TestRun(t *testing.T) {
	var captured *ThreadContext
	err := Run(context.Background(), func(ctx context.Context) error {
		captured = MustFromContext(ctx)
		s := ScratchGet(ctx)
		defer ScratchReturn(ctx, &s)
		s.Arena.Alloc(16)
		return nil
	}, WithArenaOptions(arena.WithMax(1<<16)))
	require.NoError(t, err)
	require.ErrorIs(t, recoverErr(t, func() { captured.Get() }), arena.ErrFreed)

	sentinel := errors.New("boom")
	err = Run(context.Background(), func(context.Context) error { return sentinel })
	require.ErrorIs(t, err, sentinel)
}

func TestGroupWorkersHaveOwnContexts(t *testing.T) {
	g, _ := WithGroup(context.Background(), WithArenaOptions(arena.WithMax(1<<16)))
	g.SetLimit(4)

	const workers = 16
	var seen [workers]*ThreadContext
	var total atomic.Int64
	for w := 0; w < workers; w++ {
		g.Go(func(ctx context.Context) error {
			c := MustFromContext(ctx)
			seen[w] = c
			for i := 0; i < 50; i++ {
				s := c.Get()
				b := s.Arena.Alloc(256)
				for j := range b {
					b[j] = byte(w)
				}
				for _, v := range b {
					if v != byte(w) {
						return fmt.Errorf("worker %d saw byte %d", w, v)
					}
				}
				total.Add(int64(len(b)))
				c.Return(&s)
			}
			if c.Created() != 1 {
				return fmt.Errorf("worker %d created %d slots", w, c.Created())
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
	assert.Equal(t, int64(workers*50*256), total.Load())

	uniq := map[*ThreadContext]bool{}
	for _, c := range seen {
		uniq[c] = true
	}
	assert.Len(t, uniq, workers)
}

func TestGroupError(t *testing.T) {
	g, gctx := WithGroup(context.Background())
	sentinel := errors.New("scan failed")
	g.Go(func(context.Context) error { return sentinel })
	g.Go(func(ctx context.Context) error {
		<-ctx.Done()
		return nil
	})
	require.ErrorIs(t, g.Wait(), sentinel)
	require.Error(t, gctx.Err())
}
