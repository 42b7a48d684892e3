package explorer

import (
	"context"
	"fmt"

	"github.com/pavanmanishd/fexp/osfs"
	"github.com/pavanmanishd/fexp/str"
	"github.com/pavanmanishd/fexp/tctx"
)

// ScanResult summarises one directory.
type ScanResult struct {
	Dir     string
	Entries int
	Folders int
	Bytes   int64
}

// ScanAll summarises dirs concurrently, at most limit at a time (no bound
// when limit <= 0). Each worker gets its own thread context, so entry names
// are copied into scratch memory no other goroutine touches. The first
// failure cancels the remaining scans.
func ScanAll(ctx context.Context, dirs []str.String, limit int, opts ...tctx.Option) ([]ScanResult, error) {
	results := make([]ScanResult, len(dirs))
	g, _ := tctx.WithGroup(ctx, opts...)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, dir := range dirs {
		g.Go(func(ctx context.Context) error {
			r, err := scan(ctx, dir)
			if err != nil {
				return fmt.Errorf("explorer: scan %s: %w", dir, err)
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func scan(ctx context.Context, dir str.String) (ScanResult, error) {
	r := ScanResult{Dir: dir.String()}
	s := tctx.ScratchGet(ctx)
	defer tctx.ScratchReturn(ctx, &s)

	it, err := osfs.Open(dir)
	if err != nil {
		return r, err
	}
	mark := s.Arena.Pos()
	for {
		if err := ctx.Err(); err != nil {
			it.Close()
			return r, err
		}
		s.Arena.DeallocTo(mark)
		_, props, ok := it.Next(s.Arena)
		if !ok {
			break
		}
		r.Entries++
		if props.IsFolder() {
			r.Folders++
		}
		r.Bytes += props.Size
	}
	return r, it.Close()
}
