// Package tctx provides per-worker thread contexts: one general-purpose
// arena plus a pool of scratch arenas leased for transient work.
//
// Go has no thread-local storage, so a ThreadContext belongs to exactly one
// goroutine and travels with it explicitly, usually inside a context.Context:
//
//	err := tctx.Run(ctx, func(ctx context.Context) error {
//		s := tctx.ScratchGet(ctx)
//		defer tctx.ScratchReturn(ctx, &s)
//		name := str.Cat(s.Arena, dir, str.Lit("/*"))
//		...
//	})
//
// Scratch slots are created lazily, one arena per slot, and recycled through
// a free list. Nested leases always receive distinct slots. After warm-up
// leasing and returning never allocate. Nothing here locks: a context must
// not be shared between goroutines.
package tctx
