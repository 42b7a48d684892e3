package tctx

import "github.com/pavanmanishd/fexp/arena"

// Option configures a ThreadContext.
type Option func(*options)

type options struct {
	scratchSize      int
	arenaOpts        []arena.Option
	scratchArenaOpts []arena.Option
}

func defaultOptions() options {
	return options{scratchSize: DefaultScratchSize}
}

// WithScratchSize sets the reservation ceiling of every scratch slot.
// Values <= 0 keep DefaultScratchSize.
func WithScratchSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.scratchSize = n
		}
	}
}

// WithArenaOptions configures the general-purpose arena.
func WithArenaOptions(opts ...arena.Option) Option {
	return func(o *options) {
		o.arenaOpts = append(o.arenaOpts, opts...)
	}
}

// WithScratchCommitSize sets the commit granularity of scratch slots.
func WithScratchCommitSize(n int) Option {
	return func(o *options) {
		o.scratchArenaOpts = append(o.scratchArenaOpts, arena.WithCommitSize(n))
	}
}
