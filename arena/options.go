package arena

const (
	// DefaultMax is the default reservation ceiling (1 GiB).
	DefaultMax = 1 << 30
	// DefaultCommitSize is the default commit granularity (8 KiB).
	DefaultCommitSize = 8 << 10
)

// Option configures an Arena during creation.
//
// Example:
//
//	a := arena.New(arena.WithMax(64<<20), arena.WithCommitSize(64<<10))
type Option func(*options)

type options struct {
	max        int
	commitSize int
	buf        []byte
	fixed      bool
}

func defaultOptions() options {
	return options{
		max:        DefaultMax,
		commitSize: DefaultCommitSize,
	}
}

// WithMax sets the reservation ceiling. Values <= 0 keep DefaultMax.
func WithMax(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.max = n
		}
	}
}

// WithCommitSize sets the chunk size the commit cursor advances by.
// Values <= 0 keep DefaultCommitSize.
func WithCommitSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.commitSize = n
		}
	}
}

// WithBuffer makes the arena allocate from buf instead of reserving its own
// address range. The ceiling becomes len(buf) and Free does not touch buf.
// A nil or empty buf gives an arena that cannot allocate.
func WithBuffer(buf []byte) Option {
	return func(o *options) {
		o.buf = buf
		o.fixed = true
	}
}
