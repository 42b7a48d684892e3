//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly || windows)

package vmem

// Platforms without a reserve/commit API fall back to a heap slice that is
// fully backed up front.

func reserve(size int) ([]byte, error) { return make([]byte, size), nil }

func commit([]byte, int, int) error { return nil }

func decommit(mem []byte, start, end int) error {
	clear(mem[start:end])
	return nil
}

func release([]byte) error { return nil }
