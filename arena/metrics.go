package arena

// SizeInUse returns the number of bytes between the start of the arena and
// the cursor, including alignment padding.
func (a *Arena) SizeInUse() int {
	return a.pos
}

// NumChunks returns how many commit chunks are currently committed.
func (a *Arena) NumChunks() int {
	if a.freed {
		return 0
	}
	return roundUp(a.commitPos, a.commitSize) / a.commitSize
}

// Capacity returns the committed size in bytes.
func (a *Arena) Capacity() int {
	return a.commitPos
}

// Utilization returns the ratio of bytes in use to committed bytes (0.0 to 1.0).
// Returns 0.0 if nothing is committed.
func (a *Arena) Utilization() float64 {
	if a.commitPos == 0 {
		return 0
	}
	return float64(a.pos) / float64(a.commitPos)
}

// Metrics returns a snapshot of arena statistics.
func (a *Arena) Metrics() ArenaMetrics {
	return ArenaMetrics{
		SizeInUse:   a.SizeInUse(),
		Capacity:    a.Capacity(),
		Reserved:    a.max,
		NumChunks:   a.NumChunks(),
		ChunkSize:   a.commitSize,
		Utilization: a.Utilization(),
		Fixed:       a.static,
	}
}

// ArenaMetrics contains statistical information about an arena.
type ArenaMetrics struct {
	SizeInUse   int     // Bytes below the cursor
	Capacity    int     // Committed bytes
	Reserved    int     // Reservation ceiling
	NumChunks   int     // Committed chunks
	ChunkSize   int     // Commit granularity
	Utilization float64 // Ratio of used to committed (0.0-1.0)
	Fixed       bool    // Allocates from an external buffer
}

// Metrics thread-safely returns a snapshot of arena statistics.
func (s *SafeArena) Metrics() ArenaMetrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Metrics()
}

