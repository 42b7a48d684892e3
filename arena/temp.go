package arena

// Temp is a saved cursor position. Ending it rewinds the arena to where it
// was when BeginTemp was called, discarding everything allocated since.
//
//	t := a.BeginTemp()
//	defer t.End()
type Temp struct {
	arena *Arena
	pos   int
}

// BeginTemp records the current cursor.
func (a *Arena) BeginTemp() Temp {
	a.panicIfFreed()
	return Temp{arena: a, pos: a.pos}
}

// Arena returns the arena the marker belongs to.
func (t Temp) Arena() *Arena { return t.arena }

// Pos returns the saved cursor.
func (t Temp) Pos() int { return t.pos }

// End rewinds the arena to the saved cursor. Ending a marker after the arena
// was rewound below it panics with ErrInvalidRewind.
func (t Temp) End() {
	t.arena.DeallocTo(t.pos)
}
