package arena

import (
	"errors"
	"fmt"
)

// Sentinel errors carried by allocator panics. Recover the panic value and
// match it with errors.Is.
var (
	ErrReserve       = errors.New("arena: cannot reserve address space")
	ErrCommit        = errors.New("arena: cannot commit memory")
	ErrExhausted     = errors.New("arena: reservation exhausted")
	ErrOverflow      = errors.New("arena: size overflow")
	ErrInvalidRewind = errors.New("arena: invalid rewind position")
	ErrNotLast       = errors.New("arena: not the most recent allocation")
	ErrFreed         = errors.New("arena: use after Free")
)

// fatal logs and panics with an error wrapping sentinel.
func (a *Arena) fatal(sentinel error, format string, args ...any) {
	err := fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...))
	Logger().Error("arena: fatal", "err", err, "pos", a.pos, "committed", a.commitPos, "max", a.max)
	panic(err)
}
