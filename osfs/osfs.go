// Package osfs is the file-system layer: directory iteration, whole-file
// reads into arena memory, file properties and well-known directories.
package osfs

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/pavanmanishd/fexp/arena"
	"github.com/pavanmanishd/fexp/str"
)

// PropertyFlags describe what kind of entry a file is.
type PropertyFlags uint32

const (
	FlagFolder PropertyFlags = 1 << iota
)

// Access is the owner's permission set.
type Access uint32

const (
	AccessRead Access = 1 << iota
	AccessWrite
	AccessExec
)

// Properties describes one directory entry.
type Properties struct {
	Size       int64
	CreateTime time.Time
	ModifyTime time.Time
	Flags      PropertyFlags
	Access     Access
}

// IsFolder reports whether the entry is a directory.
func (p Properties) IsFolder() bool { return p.Flags&FlagFolder != 0 }

func propertiesOf(path string, fi fs.FileInfo) Properties {
	p := Properties{
		Size:       fi.Size(),
		ModifyTime: fi.ModTime(),
		CreateTime: createTime(path, fi),
	}
	if fi.IsDir() {
		p.Flags |= FlagFolder
		p.Size = 0
	}
	perm := fi.Mode().Perm()
	if perm&0o400 != 0 {
		p.Access |= AccessRead
	}
	if perm&0o200 != 0 {
		p.Access |= AccessWrite
	}
	if perm&0o100 != 0 {
		p.Access |= AccessExec
	}
	return p
}

// Stat returns the properties of name.
func Stat(name str.String) (Properties, error) {
	path := name.String()
	fi, err := os.Stat(path)
	if err != nil {
		return Properties{}, err
	}
	return propertiesOf(path, fi), nil
}

// Exists reports whether name can be stat'ed.
func Exists(name str.String) bool {
	_, err := os.Stat(name.String())
	return err == nil
}

// readChunk is the growth step for files that report no size.
const readChunk = 4 << 10

// Read reads the whole file into a. Files that report a zero size, such as
// those under /proc, are read in chunks grown in place.
func Read(a *arena.Arena, name str.String) (str.String, error) {
	f, err := os.Open(name.String())
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if fi.IsDir() {
		return nil, fmt.Errorf("osfs: read %s: is a directory", name)
	}
	if size := fi.Size(); size > 0 {
		if size > int64(a.Remaining()) {
			return nil, fmt.Errorf("osfs: read %s: %d bytes do not fit in arena (%d left): %w",
				name, size, a.Remaining(), arena.ErrExhausted)
		}
		buf := str.Alloc(a, int(size))
		n, err := io.ReadFull(f, buf)
		if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, err
		}
		return buf[:n:n], nil
	}

	start := a.Pos()
	buf := a.Alloc(min(readChunk, a.Remaining()))
	n := 0
	for {
		if n == len(buf) {
			if a.Remaining() == 0 {
				a.DeallocTo(start)
				return nil, fmt.Errorf("osfs: read %s: %w", name, arena.ErrExhausted)
			}
			buf = a.Raise(buf, min(readChunk, a.Remaining()))
		}
		m, err := f.Read(buf[n:])
		n += m
		if err == io.EOF {
			break
		}
		if err != nil {
			a.DeallocTo(start)
			return nil, err
		}
	}
	a.Dealloc(len(buf) - n)
	return str.String(buf[:n:n]), nil
}

// Write replaces the contents of name with data, creating it if needed.
func Write(name, data str.String) error {
	return os.WriteFile(name.String(), data, 0o644)
}

// WriteList writes every node of l to name in order.
func WriteList(name str.String, l *str.List) error {
	f, err := os.Create(name.String())
	if err != nil {
		return err
	}
	for s := range l.All() {
		if _, err := f.Write(s); err != nil {
			f.Close()
			return err
		}
	}
	return f.Close()
}
