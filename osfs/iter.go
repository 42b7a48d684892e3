package osfs

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pavanmanishd/fexp/arena"
	"github.com/pavanmanishd/fexp/str"
)

// Iterator walks the entries of one directory. Names are copied into the
// arena passed to Next, so they outlive the iterator but not the arena.
type Iterator interface {
	Next(a *arena.Arena) (str.String, Properties, bool)
	Close() error
}

// readBatch is how many entries are pulled from the OS per ReadDir call.
const readBatch = 64

type dirIterator struct {
	dir     string
	f       *os.File
	pattern string
	batch   []fs.DirEntry
	err     error
}

// Open iterates over every entry of dir.
func Open(dir str.String) (Iterator, error) {
	return open(dir.String(), "")
}

// OpenPattern iterates over the entries matching a "dir/pattern" string, where
// pattern uses filepath.Match syntax ("dir/*" lists everything). An empty
// dir means the root directory.
func OpenPattern(glob str.String) (Iterator, error) {
	s := glob.String()
	dir, pattern := ".", s
	if i := lastSep(s); i >= 0 {
		dir, pattern = s[:i], s[i+1:]
		if dir == "" {
			dir = "/"
		}
	}
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, err
	}
	if pattern == "*" {
		pattern = ""
	}
	return open(dir, pattern)
}

func lastSep(s string) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '/' || s[i] == '\\' {
			return i
		}
	}
	return -1
}

func open(dir, pattern string) (*dirIterator, error) {
	f, err := os.Open(dir)
	if err != nil {
		return nil, err
	}
	arena.Logger().Debug("osfs: open", "dir", dir, "pattern", pattern)
	return &dirIterator{dir: dir, f: f, pattern: pattern}, nil
}

// Next returns the next matching entry. It returns false once the directory
// is exhausted or a read fails; Close reports the failure.
func (it *dirIterator) Next(a *arena.Arena) (str.String, Properties, bool) {
	for {
		if len(it.batch) == 0 {
			if it.err != nil || it.f == nil {
				return nil, Properties{}, false
			}
			it.batch, it.err = it.f.ReadDir(readBatch)
			if len(it.batch) == 0 {
				return nil, Properties{}, false
			}
		}
		e := it.batch[0]
		it.batch = it.batch[1:]

		name := e.Name()
		if it.pattern != "" {
			if ok, _ := filepath.Match(it.pattern, name); !ok {
				continue
			}
		}
		fi, err := e.Info()
		if err != nil {
			// Removed between ReadDir and Info.
			continue
		}
		return str.Copy(a, str.Lit(name)), propertiesOf(filepath.Join(it.dir, name), fi), true
	}
}

func (it *dirIterator) Close() error {
	if it.f == nil {
		return nil
	}
	err := it.f.Close()
	it.f = nil
	if it.err != nil && !errors.Is(it.err, io.EOF) {
		return it.err
	}
	return err
}
