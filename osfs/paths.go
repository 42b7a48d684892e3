package osfs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pavanmanishd/fexp/arena"
	"github.com/pavanmanishd/fexp/str"
)

// SystemPath names a well-known directory.
type SystemPath int

const (
	CurrentDir SystemPath = iota
	BinaryDir
	UserData
	TempData
)

func (p SystemPath) String() string {
	switch p {
	case CurrentDir:
		return "current"
	case BinaryDir:
		return "binary"
	case UserData:
		return "userdata"
	case TempData:
		return "temp"
	default:
		return fmt.Sprintf("SystemPath(%d)", int(p))
	}
}

// Path returns the directory named by kind, slash-separated, in a.
func Path(a *arena.Arena, kind SystemPath) (str.String, error) {
	var (
		dir string
		err error
	)
	switch kind {
	case CurrentDir:
		dir, err = os.Getwd()
	case BinaryDir:
		if dir, err = os.Executable(); err == nil {
			dir = filepath.Dir(dir)
		}
	case UserData:
		dir, err = os.UserConfigDir()
	case TempData:
		dir = os.TempDir()
	default:
		err = fmt.Errorf("osfs: unknown system path %v", kind)
	}
	if err != nil {
		return nil, err
	}
	return str.Copy(a, str.Lit(filepath.ToSlash(dir))), nil
}
