package osfs

import (
	"errors"
	"os"
	"os/exec"
	"runtime"

	"github.com/pavanmanishd/fexp/arena"
	"github.com/pavanmanishd/fexp/str"
)

var (
	errIsDir  = errors.New("is a directory")
	errNotDir = errors.New("not a directory")
)

// Create creates an empty file. It fails if name already exists.
func Create(name str.String) error {
	f, err := os.OpenFile(name.String(), os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	return f.Close()
}

// Rename moves name to newName, replacing newName if it is a file.
func Rename(name, newName str.String) error {
	return os.Rename(name.String(), newName.String())
}

// Delete removes a file.
func Delete(name str.String) error {
	path := name.String()
	fi, err := os.Lstat(path)
	if err != nil {
		return err
	}
	if fi.IsDir() {
		return &os.PathError{Op: "delete", Path: path, Err: errIsDir}
	}
	return os.Remove(path)
}

// CreateDir creates a directory. Missing parents are an error.
func CreateDir(name str.String) error {
	return os.Mkdir(name.String(), 0o755)
}

// DeleteDir removes a directory and everything below it.
func DeleteDir(name str.String) error {
	path := name.String()
	fi, err := os.Lstat(path)
	if err != nil {
		return err
	}
	if !fi.IsDir() {
		return &os.PathError{Op: "delete dir", Path: path, Err: errNotDir}
	}
	return os.RemoveAll(path)
}

// launchCommand returns the command that opens path with the desktop's
// default application.
var launchCommand = func(path string) *exec.Cmd {
	switch runtime.GOOS {
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", path)
	case "darwin":
		return exec.Command("open", path)
	default:
		return exec.Command("xdg-open", path)
	}
}

// Launch opens a file or directory with the default application and does
// not wait for it to exit.
func Launch(name str.String) error {
	cmd := launchCommand(name.String())
	if err := cmd.Start(); err != nil {
		return err
	}
	arena.Logger().Debug("osfs: launched", "path", name.String(), "pid", cmd.Process.Pid)
	go cmd.Wait()
	return nil
}
