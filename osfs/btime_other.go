//go:build !linux

package osfs

import (
	"io/fs"
	"time"
)

func createTime(_ string, fi fs.FileInfo) time.Time {
	return fi.ModTime()
}
