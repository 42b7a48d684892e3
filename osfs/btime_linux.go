package osfs

import (
	"io/fs"
	"time"

	"golang.org/x/sys/unix"
)

// createTime asks statx for the birth time; file systems that do not record
// one report the modification time instead.
func createTime(path string, fi fs.FileInfo) time.Time {
	var stx unix.Statx_t
	err := unix.Statx(unix.AT_FDCWD, path, 0, unix.STATX_BTIME, &stx)
	if err != nil || stx.Mask&unix.STATX_BTIME == 0 {
		return fi.ModTime()
	}
	return time.Unix(stx.Btime.Sec, int64(stx.Btime.Nsec))
}
