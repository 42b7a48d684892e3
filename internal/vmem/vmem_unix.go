//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package vmem

import "golang.org/x/sys/unix"

func reserve(size int) ([]byte, error) {
	return unix.Mmap(-1, 0, size, unix.PROT_NONE, unix.MAP_PRIVATE|unix.MAP_ANON)
}

func commit(mem []byte, start, end int) error {
	return unix.Mprotect(mem[start:end], unix.PROT_READ|unix.PROT_WRITE)
}

func decommit(mem []byte, start, end int) error {
	if err := unix.Madvise(mem[start:end], unix.MADV_DONTNEED); err != nil {
		return err
	}
	return unix.Mprotect(mem[start:end], unix.PROT_NONE)
}

func release(mem []byte) error {
	return unix.Munmap(mem)
}
