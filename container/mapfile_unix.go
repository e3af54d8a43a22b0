//go:build unix

package container

import (
	"os"

	"golang.org/x/sys/unix"
)

// MapFile memory-maps path read-only and returns the mapped bytes plus a
// closer that unmaps them. This is the memory-mapping path spec.md §5
// calls for ("the container should be memory-mapped read-only where
// possible so that all seeks are pointer arithmetic"); it is a convenience
// constructor around Decode, which itself only needs a []byte.
func MapFile(path string) ([]byte, func() error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, nil, err
	}
	size := info.Size()
	if size == 0 {
		return nil, func() error { return nil }, nil
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, nil, err
	}
	closer := func() error { return unix.Munmap(data) }
	return data, closer, nil
}
