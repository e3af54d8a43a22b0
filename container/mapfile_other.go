//go:build !unix

package container

import "os"

// MapFile reads path into memory in full. Platforms without the unix build
// tag have no portable mmap in golang.org/x/sys, so this falls back to a
// plain read — Decode's contract (a []byte) is identical either way.
func MapFile(path string) ([]byte, func() error, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	return data, func() error { return nil }, nil
}
