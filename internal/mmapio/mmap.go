// Package mmapio reads regular files through a read-only memory mapping.
package mmapio

import (
	"bytes"
	"errors"
	"io"
	"os"

	mmap "github.com/edsrzf/mmap-go"
)

// ErrNotMappable is returned for sources that cannot be mapped: anything
// that is not a non-empty regular file. Callers fall back to plain reads.
var ErrNotMappable = errors.New("file cannot be memory-mapped")

// Source is a memory-mapped file read front to back.
type Source struct {
	file *os.File
	data mmap.MMap
	*bytes.Reader
}

func Open(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if !stat.Mode().IsRegular() || stat.Size() == 0 {
		f.Close()
		return nil, ErrNotMappable
	}
	if int64(int(stat.Size())) != stat.Size() {
		f.Close()
		return nil, errors.New("file is too large for arch")
	}

	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, err
	}

	return &Source{file: f, data: data, Reader: bytes.NewReader(data)}, nil
}

// Name returns the path the source was opened with.
func (s *Source) Name() string {
	return s.file.Name()
}

// Close unmaps the file and closes it. The first failure is returned.
func (s *Source) Close() error {
	err := s.data.Unmap()
	if cerr := s.file.Close(); err == nil {
		err = cerr
	}
	return err
}

var _ io.ReadCloser = &Source{}
