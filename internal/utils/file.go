package utils

import (
	"errors"
	"io"
	"os"

	"github.com/0xRadioAc7iv/go-sparsestream/internal/mmapio"
)

// TargetFileMode is the permission set of newly created targets:
// owner rw, group rw, others r.
const TargetFileMode = 0664

// Source is an opened input stream.
type Source struct {
	io.ReadCloser
	Name  string
	Size  int64 // -1 when unknown
	Stdio bool  // Standard input, owned by the process and never closed
}

// Close closes the source unless it is standard input.
func (s *Source) Close() error {
	if s.Stdio {
		return nil
	}
	return s.ReadCloser.Close()
}

// OpenSource opens path for reading, or standard input for "-". With
// useMmap, regular files are memory-mapped; anything that cannot be mapped
// is read normally.
func OpenSource(path string, useMmap bool) (*Source, error) {
	if path == StdioPath {
		return &Source{ReadCloser: os.Stdin, Name: "stdin", Size: -1, Stdio: true}, nil
	}

	if useMmap {
		m, err := mmapio.Open(path)
		if err == nil {
			log.Debugf("memory-mapped %s (%d bytes)", path, m.Size())
			return &Source{ReadCloser: m, Name: m.Name(), Size: m.Size()}, nil
		}
		if !errors.Is(err, mmapio.ErrNotMappable) {
			return nil, err
		}
		log.Debugf("%s cannot be memory-mapped, reading it instead", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	size := int64(-1)
	if stat, err := f.Stat(); err == nil && stat.Mode().IsRegular() {
		size = stat.Size()
	}

	return &Source{ReadCloser: f, Name: path, Size: size}, nil
}

// OpenTarget opens path for writing, creating it if needed. Existing
// contents are kept (holes in the output show whatever was there before)
// unless truncate is set and the target is a regular file.
func OpenTarget(path string, truncate bool) (*os.File, error) {
	if !PathExists(path) {
		log.Debugf("creating target %s", path)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE, TargetFileMode)
	if err != nil {
		return nil, err
	}

	if truncate {
		stat, err := f.Stat()
		if err != nil {
			f.Close()
			return nil, err
		}
		if stat.Mode().IsRegular() {
			if err := TruncateAt(f, 0); err != nil {
				f.Close()
				return nil, err
			}
		}
	}

	return f, nil
}

// Truncates a file at a given offset
func TruncateAt(f *os.File, offset int64) error {
	if err := f.Truncate(offset); err != nil {
		return err
	}
	return f.Sync()
}

// Indicates if the given path exists or not (works for both files and directories)
func PathExists(filepath string) bool {
	_, err := os.Stat(filepath)
	return err == nil
}
