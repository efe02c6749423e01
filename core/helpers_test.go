package core_test

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/0xRadioAc7iv/go-sparsestream/core"
	"github.com/0xRadioAc7iv/go-sparsestream/internal"
)

// memTarget is an in-memory random-access target. Bytes never written read
// back as zero, like the holes of a sparse file.
type memTarget struct {
	data  []byte
	pos   int64
	seeks int
}

func (m *memTarget) Write(p []byte) (int, error) {
	end := m.pos + int64(len(p))
	if end > int64(len(m.data)) {
		m.data = append(m.data, make([]byte, end-int64(len(m.data)))...)
	}
	copy(m.data[m.pos:], p)
	m.pos = end
	return len(p), nil
}

func (m *memTarget) Seek(offset int64, whence int) (int64, error) {
	if whence != io.SeekStart || offset < 0 {
		return 0, errors.New("unsupported seek")
	}
	m.seeks++
	m.pos = offset
	return offset, nil
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) { return 0, errors.New("disk full") }

type noSeek struct{ memTarget }

func (n *noSeek) Seek(offset int64, whence int) (int64, error) {
	return 0, errors.New("illegal seek")
}

func newSession(t *testing.T, chunkSize int) *core.Session {
	t.Helper()

	cfg := internal.DefaultConfig()
	cfg.ChunkSize = chunkSize

	s, err := core.NewSession(cfg)
	require.NoError(t, err)
	return s
}

// chunks builds a stream from per-chunk fill bytes: 0 yields a zero chunk,
// anything else a chunk whose middle byte is that value.
func chunks(size int, fills ...byte) []byte {
	out := make([]byte, 0, size*len(fills))
	for _, f := range fills {
		c := make([]byte, size)
		c[size/2] = f
		out = append(out, c...)
	}
	return out
}

func encode(t *testing.T, s *core.Session, input []byte) []byte {
	t.Helper()

	var out bytes.Buffer
	_, err := s.Encode(bytes.NewReader(input), &out)
	require.NoError(t, err)
	return out.Bytes()
}
