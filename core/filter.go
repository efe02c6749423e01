package core

import (
	"fmt"
	"io"

	"github.com/0xRadioAc7iv/go-sparsestream/internal/chunk"
	"github.com/0xRadioAc7iv/go-sparsestream/internal/chunkio"
)

// FilterStats summarizes one Filter run.
type FilterStats struct {
	Chunks    uint64 // Chunks read, counting a trailing partial chunk
	Written   uint64 // Chunks written to the target
	BytesRead int64
}

// Filter copies src onto dst, skipping every all-zero chunk so the target
// keeps holes where the source had zeros. It applies the same end-of-stream
// rules as Encode, writing straight to the target instead of emitting
// records.
func (s *Session) Filter(src io.Reader, dst io.WriteSeeker) (FilterStats, error) {
	var stats FilterStats

	s.reset()

	writeAt := func(index uint64, data []byte) error {
		offset, err := s.offsetOf(index)
		if err != nil {
			return err
		}
		if _, err := dst.Seek(offset, io.SeekStart); err != nil {
			return fmt.Errorf("%w: chunk %d: %w", ErrSeek, index, err)
		}
		if err := chunkio.WriteFull(dst, data); err != nil {
			return fmt.Errorf("%w: chunk %d: %w", ErrWrite, index, err)
		}
		stats.Written++
		return nil
	}

	for {
		n, err := chunkio.ReadChunk(src, s.buf)
		stats.BytesRead += int64(n)
		if err != nil {
			return stats, fmt.Errorf("%w: chunk %d: %w", ErrRead, s.index, err)
		}

		if n < len(s.buf) {
			if n > 0 {
				stats.Chunks++
			}
			if index, data, ok := s.terminal(n); ok {
				if err := writeAt(index, data); err != nil {
					return stats, err
				}
			}
			return stats, nil
		}

		stats.Chunks++
		s.lastUsed = chunk.IsUsed(s.buf)
		if s.lastUsed {
			if err := writeAt(s.index, s.buf); err != nil {
				return stats, err
			}
		}
		s.index++
	}
}
