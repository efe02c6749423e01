package core

import (
	"fmt"
	"io"

	"github.com/0xRadioAc7iv/go-sparsestream/internal/chunk"
	"github.com/0xRadioAc7iv/go-sparsestream/internal/chunkio"
	"github.com/0xRadioAc7iv/go-sparsestream/internal/record"
)

// EncodeStats summarizes one Encode run.
type EncodeStats struct {
	Chunks    uint64 // Chunks read, counting a trailing partial chunk
	Records   uint64 // Records emitted
	BytesRead int64
}

// Encode reads src chunk by chunk and writes the encoded stream to dst.
//
// Every chunk holding a non-zero byte becomes a record. Once src is
// exhausted a final record is added when needed to preserve the exact
// input length; see terminal.
func (s *Session) Encode(src io.Reader, dst io.Writer) (EncodeStats, error) {
	var stats EncodeStats
	var header [record.IndexSizeBytes]byte

	s.reset()

	emit := func(index uint64, data []byte) error {
		record.PutIndex(header[:], index)
		if err := chunkio.WriteFull(dst, header[:]); err != nil {
			return fmt.Errorf("%w: index of chunk %d: %w", ErrWrite, index, err)
		}
		if err := chunkio.WriteFull(dst, data); err != nil {
			return fmt.Errorf("%w: chunk %d: %w", ErrWrite, index, err)
		}
		stats.Records++
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
				if err := emit(index, data); err != nil {
					return stats, err
				}
			}
			return stats, nil
		}

		stats.Chunks++
		s.lastUsed = chunk.IsUsed(s.buf)
		if s.lastUsed {
			if err := emit(s.index, s.buf); err != nil {
				return stats, err
			}
		}
		s.index++
	}
}
