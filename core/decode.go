package core

import (
	"fmt"
	"io"

	"github.com/0xRadioAc7iv/go-sparsestream/internal/chunkio"
	"github.com/0xRadioAc7iv/go-sparsestream/internal/record"
)

// DecodeStats summarizes one Decode run.
type DecodeStats struct {
	Records      uint64 // Records read from the encoded stream
	GapChunks    uint64 // Zero chunks materialized on a sequential target
	BytesWritten int64  // Bytes written, including zero fill
}

// Decode reads an encoded stream from src and reconstructs the original
// bytes on dst, starting WriteOffset bytes into the target.
//
// When dst implements io.WriteSeeker (and the session is not configured as
// sequential) every record is placed with a seek, so chunks that were never
// emitted are left as holes. Otherwise the target is written front to back
// and every skipped chunk is written out as zeros; record indices must then
// strictly increase.
//
// Decode does not close dst.
func (s *Session) Decode(src io.Reader, dst io.Writer) (DecodeStats, error) {
	var stats DecodeStats
	var scratch [record.IndexSizeBytes]byte
	var cursor uint64 // next chunk index a sequential target is positioned at

	s.reset()

	seeker, random := dst.(io.WriteSeeker)
	random = random && !s.cfg.Sequential

	if !random && s.cfg.WriteOffset > 0 {
		if err := chunkio.WriteZeros(dst, s.zero, s.cfg.WriteOffset); err != nil {
			return stats, fmt.Errorf("%w: write offset fill: %w", ErrWrite, err)
		}
		stats.BytesWritten += s.cfg.WriteOffset
	}

	for {
		index, err := record.ReadIndex(src, &scratch)
		// A partial index and a source error inside an index both leave the
		// stream unframed.
		switch {
		case err == io.EOF:
			return stats, nil
		case err != nil:
			return stats, fmt.Errorf("%w: index after %d records: %w", ErrMalformed, stats.Records, err)
		}

		if random {
			offset, err := s.offsetOf(index)
			if err != nil {
				return stats, err
			}
			if _, err := seeker.Seek(offset, io.SeekStart); err != nil {
				return stats, fmt.Errorf("%w: chunk %d: %w", ErrSeek, index, err)
			}
		} else {
			if index < cursor {
				return stats, fmt.Errorf("%w: %w: index %d after %d", ErrMalformed, ErrIndexOrder, index, cursor-1)
			}
			if gap := index - cursor; gap > 0 {
				log.Debugf("zero-filling %d chunks before index %d", gap, index)
			}
			for ; cursor < index; cursor++ {
				if err := chunkio.WriteFull(dst, s.zero); err != nil {
					return stats, fmt.Errorf("%w: zero fill of chunk %d: %w", ErrWrite, cursor, err)
				}
				stats.GapChunks++
				stats.BytesWritten += int64(len(s.zero))
			}
		}

		n, err := chunkio.ReadChunk(src, s.buf)
		if err != nil {
			return stats, fmt.Errorf("%w: chunk %d: %w", ErrRead, index, err)
		}
		if n == 0 {
			return stats, fmt.Errorf("%w: chunk %d: %w", ErrMalformed, index, record.ErrShortRecord)
		}

		// A short read can only happen on the final record; only the bytes
		// actually present are written so the output keeps its exact length.
		if err := chunkio.WriteFull(dst, s.buf[:n]); err != nil {
			return stats, fmt.Errorf("%w: chunk %d: %w", ErrWrite, index, err)
		}

		stats.Records++
		stats.BytesWritten += int64(n)
		cursor = index + 1
	}
}
