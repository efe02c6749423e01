package core

import (
	"fmt"
	"io"

	"github.com/0xRadioAc7iv/go-sparsestream/internal/chunk"
	"github.com/0xRadioAc7iv/go-sparsestream/internal/chunkio"
)

// SparsenessReport counts the chunks of one stream an encoder would have to
// keep (Used) and those it could drop (Free).
type SparsenessReport struct {
	ChunkSize int
	Used      uint64
	Free      uint64
}

func (r SparsenessReport) Total() uint64 {
	return r.Used + r.Free
}

// Percent returns the used share of all chunks, or 0 for an empty stream.
func (r SparsenessReport) Percent() float64 {
	return percent(r.Used, r.Total())
}

// DeltaReport counts the chunks that differ between a base stream and a
// result stream.
type DeltaReport struct {
	ChunkSize int
	Differing uint64
	Total     uint64
}

// Percent returns the differing share of all chunks, or 0 for an empty
// result stream.
func (r DeltaReport) Percent() float64 {
	return percent(r.Differing, r.Total)
}

func percent(part, total uint64) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) * 100.0 / float64(total)
}

// CheckSparseness classifies every chunk of src as used or free.
//
// The counts match what Encode would emit for the same input: a final zero
// chunk on a chunk boundary is counted as used because the encoder has to
// keep it to preserve the length, and a trailing partial chunk is always
// used.
func (s *Session) CheckSparseness(src io.Reader) (SparsenessReport, error) {
	report := SparsenessReport{ChunkSize: s.cfg.ChunkSize}

	s.reset()

	for {
		n, err := chunkio.ReadChunk(src, s.buf)
		if err != nil {
			return report, fmt.Errorf("%w: chunk %d: %w", ErrRead, s.index, err)
		}

		if n < len(s.buf) {
			if _, _, ok := s.terminal(n); ok {
				report.Used++
				if n == 0 {
					report.Free--
				}
			}
			return report, nil
		}

		s.lastUsed = chunk.IsUsed(s.buf)
		if s.lastUsed {
			report.Used++
		} else {
			report.Free++
		}
		s.index++
	}
}

// CheckDelta compares base and result chunk by chunk.
//
// The comparison runs until result is exhausted. A result shorter than base
// fails with ErrLengthMismatch; a result longer than base is compared
// against zeros. The report holds the counts gathered so far even when an
// error is returned.
func (s *Session) CheckDelta(base, result io.Reader) (DeltaReport, error) {
	report := DeltaReport{ChunkSize: s.cfg.ChunkSize}

	s.reset()

	for {
		// Short reads leave the tail of a buffer untouched, so it must be
		// zero before every fill. Most chunks of sparse images already are.
		if chunk.IsUsed(s.buf) {
			chunkio.Zero(s.buf)
		}
		if chunk.IsUsed(s.other) {
			chunkio.Zero(s.other)
		}

		nb, err := chunkio.ReadChunk(base, s.buf)
		if err != nil {
			return report, fmt.Errorf("%w: %w: chunk %d: %w", ErrRead, ErrBaseStream, s.index, err)
		}
		nr, err := chunkio.ReadChunk(result, s.other)
		if err != nil {
			return report, fmt.Errorf("%w: %w: chunk %d: %w", ErrRead, ErrResultStream, s.index, err)
		}

		if nb > nr {
			return report, fmt.Errorf("%w: at chunk %d", ErrLengthMismatch, s.index)
		}
		if nr == 0 {
			return report, nil
		}

		report.Total++
		if chunk.Differ(s.buf, s.other) {
			report.Differing++
		}
		s.index++
	}
}
