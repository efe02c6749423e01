// Package chunkio moves whole chunks between streams, retrying short reads
// and short writes until the transfer is satisfied, fails, or (for reads)
// the stream ends.
package chunkio

import (
	"errors"
	"io"
)

// Readers returning (0, nil) this many times in a row are treated as broken.
const maxConsecutiveEmptyReads = 100

// ReadChunk fills buf from r.
//
// It returns the number of bytes read. A count smaller than len(buf) means
// the end of the stream was reached after that many bytes; a count of zero
// means the stream was already exhausted. io.EOF is never returned.
func ReadChunk(r io.Reader, buf []byte) (int, error) {
	filled := 0
	empty := 0

	for filled < len(buf) {
		n, err := r.Read(buf[filled:])
		filled += n

		if err != nil {
			if errors.Is(err, io.EOF) {
				return filled, nil
			}
			return filled, err
		}

		if n == 0 {
			empty++
			if empty >= maxConsecutiveEmptyReads {
				return filled, io.ErrNoProgress
			}
			continue
		}
		empty = 0
	}

	return filled, nil
}

// Zero clears buf. Callers that reuse a chunk buffer across partial reads
// call it so stale bytes never leak into a short chunk's padding.
func Zero(buf []byte) {
	clear(buf)
}
