package core

import (
	"fmt"
	"math"

	logging "github.com/ipfs/go-log/v2"

	"github.com/0xRadioAc7iv/go-sparsestream/internal"
)

var log = logging.Logger("sparsestream/core")

// Session owns the buffers and cursors of one codec run. Operations on a
// Session are sequential; a Session must not be used from more than one
// goroutine at a time, but it may be reused for any number of runs.
type Session struct {
	cfg internal.Config

	buf   []byte // current chunk
	other []byte // result-side chunk of a delta comparison
	zero  []byte // always all zero

	index    uint64 // ordinal of the chunk being processed
	lastUsed bool   // whether the last full chunk held a non-zero byte
}

// NewSession validates cfg and allocates the session's chunk buffers.
func NewSession(cfg *internal.Config) (*Session, error) {
	if cfg == nil {
		cfg = internal.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Session{
		cfg:   *cfg,
		buf:   make([]byte, cfg.ChunkSize),
		other: make([]byte, cfg.ChunkSize),
		zero:  make([]byte, cfg.ChunkSize),
	}, nil
}

// ChunkSize returns the chunk size the session was configured with.
func (s *Session) ChunkSize() int {
	return s.cfg.ChunkSize
}

func (s *Session) reset() {
	s.index = 0
	s.lastUsed = false
	clear(s.buf)
	clear(s.other)
}

// terminal decides what has to be written once the source is exhausted,
// given the byte count n of the final (short) read.
//
// A trailing partial chunk is always kept so the output has the exact input
// length. When the input ended on a chunk boundary with a zero chunk, that
// chunk was skipped, so a zero chunk is re-emitted at its index: the output
// length is implied by the highest index written. Empty input needs nothing.
func (s *Session) terminal(n int) (index uint64, data []byte, ok bool) {
	if n > 0 {
		log.Debugf("trailing partial chunk of %d bytes at index %d", n, s.index)
		return s.index, s.buf[:n], true
	}
	if s.index > 0 && !s.lastUsed {
		log.Debugf("terminal zero chunk at index %d", s.index-1)
		return s.index - 1, s.zero, true
	}
	return 0, nil, false
}

// offsetOf maps a chunk index to its byte position on a random-access
// target.
func (s *Session) offsetOf(index uint64) (int64, error) {
	size := uint64(s.cfg.ChunkSize)
	limit := (uint64(math.MaxInt64) - uint64(s.cfg.WriteOffset)) / size
	if index > limit {
		return 0, fmt.Errorf("%w: chunk index %d is beyond the largest file offset", ErrSeek, index)
	}
	return int64(index*size) + s.cfg.WriteOffset, nil
}
