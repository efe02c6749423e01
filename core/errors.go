package core

import (
	"errors"

	"github.com/0xRadioAc7iv/go-sparsestream/internal"
)

// Errors returned by codec operations. Each is wrapped together with the
// underlying cause, so callers test for them with errors.Is.
var (
	ErrInvalidConfig  = internal.ErrInvalidConfig
	ErrOpen           = errors.New("open failed")
	ErrRead           = errors.New("read failed")
	ErrWrite          = errors.New("write failed")
	ErrSeek           = errors.New("seek failed")
	ErrMalformed      = errors.New("malformed encoded stream")
	ErrIndexOrder     = errors.New("chunk index moves backwards on a sequential target")
	ErrLengthMismatch = errors.New("base stream is longer than result stream")
	ErrClose          = errors.New("close failed")

	// Markers telling which handle an open or close error belongs to.
	ErrSource       = errors.New("source")
	ErrTarget       = errors.New("target")
	ErrBaseStream   = errors.New("base stream")
	ErrResultStream = errors.New("result stream")
)
