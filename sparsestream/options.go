package sparsestream

import "github.com/0xRadioAc7iv/go-sparsestream/internal"

type Option func(*internal.Config)

// WithChunkSize sets the chunk size. Encoder and decoder must agree on it.
func WithChunkSize(size int) Option {
	return func(c *internal.Config) {
		c.ChunkSize = size
	}
}

// WithWriteOffset starts the decoded or filtered output offset bytes into
// the target.
func WithWriteOffset(offset int64) Option {
	return func(c *internal.Config) {
		c.WriteOffset = offset
	}
}

// WithSequentialTarget makes decoding write zeros for skipped chunks even
// when the target could seek.
func WithSequentialTarget() Option {
	return func(c *internal.Config) {
		c.Sequential = true
	}
}

// WithTruncate truncates regular-file targets before anything is written.
func WithTruncate() Option {
	return func(c *internal.Config) {
		c.Truncate = true
	}
}

// WithProgress draws a progress bar on stderr while a file source of known
// size is consumed.
func WithProgress() Option {
	return func(c *internal.Config) {
		c.Progress = true
	}
}

// WithMmap memory-maps regular-file sources of the reporters.
func WithMmap() Option {
	return func(c *internal.Config) {
		c.Mmap = true
	}
}
