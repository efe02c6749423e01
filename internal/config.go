package internal

import (
	"errors"
	"fmt"
)

// Config holds the settings a codec session runs with.
type Config struct {
	ChunkSize   int   // Bytes per chunk, a positive multiple of 8
	WriteOffset int64 // Bytes skipped on the target before chunk 0
	Sequential  bool  // Zero-fill gaps even when the target can seek
	Truncate    bool  // Truncate regular-file targets before writing
	Progress    bool  // Show a progress bar on stderr
	Mmap        bool  // Memory-map regular-file sources when possible
}

// DEFAULT_CHUNK_SIZE matches the block size of most filesystems and the
// page size of x86 processors.
const DEFAULT_CHUNK_SIZE = 4096

var ErrInvalidConfig = errors.New("invalid configuration")

func DefaultConfig() *Config {
	return &Config{
		ChunkSize: DEFAULT_CHUNK_SIZE,
	}
}

func (c *Config) Validate() error {
	if c.ChunkSize <= 0 || c.ChunkSize%8 != 0 {
		return fmt.Errorf("%w: chunk size %d is not a positive multiple of 8", ErrInvalidConfig, c.ChunkSize)
	}
	if c.WriteOffset < 0 {
		return fmt.Errorf("%w: negative write offset %d", ErrInvalidConfig, c.WriteOffset)
	}
	return nil
}
