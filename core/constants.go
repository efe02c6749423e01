package core

import "github.com/0xRadioAc7iv/go-sparsestream/internal"

const (
	OneKibibyte = 1024
	OneMebibyte = 1024 * OneKibibyte // 1024 (1KiB) * 1024 => 1MiB

	ChunkSize = internal.DEFAULT_CHUNK_SIZE
)
