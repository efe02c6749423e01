// Package chunk classifies fixed-size chunks of a stream as used (holding at
// least one non-zero byte) or free.
//
// Both checks walk the buffer one native machine word at a time. The result
// is always identical to a byte-by-byte scan; any tail shorter than a word is
// checked byte by byte.
package chunk

import "encoding/binary"

// WordSize is the width in bytes of the words a chunk is scanned in.
const WordSize = 8

// IsUsed reports whether buf contains any non-zero byte. Words are OR-ed
// together and tested once at the end.
func IsUsed(buf []byte) bool {
	var rc uint64

	words := len(buf) / WordSize
	for i := 0; i < words; i++ {
		rc |= binary.NativeEndian.Uint64(buf[i*WordSize:])
	}
	for _, b := range buf[words*WordSize:] {
		rc |= uint64(b)
	}

	return rc != 0
}

// Differ reports whether a and b hold different bytes. Buffers of different
// lengths always differ.
func Differ(a, b []byte) bool {
	if len(a) != len(b) {
		return true
	}

	words := len(a) / WordSize
	for i := 0; i < words; i++ {
		off := i * WordSize
		if binary.NativeEndian.Uint64(a[off:]) != binary.NativeEndian.Uint64(b[off:]) {
			return true
		}
	}
	for i := words * WordSize; i < len(a); i++ {
		if a[i] != b[i] {
			return true
		}
	}

	return false
}
