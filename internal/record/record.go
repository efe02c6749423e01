package record

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"

	"github.com/0xRadioAc7iv/go-sparsestream/internal/chunkio"
)

// Record is one unit of the encoded stream: the ordinal of a chunk in the
// logical stream and that chunk's bytes.
//
// Data is exactly one chunk long for every record except possibly the last
// record of a stream, which carries only the bytes of a trailing partial
// chunk.
type Record struct {
	Index uint64 // Chunk ordinal, byte offset = Index * chunk size
	Data  []byte
}

// Index (8)
const IndexSizeBytes = 8

// ByteOrder is the byte order of the index field. It is fixed rather than
// host-native so streams move between hosts of either endianness.
var ByteOrder = binary.LittleEndian

var (
	// ErrPartialIndex is returned when the stream ends inside an index field.
	ErrPartialIndex = errors.New("stream ends inside a chunk index")

	// ErrShortRecord is returned when a record has no chunk data after its index.
	ErrShortRecord = errors.New("record has no chunk data")
)

// PutIndex encodes index into the first IndexSizeBytes bytes of dst.
func PutIndex(dst []byte, index uint64) {
	ByteOrder.PutUint64(dst, index)
}

// Index decodes an index field from the first IndexSizeBytes bytes of src.
func Index(src []byte) uint64 {
	return ByteOrder.Uint64(src)
}

// ReadIndex reads the next index field from r.
//
// It returns io.EOF when r is exhausted exactly at a record boundary, which
// is the only clean end of an encoded stream, and ErrPartialIndex when only
// part of an index could be read.
func ReadIndex(r io.Reader, scratch *[IndexSizeBytes]byte) (uint64, error) {
	n, err := chunkio.ReadChunk(r, scratch[:])
	if err != nil {
		return 0, err
	}

	switch {
	case n == 0:
		return 0, io.EOF
	case n < IndexSizeBytes:
		return 0, ErrPartialIndex
	}

	return Index(scratch[:]), nil
}

// EncodeRecordToBytes serializes a record into its wire format:
//
//	<index:uint64 little-endian><data>
func EncodeRecordToBytes(record *Record) ([]byte, error) {
	buf := &bytes.Buffer{}
	buf.Grow(IndexSizeBytes + len(record.Data))

	if err := binary.Write(buf, ByteOrder, record.Index); err != nil {
		return nil, err
	}
	if _, err := buf.Write(record.Data); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// DecodeRecordsFromBytes splits an encoded stream held in memory into its
// records. Every record but the last must carry exactly chunkSize bytes.
func DecodeRecordsFromBytes(data []byte, chunkSize int) ([]Record, error) {
	var records []Record
	var scratch [IndexSizeBytes]byte

	r := bytes.NewReader(data)
	for {
		index, err := ReadIndex(r, &scratch)
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return nil, err
		}

		chunk := make([]byte, chunkSize)
		n, err := chunkio.ReadChunk(r, chunk)
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, ErrShortRecord
		}

		records = append(records, Record{Index: index, Data: chunk[:n]})
	}
}
