package core_test

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/require"

	"github.com/0xRadioAc7iv/go-sparsestream/core"
	"github.com/0xRadioAc7iv/go-sparsestream/internal"
	"github.com/0xRadioAc7iv/go-sparsestream/internal/record"
)

func roundTripInputs(size int) map[string][]byte {
	partial := func(n int) []byte {
		b := chunks(size, 0, 7)
		tail := make([]byte, n)
		tail[0] = 9
		return append(b, tail...)
	}

	return map[string][]byte{
		"empty":                      {},
		"one zero chunk":             chunks(size, 0),
		"one non-zero chunk":         chunks(size, 1),
		"interior zero chunks":       chunks(size, 1, 0, 0, 2, 0, 3),
		"exact multiple ending zero": chunks(size, 5, 0, 0),
		"leading zero chunks":        chunks(size, 0, 0, 4),
		"partial tail of 1 byte":     partial(1),
		"partial tail of size-1":     partial(size - 1),
		"zero partial tail":          append(chunks(size, 3), make([]byte, 5)...),
		"only a partial chunk":       {0, 0, 1},
		"only a zero partial chunk":  make([]byte, size/2),
	}
}

func TestRoundTrip(t *testing.T) {
	for _, size := range []int{core.ChunkSize, 16} {
		for name, input := range roundTripInputs(size) {
			t.Run(name, func(t *testing.T) {
				s := newSession(t, size)
				encoded := encode(t, s, input)

				t.Run("sequential target", func(t *testing.T) {
					var out bytes.Buffer
					_, err := s.Decode(bytes.NewReader(encoded), &out)
					require.NoError(t, err)
					require.Equal(t, len(input), out.Len())
					require.True(t, bytes.Equal(input, out.Bytes()))
				})

				t.Run("random-access target", func(t *testing.T) {
					out := &memTarget{}
					_, err := s.Decode(bytes.NewReader(encoded), out)
					require.NoError(t, err)
					require.Equal(t, len(input), len(out.data))
					require.True(t, bytes.Equal(input, out.data))
				})

				t.Run("short reads", func(t *testing.T) {
					var reencoded bytes.Buffer
					_, err := s.Encode(iotest.HalfReader(bytes.NewReader(input)), &reencoded)
					require.NoError(t, err)
					require.Equal(t, encoded, reencoded.Bytes())

					var out bytes.Buffer
					_, err = s.Decode(iotest.OneByteReader(bytes.NewReader(encoded)), &out)
					require.NoError(t, err)
					require.True(t, bytes.Equal(input, out.Bytes()))
				})
			})
		}
	}
}

func TestEncodeRecords(t *testing.T) {
	const size = 16
	s := newSession(t, size)

	t.Run("empty input encodes to nothing", func(t *testing.T) {
		require.Empty(t, encode(t, s, nil))
	})

	t.Run("zero chunks are omitted", func(t *testing.T) {
		records, err := record.DecodeRecordsFromBytes(encode(t, s, chunks(size, 0, 1, 0, 2)), size)
		require.NoError(t, err)
		require.Len(t, records, 2)
		require.EqualValues(t, 1, records[0].Index)
		require.EqualValues(t, 3, records[1].Index)
	})

	t.Run("terminal zero chunk is re-emitted", func(t *testing.T) {
		records, err := record.DecodeRecordsFromBytes(encode(t, s, chunks(size, 1, 0, 0)), size)
		require.NoError(t, err)
		require.Len(t, records, 2)
		require.EqualValues(t, 2, records[1].Index)
		require.Equal(t, make([]byte, size), records[1].Data)
	})

	t.Run("partial tail is short on the wire", func(t *testing.T) {
		input := append(chunks(size, 0), 0, 0, 0)
		encoded := encode(t, s, input)
		require.Len(t, encoded, record.IndexSizeBytes+3)
		require.EqualValues(t, 1, binary.LittleEndian.Uint64(encoded))
	})

	t.Run("stats", func(t *testing.T) {
		var out bytes.Buffer
		stats, err := s.Encode(bytes.NewReader(append(chunks(size, 1, 0), 1)), &out)
		require.NoError(t, err)
		require.EqualValues(t, 3, stats.Chunks)
		require.EqualValues(t, 2, stats.Records)
		require.EqualValues(t, 2*size+1, stats.BytesRead)
	})
}

func TestSessionChunkSize(t *testing.T) {
	require.Equal(t, 16, newSession(t, 16).ChunkSize())

	s, err := core.NewSession(nil)
	require.NoError(t, err)
	require.Equal(t, core.ChunkSize, s.ChunkSize())
}

func TestEncodeIdempotent(t *testing.T) {
	input := chunks(core.ChunkSize, 0, 9, 0, 0, 3, 0)
	a := encode(t, newSession(t, core.ChunkSize), input)
	b := encode(t, newSession(t, core.ChunkSize), input)
	require.Equal(t, a, b)
}

func TestEncodeErrors(t *testing.T) {
	s := newSession(t, 16)

	t.Run("read error", func(t *testing.T) {
		_, err := s.Encode(iotest.ErrReader(iotest.ErrTimeout), &bytes.Buffer{})
		require.ErrorIs(t, err, core.ErrRead)
		require.ErrorIs(t, err, iotest.ErrTimeout)
	})

	t.Run("write error", func(t *testing.T) {
		_, err := s.Encode(bytes.NewReader(chunks(16, 1)), failingWriter{})
		require.ErrorIs(t, err, core.ErrWrite)
	})
}

func TestDecodeWriteOffset(t *testing.T) {
	const size = 16
	input := append(chunks(size, 0, 1, 0), 2, 2)

	for _, offset := range []int64{0, 5, size, 3*size + 1} {
		cfg := internal.DefaultConfig()
		cfg.ChunkSize = size
		cfg.WriteOffset = offset
		s, err := core.NewSession(cfg)
		require.NoError(t, err)

		encoded := encode(t, s, input)
		want := append(make([]byte, offset), input...)

		var seq bytes.Buffer
		_, err = s.Decode(bytes.NewReader(encoded), &seq)
		require.NoError(t, err)
		require.Equal(t, want, seq.Bytes(), "sequential offset %d", offset)

		ra := &memTarget{}
		_, err = s.Decode(bytes.NewReader(encoded), ra)
		require.NoError(t, err)
		require.Equal(t, want, ra.data, "random-access offset %d", offset)
	}
}

func TestDecodeSequentialConfig(t *testing.T) {
	cfg := internal.DefaultConfig()
	cfg.ChunkSize = 16
	cfg.Sequential = true
	s, err := core.NewSession(cfg)
	require.NoError(t, err)

	input := chunks(16, 0, 0, 1)
	out := &memTarget{}
	stats, err := s.Decode(bytes.NewReader(encode(t, s, input)), out)
	require.NoError(t, err)
	require.Zero(t, out.seeks)
	require.EqualValues(t, 2, stats.GapChunks)
	require.Equal(t, input, out.data)
}

func TestDecodeMalformed(t *testing.T) {
	const size = 16
	s := newSession(t, size)

	t.Run("truncated index", func(t *testing.T) {
		var out bytes.Buffer
		_, err := s.Decode(bytes.NewReader([]byte{1, 0, 0}), &out)
		require.ErrorIs(t, err, core.ErrMalformed)
		require.ErrorIs(t, err, record.ErrPartialIndex)
	})

	t.Run("truncated index after a record", func(t *testing.T) {
		stream := append(encode(t, s, chunks(size, 1)), 0, 0, 0)
		_, err := s.Decode(bytes.NewReader(stream), &bytes.Buffer{})
		require.ErrorIs(t, err, core.ErrMalformed)
	})

	t.Run("index without data", func(t *testing.T) {
		_, err := s.Decode(bytes.NewReader(make([]byte, record.IndexSizeBytes)), &bytes.Buffer{})
		require.ErrorIs(t, err, core.ErrMalformed)
		require.ErrorIs(t, err, record.ErrShortRecord)
	})

	t.Run("decreasing index on sequential target", func(t *testing.T) {
		var stream []byte
		for _, index := range []uint64{3, 1} {
			encoded, err := record.EncodeRecordToBytes(&record.Record{Index: index, Data: bytes.Repeat([]byte{1}, size)})
			require.NoError(t, err)
			stream = append(stream, encoded...)
		}

		_, err := s.Decode(bytes.NewReader(stream), &bytes.Buffer{})
		require.ErrorIs(t, err, core.ErrMalformed)
		require.ErrorIs(t, err, core.ErrIndexOrder)

		// The same stream is fine when every record is placed by seeking.
		out := &memTarget{}
		_, err = s.Decode(bytes.NewReader(stream), out)
		require.NoError(t, err)
		require.Len(t, out.data, 4*size)
	})

	t.Run("repeated index on sequential target", func(t *testing.T) {
		encoded, err := record.EncodeRecordToBytes(&record.Record{Index: 0, Data: bytes.Repeat([]byte{1}, size)})
		require.NoError(t, err)
		stream := append(append([]byte(nil), encoded...), encoded...)

		_, err = s.Decode(bytes.NewReader(stream), &bytes.Buffer{})
		require.ErrorIs(t, err, core.ErrIndexOrder)
	})
}

func TestDecodeTargetErrors(t *testing.T) {
	const size = 16
	s := newSession(t, size)
	encoded := encode(t, s, chunks(size, 0, 1))

	t.Run("seek error", func(t *testing.T) {
		_, err := s.Decode(bytes.NewReader(encoded), &noSeek{})
		require.ErrorIs(t, err, core.ErrSeek)
	})

	t.Run("write error", func(t *testing.T) {
		_, err := s.Decode(bytes.NewReader(encoded), failingWriter{})
		require.ErrorIs(t, err, core.ErrWrite)
	})

	t.Run("index beyond largest offset", func(t *testing.T) {
		huge, err := record.EncodeRecordToBytes(&record.Record{Index: 1 << 62, Data: []byte{1}})
		require.NoError(t, err)
		_, err = s.Decode(bytes.NewReader(huge), &memTarget{})
		require.ErrorIs(t, err, core.ErrSeek)
	})

	t.Run("read error inside an index is malformed", func(t *testing.T) {
		r := iotest.TimeoutReader(iotest.OneByteReader(bytes.NewReader(encoded)))
		_, err := s.Decode(r, &bytes.Buffer{})
		require.ErrorIs(t, err, core.ErrMalformed)
		require.ErrorIs(t, err, iotest.ErrTimeout)
		require.NotErrorIs(t, err, core.ErrRead)
	})

	t.Run("read error after a partial index is malformed", func(t *testing.T) {
		r := io.MultiReader(bytes.NewReader([]byte{1, 0, 0}), iotest.ErrReader(iotest.ErrTimeout))
		_, err := s.Decode(r, &bytes.Buffer{})
		require.ErrorIs(t, err, core.ErrMalformed)
		require.NotErrorIs(t, err, core.ErrRead)
	})

	t.Run("read error inside chunk data", func(t *testing.T) {
		header := encoded[:record.IndexSizeBytes+3]
		r := io.MultiReader(bytes.NewReader(header), iotest.ErrReader(iotest.ErrTimeout))
		_, err := s.Decode(r, &bytes.Buffer{})
		require.ErrorIs(t, err, core.ErrRead)
		require.ErrorIs(t, err, iotest.ErrTimeout)
		require.NotErrorIs(t, err, core.ErrMalformed)
	})
}
