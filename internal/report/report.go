// Package report renders sparseness and delta statistics, either for people
// or as a single machine-parsable line (batch mode).
package report

import (
	"fmt"
	"io"

	"github.com/0xRadioAc7iv/go-sparsestream/core"
)

// chunkLabel names a chunk size the way the reports print it, e.g. "4KiB".
func chunkLabel(chunkSize int) string {
	if chunkSize%core.OneKibibyte == 0 {
		return fmt.Sprintf("%dKiB", chunkSize/core.OneKibibyte)
	}
	return fmt.Sprintf("%dB", chunkSize)
}

func mebibytes(chunks uint64, chunkSize int) float64 {
	return float64(chunks) * float64(chunkSize) / core.OneMebibyte
}

func wholeMebibytes(chunks uint64, chunkSize int) uint64 {
	return chunks * uint64(chunkSize) / core.OneMebibyte
}

// Sparseness writes r to w.
//
// Batch format:
//
//	[MiB Used] [MiB Free] [MiB Total] [Percent Used]%
func Sparseness(w io.Writer, r core.SparsenessReport, batch bool) error {
	if batch {
		_, err := fmt.Fprintf(w, "%d %d %d %.1f%%\n",
			wholeMebibytes(r.Used, r.ChunkSize),
			wholeMebibytes(r.Free, r.ChunkSize),
			wholeMebibytes(r.Total(), r.ChunkSize),
			r.Percent())
		return err
	}

	label := chunkLabel(r.ChunkSize)
	_, err := fmt.Fprintf(w,
		"Used %s chunks: %11d\n"+
			"Free %s chunks: %11d\n"+
			"\n"+
			"Used space (MiB): %11.2f\n"+
			"Free space (MiB): %11.2f\n"+
			"\n"+
			"Percent Used:     %10.1f%%\n",
		label, r.Used,
		label, r.Free,
		mebibytes(r.Used, r.ChunkSize),
		mebibytes(r.Free, r.ChunkSize),
		r.Percent())
	return err
}

// Delta writes r to w.
//
// Batch format:
//
//	[MiB Differing] [MiB Total] [Percent Differing]%
func Delta(w io.Writer, r core.DeltaReport, batch bool) error {
	if batch {
		_, err := fmt.Fprintf(w, "%d %d %.1f%%\n",
			wholeMebibytes(r.Differing, r.ChunkSize),
			wholeMebibytes(r.Total, r.ChunkSize),
			r.Percent())
		return err
	}

	label := chunkLabel(r.ChunkSize)
	_, err := fmt.Fprintf(w,
		"Differing %s chunks: %11d\n"+
			"Total     %s chunks: %11d\n"+
			"\n"+
			"Differing space (MiB): %11.2f\n"+
			"Total     space (MiB): %11.2f\n"+
			"\n"+
			"Percent Differing:     %10.1f%%\n",
		label, r.Differing,
		label, r.Total,
		mebibytes(r.Differing, r.ChunkSize),
		mebibytes(r.Total, r.ChunkSize),
		r.Percent())
	return err
}
