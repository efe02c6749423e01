// Package progress reports how much of a source has been consumed.
package progress

import (
	"io"

	"gopkg.in/cheggaaa/pb.v1"
)

// Bar tracks bytes read through the reader returned by Wrap.
type Bar struct {
	bar *pb.ProgressBar
}

// Wrap returns a reader that advances a byte progress bar drawn on out as r
// is consumed. size is the expected number of bytes.
func Wrap(r io.Reader, size int64, out io.Writer) (io.Reader, *Bar) {
	bar := pb.New64(size)
	bar.Output = out
	bar.Units = pb.U_BYTES
	bar.ShowTimeLeft = true
	bar.ShowPercent = true
	bar.ShowSpeed = true
	bar.Start()

	return bar.NewProxyReader(r), &Bar{bar: bar}
}

// Finish draws the final state of the bar. It is safe on a nil Bar.
func (b *Bar) Finish() {
	if b == nil {
		return
	}
	b.bar.Finish()
}
