package chunkio

import "io"

// WriteFull writes all of p to w, retrying short writes.
//
// A write that makes no progress without reporting an error fails with
// io.ErrShortWrite instead of spinning forever.
func WriteFull(w io.Writer, p []byte) error {
	for len(p) > 0 {
		n, err := w.Write(p)
		if err != nil {
			return err
		}
		if n == 0 {
			return io.ErrShortWrite
		}
		p = p[n:]
	}
	return nil
}

// WriteZeros writes n zero bytes to w using zero as scratch space. zero must
// be non-empty and all zero.
func WriteZeros(w io.Writer, zero []byte, n int64) error {
	for n > 0 {
		step := int64(len(zero))
		if n < step {
			step = n
		}
		if err := WriteFull(w, zero[:step]); err != nil {
			return err
		}
		n -= step
	}
	return nil
}
