// Package sparsestream converts byte streams with long zero-filled runs into
// a compact record stream that omits those runs, and rebuilds the original
// bytes (or an equivalent sparse file) from it.
//
// The encoded stream is a sequence of records, each an 8-byte little-endian
// chunk index followed by one chunk of data. Chunks that are entirely zero
// are not stored. The final record may carry a partial chunk, which keeps
// the exact length of the input.
//
// Example:
//
//	var encoded bytes.Buffer
//	if _, err := sparsestream.EncodeFile("disk.img", &encoded); err != nil {
//	    log.Fatal(err)
//	}
//
//	// Rebuild as a sparse file, holes where the zeros were.
//	_, err := sparsestream.DecodeFile(&encoded, "copy.img", sparsestream.WithTruncate())
package sparsestream
