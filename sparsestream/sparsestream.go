package sparsestream

import (
	"bufio"
	"fmt"
	"io"
	"os"

	logging "github.com/ipfs/go-log/v2"

	"github.com/0xRadioAc7iv/go-sparsestream/core"
	"github.com/0xRadioAc7iv/go-sparsestream/internal"
	"github.com/0xRadioAc7iv/go-sparsestream/internal/lock"
	"github.com/0xRadioAc7iv/go-sparsestream/internal/progress"
	"github.com/0xRadioAc7iv/go-sparsestream/internal/utils"
)

var log = logging.Logger("sparsestream")

// Buffer size for standard output; keeps index and chunk writes of a record
// in one system call.
const stdioBufferSize = 64 * core.OneKibibyte

func configure(opts []Option) (*core.Session, *internal.Config, error) {
	cfg := internal.DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	s, err := core.NewSession(cfg)
	if err != nil {
		return nil, nil, err
	}
	return s, cfg, nil
}

// Encode writes the encoded form of src to dst.
func Encode(src io.Reader, dst io.Writer, opts ...Option) (core.EncodeStats, error) {
	s, _, err := configure(opts)
	if err != nil {
		return core.EncodeStats{}, err
	}
	return s.Encode(src, dst)
}

// Decode rebuilds the original bytes of the encoded stream src on dst. Holes
// are left by seeking when dst is an io.WriteSeeker.
func Decode(src io.Reader, dst io.Writer, opts ...Option) (core.DecodeStats, error) {
	s, _, err := configure(opts)
	if err != nil {
		return core.DecodeStats{}, err
	}
	return s.Decode(src, dst)
}

// Filter copies src onto dst, leaving holes where src has zero chunks.
func Filter(src io.Reader, dst io.WriteSeeker, opts ...Option) (core.FilterStats, error) {
	s, _, err := configure(opts)
	if err != nil {
		return core.FilterStats{}, err
	}
	return s.Filter(src, dst)
}

// CheckSparseness counts the used and free chunks of src.
func CheckSparseness(src io.Reader, opts ...Option) (core.SparsenessReport, error) {
	s, _, err := configure(opts)
	if err != nil {
		return core.SparsenessReport{}, err
	}
	return s.CheckSparseness(src)
}

// CheckDelta counts the chunks that differ between base and result.
func CheckDelta(base, result io.Reader, opts ...Option) (core.DeltaReport, error) {
	s, _, err := configure(opts)
	if err != nil {
		return core.DeltaReport{}, err
	}
	return s.CheckDelta(base, result)
}

// closeInto closes c and records a failure in *errp unless an earlier error
// is already there.
func closeInto(errp *error, c io.Closer, side error) {
	if err := c.Close(); err != nil && *errp == nil {
		*errp = fmt.Errorf("%w: %w: %w", core.ErrClose, side, err)
	}
}

func openSource(path string, cfg *internal.Config, side error) (*utils.Source, error) {
	src, err := utils.OpenSource(path, cfg.Mmap)
	if err != nil {
		return nil, fmt.Errorf("%w: %w: %w", core.ErrOpen, side, err)
	}
	return src, nil
}

func openTarget(path string, cfg *internal.Config) (*os.File, error) {
	f, err := utils.OpenTarget(path, cfg.Truncate)
	if err != nil {
		return nil, fmt.Errorf("%w: %w: %w", core.ErrOpen, core.ErrTarget, err)
	}
	if err := lock.LockFile(f); err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: %w: %w", core.ErrOpen, core.ErrTarget, err)
	}
	log.Debugf("locked target %s", path)
	return f, nil
}

// withProgress wraps src in a progress reader when asked to and the size of
// the source is known.
func withProgress(src *utils.Source, cfg *internal.Config) (io.Reader, *progress.Bar) {
	if !cfg.Progress || src.Size <= 0 {
		return src, nil
	}
	return progress.Wrap(src, src.Size, os.Stderr)
}

// EncodeFile encodes the file at path ("-" for standard input) onto dst.
func EncodeFile(path string, dst io.Writer, opts ...Option) (stats core.EncodeStats, err error) {
	s, cfg, err := configure(opts)
	if err != nil {
		return stats, err
	}

	src, err := openSource(path, cfg, core.ErrSource)
	if err != nil {
		return stats, err
	}
	defer closeInto(&err, src, core.ErrSource)

	r, bar := withProgress(src, cfg)
	defer bar.Finish()

	w := bufio.NewWriterSize(dst, stdioBufferSize)
	stats, err = s.Encode(r, w)
	if err != nil {
		return stats, err
	}
	if ferr := w.Flush(); ferr != nil {
		return stats, fmt.Errorf("%w: %w", core.ErrWrite, ferr)
	}

	log.Debugf("encoded %s: %d chunks of %d bytes, %d records", src.Name, stats.Chunks, s.ChunkSize(), stats.Records)
	return stats, nil
}

// DecodeFile decodes src onto the file at path, or standard output for "-".
// Files are written sparsely and locked for the duration of the run;
// standard output receives every zero explicitly.
func DecodeFile(src io.Reader, path string, opts ...Option) (stats core.DecodeStats, err error) {
	s, cfg, err := configure(opts)
	if err != nil {
		return stats, err
	}

	if path == utils.StdioPath {
		return decodeStream(s, src, os.Stdout)
	}

	f, err := openTarget(path, cfg)
	if err != nil {
		return stats, err
	}
	defer closeInto(&err, f, core.ErrTarget)
	defer lock.UnlockFile(f)

	stats, err = s.Decode(src, f)
	if err == nil {
		log.Debugf("decoded %d records onto %s", stats.Records, path)
	}
	return stats, err
}

// decodeStream decodes onto a target that cannot seek, writing every zero,
// and closes it once the stream is done.
func decodeStream(s *core.Session, src io.Reader, dst io.WriteCloser) (stats core.DecodeStats, err error) {
	defer closeInto(&err, dst, core.ErrTarget)

	w := bufio.NewWriterSize(dst, stdioBufferSize)
	stats, err = s.Decode(src, w)
	if err != nil {
		return stats, err
	}
	if ferr := w.Flush(); ferr != nil {
		return stats, fmt.Errorf("%w: %w", core.ErrWrite, ferr)
	}
	return stats, nil
}

// FilterFile copies the file at srcPath ("-" for standard input) to the
// file at dstPath, leaving holes where the source has zero chunks.
func FilterFile(srcPath, dstPath string, opts ...Option) (stats core.FilterStats, err error) {
	s, cfg, err := configure(opts)
	if err != nil {
		return stats, err
	}

	src, err := openSource(srcPath, cfg, core.ErrSource)
	if err != nil {
		return stats, err
	}

	f, err := openTarget(dstPath, cfg)
	if err != nil {
		src.Close()
		return stats, err
	}
	defer func() {
		lock.UnlockFile(f)
		closeInto(&err, src, core.ErrSource)
		closeInto(&err, f, core.ErrTarget)
	}()

	r, bar := withProgress(src, cfg)
	defer bar.Finish()

	stats, err = s.Filter(r, f)
	if err == nil {
		log.Debugf("filtered %s onto %s: wrote %d of %d chunks of %d bytes", src.Name, dstPath, stats.Written, stats.Chunks, s.ChunkSize())
	}
	return stats, err
}

// CheckFile reports the sparseness of the file at path ("-" for standard
// input).
func CheckFile(path string, opts ...Option) (report core.SparsenessReport, err error) {
	s, cfg, err := configure(opts)
	if err != nil {
		return report, err
	}

	src, err := openSource(path, cfg, core.ErrSource)
	if err != nil {
		return report, err
	}
	defer closeInto(&err, src, core.ErrSource)

	return s.CheckSparseness(src)
}

// DeltaFiles compares the files at basePath and resultPath.
func DeltaFiles(basePath, resultPath string, opts ...Option) (report core.DeltaReport, err error) {
	s, cfg, err := configure(opts)
	if err != nil {
		return report, err
	}

	base, err := openSource(basePath, cfg, core.ErrBaseStream)
	if err != nil {
		return report, err
	}

	result, err := openSource(resultPath, cfg, core.ErrResultStream)
	if err != nil {
		base.Close()
		return report, err
	}
	defer func() {
		closeInto(&err, base, core.ErrBaseStream)
		closeInto(&err, result, core.ErrResultStream)
	}()

	return s.CheckDelta(base, result)
}
