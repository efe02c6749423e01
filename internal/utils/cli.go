package utils

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"

	logging "github.com/ipfs/go-log/v2"
	"github.com/kballard/go-shellquote"
)

var log = logging.Logger("sparsestream/cli")

// ErrUsage is returned when a tool is invoked with bad arguments.
var ErrUsage = errors.New("bad usage")

// StdioPath names standard input or standard output in place of a path.
const StdioPath = "-"

type EncodeArgs struct {
	Source   string
	Progress bool
}

type DecodeArgs struct {
	Target      string
	WriteOffset int64
	Sequential  bool
	Truncate    bool
}

type FilterArgs struct {
	Source      string
	Target      string
	WriteOffset int64
	Progress    bool
	Truncate    bool
}

type CheckArgs struct {
	Device string
	Batch  bool
	Mmap   bool
}

type DeltaArgs struct {
	Base   string
	Result string
	Batch  bool
	Mmap   bool
}

// LogInvocation records the command line a tool was started with, quoted so
// it can be pasted back into a shell.
func LogInvocation(args []string) {
	log.Debugf("invoked as: %s", shellquote.Join(args...))
}

func newFlagSet(name, usage string, output io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprintf(output, "Usage: %s %s\n", name, usage)
		fs.PrintDefaults()
	}
	return fs
}

func usageError(fs *flag.FlagSet, format string, args ...any) error {
	fs.Usage()
	return fmt.Errorf("%w: %s", ErrUsage, fmt.Sprintf(format, args...))
}

func parseWriteOffset(fs *flag.FlagSet, value string) (int64, error) {
	offset, err := strconv.ParseInt(value, 10, 64)
	if err != nil || offset < 0 {
		return 0, usageError(fs, "invalid write offset %q", value)
	}
	return offset, nil
}

func HandleEncodeInputs(name string, args []string, output io.Writer) (*EncodeArgs, error) {
	parsed := &EncodeArgs{}

	fs := newFlagSet(name, "[OPTIONS] DEVICE", output)
	fs.BoolVar(&parsed.Progress, "progress", false, "Show a progress bar on stderr")
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}

	if fs.NArg() != 1 {
		return nil, usageError(fs, "expected exactly one source")
	}
	parsed.Source = fs.Arg(0)

	return parsed, nil
}

func HandleDecodeInputs(name string, args []string, output io.Writer) (*DecodeArgs, error) {
	parsed := &DecodeArgs{}

	fs := newFlagSet(name, "[OPTIONS] DEVICE [WRITE_OFFSET]", output)
	fs.BoolVar(&parsed.Sequential, "sequential", false, "Write zeros for skipped chunks instead of seeking")
	fs.BoolVar(&parsed.Truncate, "truncate", false, "Truncate a regular-file target before writing")
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}

	if fs.NArg() != 1 && fs.NArg() != 2 {
		return nil, usageError(fs, "expected a target and an optional write offset")
	}
	parsed.Target = fs.Arg(0)

	if fs.NArg() == 2 {
		offset, err := parseWriteOffset(fs, fs.Arg(1))
		if err != nil {
			return nil, err
		}
		parsed.WriteOffset = offset
	}

	return parsed, nil
}

func HandleFilterInputs(name string, args []string, output io.Writer) (*FilterArgs, error) {
	parsed := &FilterArgs{}

	fs := newFlagSet(name, "[OPTIONS] INPUT_FILE OUTPUT_FILE [WRITE_OFFSET]", output)
	fs.BoolVar(&parsed.Progress, "progress", false, "Show a progress bar on stderr")
	fs.BoolVar(&parsed.Truncate, "truncate", false, "Truncate a regular-file target before writing")
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}

	if fs.NArg() != 2 && fs.NArg() != 3 {
		return nil, usageError(fs, "expected a source, a target and an optional write offset")
	}
	parsed.Source = fs.Arg(0)
	parsed.Target = fs.Arg(1)

	// Putting the zeros back on a pipe would undo the whole point of filtering.
	if parsed.Target == StdioPath {
		return nil, usageError(fs, "target must be a seekable file")
	}

	if fs.NArg() == 3 {
		offset, err := parseWriteOffset(fs, fs.Arg(2))
		if err != nil {
			return nil, err
		}
		parsed.WriteOffset = offset
	}

	return parsed, nil
}

func HandleCheckInputs(name string, args []string, output io.Writer) (*CheckArgs, error) {
	parsed := &CheckArgs{}

	fs := newFlagSet(name, "[OPTIONS] DEVICE", output)
	fs.BoolVar(&parsed.Batch, "b", false, "Batch mode: print a single machine-parsable line")
	fs.BoolVar(&parsed.Mmap, "mmap", false, "Memory-map regular files instead of reading them")
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}

	if fs.NArg() != 1 {
		return nil, usageError(fs, "expected exactly one device")
	}
	parsed.Device = fs.Arg(0)

	return parsed, nil
}

func HandleDeltaInputs(name string, args []string, output io.Writer) (*DeltaArgs, error) {
	parsed := &DeltaArgs{}

	fs := newFlagSet(name, "[OPTIONS] BASE_DEVICE RESULT_DEVICE", output)
	fs.BoolVar(&parsed.Batch, "b", false, "Batch mode: print a single machine-parsable line")
	fs.BoolVar(&parsed.Mmap, "mmap", false, "Memory-map regular files instead of reading them")
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}

	if fs.NArg() != 2 {
		return nil, usageError(fs, "expected a base and a result device")
	}
	parsed.Base = fs.Arg(0)
	parsed.Result = fs.Arg(1)

	return parsed, nil
}
