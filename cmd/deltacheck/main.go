// deltacheck reports how many chunks differ between a base device or file
// and a result device or file.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/0xRadioAc7iv/go-sparsestream/core"
	"github.com/0xRadioAc7iv/go-sparsestream/internal/report"
	"github.com/0xRadioAc7iv/go-sparsestream/internal/utils"
	"github.com/0xRadioAc7iv/go-sparsestream/sparsestream"
)

const (
	exitOK          = 0
	exitUsage       = 1
	exitOpen        = 2
	exitBaseRead    = 3
	exitResultRead  = 4
	exitBaseLonger  = 5
	exitBaseClose   = 6
	exitResultClose = 7
)

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	utils.LogInvocation(args)

	parsed, err := utils.HandleDeltaInputs(filepath.Base(args[0]), args[1:], os.Stderr)
	if err != nil {
		return exitUsage
	}

	var opts []sparsestream.Option
	if parsed.Mmap {
		opts = append(opts, sparsestream.WithMmap())
	}

	r, err := sparsestream.DeltaFiles(parsed.Base, parsed.Result, opts...)
	if err != nil {
		fmt.Fprintln(os.Stderr, "deltacheck:", err)
		if errors.Is(err, core.ErrOpen) {
			return exitOpen
		}
	}

	if perr := report.Delta(os.Stdout, r, parsed.Batch); perr != nil {
		fmt.Fprintln(os.Stderr, "deltacheck:", perr)
	}
	return exitCode(err)
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, core.ErrOpen):
		return exitOpen
	case errors.Is(err, core.ErrLengthMismatch):
		return exitBaseLonger
	case errors.Is(err, core.ErrRead) && errors.Is(err, core.ErrBaseStream):
		return exitBaseRead
	case errors.Is(err, core.ErrRead):
		return exitResultRead
	case errors.Is(err, core.ErrClose) && errors.Is(err, core.ErrBaseStream):
		return exitBaseClose
	case errors.Is(err, core.ErrClose):
		return exitResultClose
	default:
		return exitUsage
	}
}
