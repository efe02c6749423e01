// sparsecheck reports how many chunks of a device or file an encoding would
// keep and how many it would drop.
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
	exitOK    = 0
	exitUsage = 1
	exitOpen  = 2
	exitRead  = 4
	exitClose = 5
)

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	utils.LogInvocation(args)

	parsed, err := utils.HandleCheckInputs(filepath.Base(args[0]), args[1:], os.Stderr)
	if err != nil {
		return exitUsage
	}

	var opts []sparsestream.Option
	if parsed.Mmap {
		opts = append(opts, sparsestream.WithMmap())
	}

	r, err := sparsestream.CheckFile(parsed.Device, opts...)
	if err != nil {
		fmt.Fprintln(os.Stderr, "sparsecheck:", err)
		if errors.Is(err, core.ErrOpen) {
			return exitOpen
		}
	}

	if perr := report.Sparseness(os.Stdout, r, parsed.Batch); perr != nil {
		fmt.Fprintln(os.Stderr, "sparsecheck:", perr)
	}
	return exitCode(err)
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, core.ErrOpen):
		return exitOpen
	case errors.Is(err, core.ErrRead):
		return exitRead
	case errors.Is(err, core.ErrClose):
		return exitClose
	default:
		return exitUsage
	}
}
