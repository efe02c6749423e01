// sparsefilter copies a device or file (or standard input, given "-") to a
// seekable target, seeking past zero chunks so the target stays sparse.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/0xRadioAc7iv/go-sparsestream/core"
	"github.com/0xRadioAc7iv/go-sparsestream/internal/utils"
	"github.com/0xRadioAc7iv/go-sparsestream/sparsestream"
)

const (
	exitOK          = 0
	exitUsage       = 1
	exitSourceOpen  = 2
	exitTargetOpen  = 3
	exitWrite       = 4
	exitRead        = 5
	exitSourceClose = 6
	exitTargetClose = 7
)

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	utils.LogInvocation(args)

	parsed, err := utils.HandleFilterInputs(filepath.Base(args[0]), args[1:], os.Stderr)
	if err != nil {
		return exitUsage
	}

	opts := []sparsestream.Option{sparsestream.WithWriteOffset(parsed.WriteOffset)}
	if parsed.Progress {
		opts = append(opts, sparsestream.WithProgress())
	}
	if parsed.Truncate {
		opts = append(opts, sparsestream.WithTruncate())
	}

	_, err = sparsestream.FilterFile(parsed.Source, parsed.Target, opts...)
	if err != nil {
		fmt.Fprintln(os.Stderr, "sparsefilter:", err)
	}
	return exitCode(err)
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, core.ErrOpen) && errors.Is(err, core.ErrTarget):
		return exitTargetOpen
	case errors.Is(err, core.ErrOpen):
		return exitSourceOpen
	case errors.Is(err, core.ErrWrite), errors.Is(err, core.ErrSeek):
		return exitWrite
	case errors.Is(err, core.ErrRead):
		return exitRead
	case errors.Is(err, core.ErrClose) && errors.Is(err, core.ErrTarget):
		return exitTargetClose
	case errors.Is(err, core.ErrClose):
		return exitSourceClose
	default:
		return exitUsage
	}
}
