// sparseencode writes the sparse encoding of a device or file (or standard
// input, given "-") to standard output.
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
	exitOK    = 0
	exitUsage = 1
	exitOpen  = 2
	exitWrite = 3
	exitRead  = 4
	exitClose = 5
)

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	utils.LogInvocation(args)

	parsed, err := utils.HandleEncodeInputs(filepath.Base(args[0]), args[1:], os.Stderr)
	if err != nil {
		return exitUsage
	}

	var opts []sparsestream.Option
	if parsed.Progress {
		opts = append(opts, sparsestream.WithProgress())
	}

	_, err = sparsestream.EncodeFile(parsed.Source, os.Stdout, opts...)
	if err != nil {
		fmt.Fprintln(os.Stderr, "sparseencode:", err)
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
	case errors.Is(err, core.ErrWrite):
		return exitWrite
	case errors.Is(err, core.ErrClose):
		return exitClose
	default:
		return exitUsage
	}
}
