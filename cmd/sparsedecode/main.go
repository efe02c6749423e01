// sparsedecode reads a sparse encoding from standard input and writes the
// decoded bytes to a device or file, seeking past omitted chunks. Given "-"
// as the target it writes every byte, zeros included, to standard output.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/0xRadioAc7iv/go-sparsestream/core"
	"github.com/0xRadioAc7iv/go-sparsestream/internal/utils"
	"github.com/0xRadioAc7iv/go-sparsestream/sparsestream"
)

const (
	exitOK        = 0
	exitUsage     = 1
	exitOpen      = 2
	exitMalformed = 3
	exitSeek      = 4
	exitRead      = 5
	exitClose     = 6
	exitWrite     = 7
)

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	utils.LogInvocation(args)

	parsed, err := utils.HandleDecodeInputs(filepath.Base(args[0]), args[1:], os.Stderr)
	if err != nil {
		return exitUsage
	}

	opts := []sparsestream.Option{sparsestream.WithWriteOffset(parsed.WriteOffset)}
	if parsed.Sequential {
		opts = append(opts, sparsestream.WithSequentialTarget())
	}
	if parsed.Truncate {
		opts = append(opts, sparsestream.WithTruncate())
	}

	stdin := bufio.NewReaderSize(os.Stdin, 64*core.OneKibibyte)
	_, err = sparsestream.DecodeFile(stdin, parsed.Target, opts...)
	if err != nil {
		fmt.Fprintln(os.Stderr, "sparsedecode:", err)
	}
	return exitCode(err)
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, core.ErrOpen):
		return exitOpen
	case errors.Is(err, core.ErrMalformed):
		return exitMalformed
	case errors.Is(err, core.ErrSeek):
		return exitSeek
	case errors.Is(err, core.ErrRead):
		return exitRead
	case errors.Is(err, core.ErrClose):
		return exitClose
	case errors.Is(err, core.ErrWrite):
		return exitWrite
	default:
		return exitUsage
	}
}
