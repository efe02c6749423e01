package main

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/0xRadioAc7iv/go-sparsestream/core"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, exitOK},
		{"source open", fmt.Errorf("%w: %w: missing", core.ErrOpen, core.ErrSource), exitSourceOpen},
		{"target open", fmt.Errorf("%w: %w: denied", core.ErrOpen, core.ErrTarget), exitTargetOpen},
		{"write", fmt.Errorf("%w: chunk 1", core.ErrWrite), exitWrite},
		{"seek", fmt.Errorf("%w: chunk 1", core.ErrSeek), exitWrite},
		{"read", fmt.Errorf("%w: chunk 1", core.ErrRead), exitRead},
		{"source close", fmt.Errorf("%w: %w", core.ErrClose, core.ErrSource), exitSourceClose},
		{"target close", fmt.Errorf("%w: %w", core.ErrClose, core.ErrTarget), exitTargetClose},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.img")
	dst := filepath.Join(dir, "out.img")

	data := append(make([]byte, 3*core.ChunkSize), 1, 2, 3)
	if err := os.WriteFile(src, data, 0644); err != nil {
		t.Fatal(err)
	}

	if got := run([]string{"sparsefilter", src, dst}); got != exitOK {
		t.Fatalf("run() = %d, want %d", got, exitOK)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(data) || got[len(got)-1] != 3 {
		t.Fatalf("filtered output has length %d", len(got))
	}

	if code := run([]string{"sparsefilter", filepath.Join(dir, "missing"), dst}); code != exitSourceOpen {
		t.Errorf("run() with missing source = %d, want %d", code, exitSourceOpen)
	}
	if code := run([]string{"sparsefilter", src, "-"}); code != exitUsage {
		t.Errorf("run() with stdout target = %d, want %d", code, exitUsage)
	}
}
