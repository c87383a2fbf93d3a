package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"adrtools/internal/faults"
	"adrtools/internal/fileutil"
)

func openInput(path string) (*os.File, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, faults.Wrap(faults.ErrRowParse, "input", "open", path, err)
	}
	return file, nil
}

// openOptional opens path for reading; an empty path yields nil.
func openOptional(path string) (*os.File, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, faults.Wrap(faults.ErrConfiguration, "input", "open", path, err)
	}
	return file, nil
}

// writeOutput writes to path atomically, or to stdout when path is empty or "-".
func writeOutput(stdout io.Writer, path string, fill func(io.Writer) error) error {
	path = strings.TrimSpace(path)
	if path == "" || path == "-" {
		return fill(stdout)
	}
	if err := fileutil.WriteAtomic(path, fill); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func joinOrDash(values []string) string {
	if len(values) == 0 {
		return "-"
	}
	return strings.Join(values, ", ")
}
