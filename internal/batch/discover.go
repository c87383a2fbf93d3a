package batch

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"adrtools/internal/faults"
)

// Discover expands inputs into a sorted, de-duplicated list of files whose
// names end with ext (case-insensitive). Directories are walked recursively;
// files named explicitly are kept regardless of extension. A missing input is
// a configuration error.
func Discover(inputs []string, ext string) ([]string, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))
	seen := make(map[string]struct{})
	var files []string
	add := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, input := range inputs {
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		abs, err := filepath.Abs(input)
		if err != nil {
			return nil, faults.Wrap(faults.ErrConfiguration, "batch", "discover", input, err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			return nil, faults.Wrap(faults.ErrConfiguration, "batch", "discover", input, err)
		}
		if !info.IsDir() {
			add(abs)
			continue
		}
		err = filepath.WalkDir(abs, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if d.IsDir() {
				if path != abs && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if ext == "" || strings.HasSuffix(strings.ToLower(d.Name()), ext) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, faults.Wrap(faults.ErrConfiguration, "batch", "discover", input, err)
		}
	}
	if len(files) == 0 {
		return nil, faults.Wrap(faults.ErrConfiguration, "batch", "discover", fmt.Sprintf("no %s files found", displayExt(ext)), errors.New("nothing to process"))
	}
	sort.Strings(files)
	return files, nil
}

func displayExt(ext string) string {
	if ext == "" {
		return "input"
	}
	return ext
}

// Partition splits paths into groups of ceil(n/workers) files, preserving
// order. It never returns empty groups.
func Partition(paths []string, workers int) [][]string {
	if len(paths) == 0 {
		return nil
	}
	if workers <= 0 {
		workers = 1
	}
	size := (len(paths) + workers - 1) / workers
	groups := make([][]string, 0, workers)
	for start := 0; start < len(paths); start += size {
		end := min(start+size, len(paths))
		groups = append(groups, paths[start:end:end])
	}
	return groups
}
