package ioutils

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SplitInputList splits user input into individual entries.
//
// Entries are separated by newlines or commas. Surrounding whitespace is
// trimmed and empty entries are dropped.
//
// Example:
//
//	SplitInputList("a.wav, b.wav\n/music") // ["a.wav", "b.wav", "/music"]
func SplitInputList(input string) []string {
	fields := strings.FieldsFunc(input, func(r rune) bool {
		return r == '\n' || r == '\r' || r == ','
	})

	var out []string
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

// ExpandInputs turns files, directories and glob patterns into a flat list
// of regular files.
//
// The following rules apply:
//   - A regular file is kept as is
//   - A directory contributes the regular files directly inside it, sorted
//     by name, skipping hidden files (no recursion)
//   - An entry containing *, ? or [ is expanded as a glob; directories it
//     matches are skipped
//   - Order of first appearance is preserved and duplicates are removed
//
// A plain path that does not exist is an error, as is a glob that matches
// no file.
//
// Example:
//
//	files, err := ExpandInputs([]string{"/music/album", "/music/*.flac"})
func ExpandInputs(inputs []string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)
	add := func(path string) {
		key := filepath.Clean(path)
		if !seen[key] {
			seen[key] = true
			files = append(files, path)
		}
	}

	for _, in := range inputs {
		if isGlob(in) {
			matches, err := filepath.Glob(in)
			if err != nil {
				return nil, fmt.Errorf("bad pattern %q: %w", in, err)
			}
			sort.Strings(matches)

			found := false
			for _, m := range matches {
				if info, err := os.Stat(m); err == nil && info.Mode().IsRegular() {
					add(m)
					found = true
				}
			}
			if !found {
				return nil, fmt.Errorf("no files match %q", in)
			}
			continue
		}

		info, err := os.Stat(in)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			add(in)
			continue
		}

		dirFiles, err := listDir(in)
		if err != nil {
			return nil, err
		}
		for _, f := range dirFiles {
			add(f)
		}
	}

	return files, nil
}

// listDir returns the visible regular files directly inside dir.
func listDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".") {
			continue
		}
		info, err := e.Info()
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	return files, nil
}

func isGlob(path string) bool {
	return strings.ContainsAny(path, "*?[")
}
