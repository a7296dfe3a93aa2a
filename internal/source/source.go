package source

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"facette.io/natsort"
)

// DefaultPattern selects the files taken from directories.
const DefaultPattern = "*.json"

// ErrNoFiles is returned when the arguments contain no JSON file.
var ErrNoFiles = errors.New("no JSON files found")

// Expander turns paths into a file list.
type Expander struct {
	recursive bool
	pattern   string
}

// Option configures an Expander.
type Option func(*Expander)

// WithRecursive descends into subdirectories.
func WithRecursive(recursive bool) Option {
	return func(e *Expander) {
		e.recursive = recursive
	}
}

// WithPattern sets the file name pattern used inside directories.
func WithPattern(pattern string) Option {
	return func(e *Expander) {
		if pattern != "" {
			e.pattern = pattern
		}
	}
}

// New creates an Expander.
func New(opts ...Option) *Expander {
	e := &Expander{pattern: DefaultPattern}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Expand returns the files named by paths. Directory entries are added in
// natural order; explicit files keep their argument position. Each file
// appears once.
func (e *Expander) Expand(paths []string) ([]string, error) {
	if _, err := filepath.Match(e.pattern, ""); err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", e.pattern, err)
	}

	var files []string
	seen := make(map[string]struct{})
	add := func(path string) {
		key := filepath.Clean(path)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		files = append(files, path)
	}

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("failed to access %s: %w", p, err)
		}
		if !info.IsDir() {
			add(p)
			continue
		}

		found, err := e.walk(p)
		if err != nil {
			return nil, err
		}
		for _, f := range found {
			add(f)
		}
	}

	if len(files) == 0 {
		return nil, ErrNoFiles
	}
	return files, nil
}

// walk lists the matching files below dir.
func (e *Expander) walk(dir string) ([]string, error) {
	var found []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && (!e.recursive || strings.HasPrefix(d.Name(), ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if ok, _ := filepath.Match(strings.ToLower(e.pattern), strings.ToLower(d.Name())); ok {
			found = append(found, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", dir, err)
	}
	natsort.Sort(found)
	return found, nil
}
