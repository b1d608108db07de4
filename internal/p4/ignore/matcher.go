// Package ignore applies P4IGNORE-style ignore files to local paths.
package ignore

import (
	"bufio"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Cyclone1070/p4bridge/internal/p4/pathutil"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

const commentPrefix = "#"

// FileSystem defines the minimal filesystem interface needed to load ignore files.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
}

// OSFileSystem implements FileSystem using the real OS.
type OSFileSystem struct{}

func (OSFileSystem) ReadFile(path string) ([]byte, error) { return os.ReadFile(path) }

// Matcher decides whether a local file is excluded by the ignore files
// named in a connection's Ignore setting. Bare names are looked up in the
// file's directory and every ancestor; patterns apply to the directory that
// holds them and below. Absolute names are loaded once and apply to their
// own directory.
type Matcher struct {
	names []string
	fs    FileSystem

	mu    sync.Mutex
	cache map[string][]gitignore.Pattern
}

// NewMatcher creates a Matcher for the given Ignore setting. Names may be
// separated by commas or semicolons. An empty setting never ignores.
func NewMatcher(setting string, fs FileSystem) *Matcher {
	if fs == nil {
		panic("fs is required")
	}
	return &Matcher{
		names: SplitNames(setting),
		fs:    fs,
		cache: make(map[string][]gitignore.Pattern),
	}
}

// SplitNames splits an Ignore setting into file names.
func SplitNames(setting string) []string {
	var names []string
	for _, n := range strings.FieldsFunc(setting, func(r rune) bool { return r == ',' || r == ';' }) {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	return names
}

// Empty reports whether no ignore files are configured.
func (m *Matcher) Empty() bool {
	return len(m.names) == 0
}

// ShouldIgnore reports whether the absolute local path is ignored.
// Relative and depot paths are never ignored. Unreadable ignore files
// are returned as *ReadError with the best answer from the rest.
func (m *Matcher) ShouldIgnore(path string) (bool, error) {
	if m.Empty() || pathutil.IsDepotPath(path) || !filepath.IsAbs(path) {
		return false, nil
	}
	path = filepath.Clean(path)

	var patterns []gitignore.Pattern
	var errs []error
	for _, file := range m.candidates(filepath.Dir(path)) {
		ps, err := m.load(file)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		patterns = append(patterns, ps...)
	}
	if len(patterns) == 0 {
		return false, errors.Join(errs...)
	}
	return gitignore.NewMatcher(patterns).Match(splitPath(path), false), errors.Join(errs...)
}

// Filter splits paths into kept and ignored.
func (m *Matcher) Filter(paths []string) (kept, ignored []string, err error) {
	var errs []error
	for _, p := range paths {
		skip, e := m.ShouldIgnore(p)
		if e != nil {
			errs = append(errs, e)
		}
		if skip {
			ignored = append(ignored, p)
		} else {
			kept = append(kept, p)
		}
	}
	return kept, ignored, errors.Join(errs...)
}

// candidates lists ignore files that may apply to files in dir, outermost
// first so deeper files take precedence.
func (m *Matcher) candidates(dir string) []string {
	var dirs []string
	for d := dir; ; {
		dirs = append(dirs, d)
		parent := filepath.Dir(d)
		if parent == d {
			break
		}
		d = parent
	}

	var files []string
	for _, name := range m.names {
		if filepath.IsAbs(name) {
			files = append(files, filepath.Clean(name))
		}
	}
	for i := len(dirs) - 1; i >= 0; i-- {
		for _, name := range m.names {
			if !filepath.IsAbs(name) {
				files = append(files, filepath.Join(dirs[i], name))
			}
		}
	}
	return files
}

// load reads and parses one ignore file, caching the outcome. A missing
// file has no patterns.
func (m *Matcher) load(file string) ([]gitignore.Pattern, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if ps, ok := m.cache[file]; ok {
		return ps, nil
	}

	data, err := m.fs.ReadFile(file)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			m.cache[file] = nil
			return nil, nil
		}
		return nil, &ReadError{Path: file, Cause: err}
	}

	ps := ParsePatterns(data, splitPath(filepath.Dir(file)))
	m.cache[file] = ps
	return ps, nil
}

// ParsePatterns parses ignore file content. Blank lines and comments are skipped.
func ParsePatterns(data []byte, domain []string) []gitignore.Pattern {
	var patterns []gitignore.Pattern
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, commentPrefix) {
			continue
		}
		patterns = append(patterns, gitignore.ParsePattern(line, domain))
	}
	return patterns
}

// splitPath splits a path into segments for gitignore matching.
// It normalizes path separators and filters out empty and "." segments.
func splitPath(path string) []string {
	if path == "" {
		return []string{}
	}

	parts := strings.Split(strings.ReplaceAll(filepath.ToSlash(path), `\`, "/"), "/")
	var segments []string
	for _, part := range parts {
		if part != "" && part != "." {
			segments = append(segments, part)
		}
	}
	return segments
}
