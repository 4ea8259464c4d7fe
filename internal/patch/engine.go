// Package patch rewrites text files line by line and writes them back only
// when the rewritten bytes differ from what is on disk.
package patch

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/caoccao/javet-buildkit/internal/textdiff"
)

var (
	// ErrNotFound is wrapped by Result.Err when a target file does not exist.
	ErrNotFound = errors.New("file not found")
	// ErrNotUTF8 is wrapped by Result.Err when a target cannot be decoded.
	ErrNotUTF8 = errors.New("not valid UTF-8")
)

// Options controls how a rewrite is committed.
type Options struct {
	// DryRun computes the outcome without touching the file.
	DryRun bool
	// Diff attaches a unified diff to results that change content.
	Diff bool
}

// Target is one file and the ordered rules applied to each of its lines.
type Target struct {
	Path      string
	Separator Separator
	Rules     []Rule
}

// Match is one captured version found by Inspect.
type Match struct {
	Line  int
	Value string
}

// Apply substitutes value into the version capture of the first matching rule
// on every line of path. Each line is rewritten by at most one rule.
func Apply(path string, sep Separator, rules []Rule, value string, opts Options) *Result {
	var changes []LineChange
	res := Rewrite(path, sep, func(lines []string) []string {
		for i, line := range lines {
			for _, r := range rules {
				change, updated, ok := r.match(line, value)
				if !ok {
					continue
				}
				change.Line = i + 1
				changes = append(changes, change)
				lines[i] = updated
				break
			}
		}
		return lines
	}, opts)
	res.Changes = changes
	return res
}

// ApplyTarget is Apply for a target resolved against root.
func ApplyTarget(root string, t Target, value string, opts Options) *Result {
	return Apply(filepath.Join(root, filepath.FromSlash(t.Path)), t.Separator, t.Rules, value, opts)
}

// Rewrite reads path, splits it on sep, passes the lines to transform and
// writes the re-joined content back if it differs from the original bytes.
// transform may modify and return the slice it is given.
func Rewrite(path string, sep Separator, transform func(lines []string) []string, opts Options) *Result {
	return Transform(path, func(original []byte) ([]byte, error) {
		if !utf8.Valid(original) {
			return nil, ErrNotUTF8
		}
		lines := strings.Split(string(original), string(sep))
		return []byte(strings.Join(transform(lines), string(sep))), nil
	}, opts)
}

// Transform reads path, passes its content to fn and writes the returned
// bytes back if they differ. An error from fn fails the target untouched.
func Transform(path string, fn func(content []byte) ([]byte, error), opts Options) *Result {
	res := &Result{Path: path}

	original, err := os.ReadFile(path)
	if err != nil {
		return res.fail(err)
	}
	updated, err := fn(original)
	if err != nil {
		res.Outcome = Failed
		res.Err = fmt.Errorf("%s: %w", path, err)
		return res
	}
	return commit(res, original, true, updated, opts)
}

// WriteIfChanged writes content to path unless the file already holds exactly
// those bytes. A missing file is created along with its parent directories.
func WriteIfChanged(path string, content []byte, opts Options) *Result {
	res := &Result{Path: path}

	original, err := os.ReadFile(path)
	exists := err == nil
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return res.fail(err)
	}
	return commit(res, original, exists, content, opts)
}

// Inspect reports the current value of the version capture on every line
// where one of rules matches. Nothing is written.
func Inspect(path string, sep Separator, rules []Rule) ([]Match, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("decoding %s: %w", path, ErrNotUTF8)
	}

	var matches []Match
	for i, line := range strings.Split(string(data), string(sep)) {
		for _, r := range rules {
			start, end, ok := r.find(line)
			if !ok {
				continue
			}
			matches = append(matches, Match{Line: i + 1, Value: line[start:end]})
			break
		}
	}
	return matches, nil
}

func (r *Result) fail(err error) *Result {
	if errors.Is(err, fs.ErrNotExist) {
		r.Outcome = Missing
		r.Err = fmt.Errorf("%s: %w", r.Path, ErrNotFound)
		return r
	}
	r.Outcome = Failed
	r.Err = fmt.Errorf("reading %s: %w", r.Path, err)
	return r
}

func commit(res *Result, original []byte, exists bool, updated []byte, opts Options) *Result {
	if exists && bytes.Equal(original, updated) {
		res.Outcome = Skipped
		return res
	}

	if opts.Diff {
		label := filepath.ToSlash(res.Path)
		res.Diff = textdiff.Unified(original, updated, "a/"+label, "b/"+label)
	}

	if opts.DryRun {
		res.Outcome = Updated
		res.DryRun = true
		return res
	}

	if err := writeFile(res.Path, updated); err != nil {
		res.Outcome = Failed
		res.Err = err
		return res
	}
	res.Outcome = Updated
	return res
}

// writeFile replaces path through a temporary sibling so a failed write
// never leaves a truncated file behind. An existing file keeps its mode.
func writeFile(path string, content []byte) error {
	mode := fs.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}

	tmpPath := path + ".tmp"
	out, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("creating %s: %w", tmpPath, err)
	}

	_, err = out.Write(content)
	closeErr := out.Close()
	if err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing %s: %w", path, closeErr)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("finalizing %s: %w", path, err)
	}
	return nil
}
