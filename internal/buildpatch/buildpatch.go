// Package buildpatch adjusts generated build files in third-party source
// trees (V8 ninja files, Node.js makefiles, temporal cargo manifests) before
// the native toolchain runs.
package buildpatch

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/caoccao/javet-buildkit/internal/logging"
	"github.com/caoccao/javet-buildkit/internal/patch"
)

// ErrNoOutput is returned in strict mode when a build output directory is absent.
var ErrNoOutput = errors.New("build output directory not found")

// Progress reports how many files of a walk have been processed.
type Progress struct {
	Completed int
	Total     int
}

// Options controls a patch run.
type Options struct {
	patch.Options
	// Strict turns a missing output directory into an error instead of an empty run.
	Strict bool
	// OnResult is called after each file.
	OnResult func(*patch.Result)
	// OnProgress is called after each file of a directory walk.
	OnProgress func(Progress)
}

// FlagRule edits the space-separated flag list on lines that start with Prefix.
type FlagRule struct {
	Prefix string
	Add    []string
	Remove []string
}

// Apply returns line with missing Add flags appended and Remove flags dropped.
// Lines without the prefix are returned unchanged.
func (r FlagRule) Apply(line string) string {
	if !strings.HasPrefix(line, r.Prefix) {
		return line
	}
	flags := strings.Split(line, " ")
	for _, f := range r.Add {
		if !slices.Contains(flags, f) {
			flags = append(flags, f)
		}
	}
	flags = slices.DeleteFunc(flags, func(f string) bool {
		return slices.Contains(r.Remove, f)
	})
	return strings.Join(flags, " ")
}

// requireDir fails when root is not an existing directory.
func requireDir(root, what string) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("%s root: %w", what, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s root %s is not a directory", what, root)
	}
	return nil
}

// collect walks roots for regular files with the given extension. A missing
// root is skipped unless strict is set.
func collect(roots []string, ext string, strict bool) ([]string, error) {
	var files []string
	for _, root := range roots {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if path == root && errors.Is(err, fs.ErrNotExist) {
					if strict {
						return fmt.Errorf("%s: %w", root, ErrNoOutput)
					}
					logging.Debugf("No %s, nothing to patch.\n", root)
					return nil
				}
				return err
			}
			if d.Type().IsRegular() && strings.HasSuffix(d.Name(), ext) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}

// run applies fn to each file in order, reporting results and progress.
func run(files []string, opts Options, fn func(path string) *patch.Result) []*patch.Result {
	results := make([]*patch.Result, 0, len(files))
	for i, path := range files {
		res := fn(path)
		results = append(results, res)
		if opts.OnResult != nil {
			opts.OnResult(res)
		}
		if opts.OnProgress != nil {
			opts.OnProgress(Progress{Completed: i + 1, Total: len(files)})
		}
	}
	return results
}

func rewriteLines(path string, opts Options, fn func(line string) string) *patch.Result {
	return patch.Rewrite(path, patch.LF, func(lines []string) []string {
		for i, line := range lines {
			lines[i] = fn(line)
		}
		return lines
	}, opts.Options)
}
