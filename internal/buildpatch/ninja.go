package buildpatch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caoccao/javet-buildkit/internal/patch"
)

// ninjaOutPrefix matches the V8 output directories produced by gn gen.
const ninjaOutPrefix = "out.gn"

// V8Cflags relaxes the warnings newer toolchains raise on V8 sources.
var V8Cflags = FlagRule{
	Prefix: "cflags =",
	Add: []string{
		"-Wno-deprecated-copy-with-user-provided-copy",
		"-Wno-deprecated-declarations",
		"-Wno-invalid-offsetof",
		"-Wno-range-loop-construct",
		"-Wno-ctad-maybe-unsupported",
	},
	Remove: []string{"-Werror"},
}

// PatchNinja rewrites the cflags of every .ninja file under the out.gn*
// directories of a V8 checkout.
func PatchNinja(v8Root string, opts Options) ([]*patch.Result, error) {
	if err := requireDir(v8Root, "V8"); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(v8Root)
	if err != nil {
		return nil, fmt.Errorf("reading V8 root: %w", err)
	}
	var roots []string
	for _, e := range entries {
		if e.IsDir() && strings.HasPrefix(e.Name(), ninjaOutPrefix) {
			roots = append(roots, filepath.Join(v8Root, e.Name()))
		}
	}
	if len(roots) == 0 && opts.Strict {
		return nil, fmt.Errorf("%s: no %s* directories: %w", v8Root, ninjaOutPrefix, ErrNoOutput)
	}

	files, err := collect(roots, ".ninja", opts.Strict)
	if err != nil {
		return nil, err
	}
	return run(files, opts, func(path string) *patch.Result {
		return rewriteLines(path, opts, V8Cflags.Apply)
	}), nil
}
