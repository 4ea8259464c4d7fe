package buildpatch

import (
	"path/filepath"
	"strings"

	"github.com/caoccao/javet-buildkit/internal/patch"
)

const (
	gypiFile   = "common.gypi"
	gypiOldKey = `_type=="static_library" and OS=="solaris"`
	gypiNewKey = `_type=="static_library"`

	makeContinuation = `\`
	// makeProperty is inserted after a continued flag assignment.
	makeProperty = `    -fPIC -ftls-model=global-dynamic -Wno-return-type \`
	// makePropertyInline is appended to a single-line flag assignment.
	makePropertyInline = " -fPIC -ftls-model=global-dynamic -Wno-return-type "
)

var makeKeys = []string{
	"CFLAGS_Release :=",
	"CFLAGS_C_Release :=",
	"CFLAGS_CC_Release :=",
	"LDFLAGS_Release :=",
}

// PatchNode makes a Node.js checkout build static, position independent
// libraries: common.gypi is patched once and every makefile under out/ gets
// -fPIC flags. The makefiles only exist after ./configure has run.
func PatchNode(nodeRoot string, opts Options) ([]*patch.Result, error) {
	if err := requireDir(nodeRoot, "Node.js"); err != nil {
		return nil, err
	}

	gypi := patch.Rewrite(filepath.Join(nodeRoot, gypiFile), patch.LF, func(lines []string) []string {
		for i, line := range lines {
			lines[i] = strings.Replace(line, gypiOldKey, gypiNewKey, 1)
		}
		return lines
	}, opts.Options)
	if opts.OnResult != nil {
		opts.OnResult(gypi)
	}
	results := []*patch.Result{gypi}

	files, err := collect([]string{filepath.Join(nodeRoot, "out")}, ".mk", opts.Strict)
	if err != nil {
		return results, err
	}
	results = append(results, run(files, opts, func(path string) *patch.Result {
		return patch.Rewrite(path, patch.LF, patchMakeLines, opts.Options)
	})...)
	return results, nil
}

func patchMakeLines(lines []string) []string {
	out := make([]string, 0, len(lines)+len(makeKeys))
	pending := false
	for _, line := range lines {
		if pending {
			pending = false
			if line != makeProperty {
				out = append(out, makeProperty)
			}
		}
		if isMakeKey(line) {
			switch {
			case strings.HasSuffix(line, makeContinuation):
				pending = true
			case !strings.HasSuffix(line, makePropertyInline):
				line += makePropertyInline
			}
		}
		out = append(out, line)
	}
	return out
}

func isMakeKey(line string) bool {
	for _, key := range makeKeys {
		if strings.HasPrefix(line, key) {
			return true
		}
	}
	return false
}
