package buildpatch

import (
	"bytes"
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/BurntSushi/toml"
	"github.com/caoccao/javet-buildkit/internal/logging"
	"github.com/caoccao/javet-buildkit/internal/patch"
)

// temporalManifests are the cargo manifests V8 links the temporal crate through.
var temporalManifests = []string{
	"Cargo.toml",
	"temporal_capi/Cargo.toml",
}

const libSection = "\n[lib]\ncrate-type = [\"staticlib\", \"rlib\"]\n"

var packageHeader = regexp.MustCompile(`(?im)^\[package\]`)

// PatchTemporal adds a static library target to the temporal crate manifests.
func PatchTemporal(repoRoot string, opts Options) ([]*patch.Result, error) {
	if err := requireDir(repoRoot, "temporal"); err != nil {
		return nil, err
	}

	var files []string
	for _, rel := range temporalManifests {
		files = append(files, filepath.Join(repoRoot, filepath.FromSlash(rel)))
	}
	return run(files, opts, func(path string) *patch.Result {
		return patch.Transform(path, func(content []byte) ([]byte, error) {
			return addLibSection(path, content)
		}, opts.Options)
	}), nil
}

func addLibSection(path string, content []byte) ([]byte, error) {
	var manifest map[string]any
	md, err := toml.Decode(string(content), &manifest)
	if err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	if md.IsDefined("lib") {
		logging.Debugf("%s already has a [lib] section.\n", path)
		return content, nil
	}

	loc := packageHeader.FindIndex(content)
	if loc == nil {
		logging.Debugf("%s has no [package] section.\n", path)
		return content, nil
	}

	end := len(content)
	if i := bytes.Index(content[loc[1]:], []byte("\n[")); i >= 0 {
		end = loc[1] + i
	}

	out := make([]byte, 0, len(content)+len(libSection))
	out = append(out, content[:end]...)
	out = append(out, libSection...)
	out = append(out, content[end:]...)
	return out, nil
}
