package config

import (
	"os"
	"path/filepath"
)

// RootMarker is the build script at the top of a Javet checkout. Subprojects
// carry their own copy, so a root must also hold the native sources in cpp/.
const RootMarker = "build.gradle.kts"

// GnDir is where generated args.gn files live, relative to the root.
const GnDir = "scripts/v8/gn"

// ResolveRoot walks up from start to the nearest Javet checkout root.
// When none is found the absolute form of start is returned.
func ResolveRoot(start string) string {
	abs, err := filepath.Abs(start)
	if err != nil {
		return start
	}
	for dir := abs; ; {
		if IsRoot(dir) {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return abs
		}
		dir = parent
	}
}

// IsRoot reports whether dir looks like the top of a Javet checkout.
func IsRoot(dir string) bool {
	if info, err := os.Stat(filepath.Join(dir, RootMarker)); err != nil || info.IsDir() {
		return false
	}
	info, err := os.Stat(filepath.Join(dir, "cpp"))
	return err == nil && info.IsDir()
}
