package gn

import (
	"fmt"
	"slices"
	"strings"
)

// Toggle is a per-platform setting that may be left out of the generated file.
type Toggle int

const (
	Hidden Toggle = iota
	Off
	On
)

// Enabled reports whether the toggle is On. Hidden counts as off.
func (t Toggle) Enabled() bool {
	return t == On
}

// Platform holds the defaults that vary by target operating system.
type Platform struct {
	OS    string
	Archs []string
	// TargetOS is written as target_os when non-empty.
	TargetOS        string
	ClangModules    Toggle
	CustomLibCxx    Toggle
	CustomLibUnwind Toggle
	SafeLibStdcxx   Toggle
}

// Platforms lists every supported platform in generation order.
var Platforms = []Platform{
	{
		OS:              "android",
		Archs:           []string{"arm", "arm64", "x86", "x86_64"},
		TargetOS:        "android",
		ClangModules:    Hidden,
		CustomLibCxx:    Off,
		CustomLibUnwind: Hidden,
		SafeLibStdcxx:   Hidden,
	},
	{
		OS:              "linux",
		Archs:           []string{"arm64", "x86_64"},
		ClangModules:    Off,
		CustomLibCxx:    On,
		CustomLibUnwind: On,
		SafeLibStdcxx:   Off,
	},
	{
		OS:              "macos",
		Archs:           []string{"arm64", "x86_64"},
		ClangModules:    Off,
		CustomLibCxx:    Off,
		CustomLibUnwind: Hidden,
		SafeLibStdcxx:   Hidden,
	},
	{
		OS:              "windows",
		Archs:           []string{"x86_64"},
		ClangModules:    Hidden,
		CustomLibCxx:    Off,
		CustomLibUnwind: Hidden,
		SafeLibStdcxx:   Hidden,
	},
}

// ValidationError reports an unsupported OS or OS/architecture pair.
type ValidationError struct {
	OS    string
	Arch  string
	Valid []string
}

func (e *ValidationError) Error() string {
	if e.Arch == "" {
		return fmt.Sprintf("Invalid OS: %s. Valid options: %s", e.OS, strings.Join(e.Valid, ", "))
	}
	return fmt.Sprintf("Invalid architecture %s for OS %s. Valid options: %s", e.Arch, e.OS, strings.Join(e.Valid, ", "))
}

// OSNames returns the supported operating systems in generation order.
func OSNames() []string {
	names := make([]string, 0, len(Platforms))
	for _, p := range Platforms {
		names = append(names, p.OS)
	}
	return names
}

// Lookup returns the platform for os.
func Lookup(os string) (Platform, error) {
	for _, p := range Platforms {
		if p.OS == os {
			return p, nil
		}
	}
	return Platform{}, &ValidationError{OS: os, Valid: OSNames()}
}

// Validate checks that arch is supported on os.
func Validate(os, arch string) (Platform, error) {
	p, err := Lookup(os)
	if err != nil {
		return Platform{}, err
	}
	if !slices.Contains(p.Archs, arch) {
		return Platform{}, &ValidationError{OS: os, Arch: arch, Valid: p.Archs}
	}
	return p, nil
}

// targetCPU maps an architecture name onto GN's target_cpu spelling.
func targetCPU(arch string) string {
	if arch == "x86_64" {
		return "x64"
	}
	return arch
}
