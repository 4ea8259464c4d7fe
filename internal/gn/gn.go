// Package gn generates the args.gn files V8 is configured with for every
// supported platform.
package gn

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/caoccao/javet-buildkit/internal/patch"
)

// Entry is one "key = value" line. Value is a bool, int or string.
type Entry struct {
	Key   string
	Value any
}

// Config is an ordered list of GN arguments.
type Config []Entry

// String renders the config as LF-terminated "key = value" lines.
func (c Config) String() string {
	var b strings.Builder
	for _, e := range c {
		b.WriteString(e.Key)
		b.WriteString(" = ")
		b.WriteString(formatValue(e.Value))
		b.WriteString("\n")
	}
	return b.String()
}

// Get returns the value of key and whether it is present.
func (c Config) Get(key string) (any, bool) {
	for _, e := range c {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

func formatValue(v any) string {
	switch v := v.(type) {
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case string:
		return strconv.Quote(v)
	}
	return fmt.Sprint(v)
}

// NewConfig builds the arguments for one OS, architecture and i18n setting.
func NewConfig(os, arch string, i18n bool) (Config, error) {
	p, err := Validate(os, arch)
	if err != nil {
		return nil, err
	}
	cpu := targetCPU(arch)

	c := Config{
		{"clang_use_chrome_plugins", false},
		{"compiler_timing", true},
		{"dcheck_always_on", false},
		{"is_component_build", false},
		{"is_debug", false},
		{"is_official_build", false},
		{"symbol_level", 0},
		{"target_cpu", cpu},
	}
	if p.TargetOS != "" {
		c = append(c, Entry{"target_os", p.TargetOS})
	}
	c = append(c, Entry{"use_blink", false})
	c = appendToggle(c, "use_clang_modules", p.ClangModules)
	c = append(c, Entry{"use_custom_libcxx", p.CustomLibCxx.Enabled()})
	c = appendToggle(c, "use_custom_libunwind", p.CustomLibUnwind)
	c = appendToggle(c, "use_safe_libstdcxx", p.SafeLibStdcxx)
	c = append(c,
		Entry{"v8_enable_i18n_support", i18n},
		Entry{"v8_enable_pointer_compression", false},
		Entry{"v8_enable_sandbox", false},
		Entry{"v8_enable_temporal_support", false},
		Entry{"v8_enable_webassembly", true},
		Entry{"v8_monolithic", true},
		Entry{"v8_monolithic_for_shared_library", true},
		Entry{"v8_static_library", true},
		Entry{"v8_target_cpu", cpu},
		Entry{"v8_use_external_startup_data", false},
	)
	return c, nil
}

func appendToggle(c Config, key string, t Toggle) Config {
	if t == Hidden {
		return c
	}
	return append(c, Entry{key, t.Enabled()})
}

// Generate returns the args.gn content for one combination.
func Generate(os, arch string, i18n bool) (string, error) {
	c, err := NewConfig(os, arch, i18n)
	if err != nil {
		return "", err
	}
	return c.String(), nil
}

// FileName returns the args.gn file name for one combination.
func FileName(os, arch string, i18n bool) string {
	suffix := "non-i18n"
	if i18n {
		suffix = "i18n"
	}
	return fmt.Sprintf("%s-%s-%s-args.gn", os, arch, suffix)
}

// Target is one cell of the generation matrix.
type Target struct {
	OS   string
	Arch string
	I18n bool
}

// FileName returns the file name the target is written to.
func (t Target) FileName() string {
	return FileName(t.OS, t.Arch, t.I18n)
}

// Matrix enumerates every supported OS, architecture and i18n setting.
func Matrix() []Target {
	var targets []Target
	for _, p := range Platforms {
		for _, arch := range p.Archs {
			for _, i18n := range []bool{true, false} {
				targets = append(targets, Target{OS: p.OS, Arch: arch, I18n: i18n})
			}
		}
	}
	return targets
}

// Generator writes args.gn files into OutputDir.
type Generator struct {
	OutputDir string
	Options   patch.Options
	// OnFile is called after each file with its rendered content.
	OnFile func(t Target, content string, res *patch.Result)
}

// GenerateOne validates and writes a single combination.
func (g *Generator) GenerateOne(os, arch string, i18n bool) (*patch.Result, error) {
	return g.generate(Target{OS: os, Arch: arch, I18n: i18n})
}

// GenerateAll writes the whole matrix and returns the number of files produced.
// A failed write does not stop the remaining files.
func (g *Generator) GenerateAll() (int, error) {
	var (
		count int
		errs  []error
	)
	for _, t := range Matrix() {
		res, err := g.generate(t)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if res.Outcome == patch.Failed {
			errs = append(errs, res.Err)
			continue
		}
		count++
	}
	return count, errors.Join(errs...)
}

func (g *Generator) generate(t Target) (*patch.Result, error) {
	content, err := Generate(t.OS, t.Arch, t.I18n)
	if err != nil {
		return nil, err
	}
	res := patch.WriteIfChanged(filepath.Join(g.OutputDir, t.FileName()), []byte(content), g.Options)
	if g.OnFile != nil {
		g.OnFile(t, content, res)
	}
	return res, nil
}
