// Package campaign declares which files carry each propagated version and
// drives the patch engine over all of them.
package campaign

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/caoccao/javet-buildkit/internal/patch"
)

const (
	triple = `(?P<version>\d+\.\d+\.\d+)`
	quad   = `(?P<version>\d+\.\d+\.\d+\.\d+)`
	tuple  = `(?P<version>\d+,\d+,\d+)`
)

func lf(path string, rules ...patch.Rule) patch.Target {
	return patch.Target{Path: path, Separator: patch.LF, Rules: rules}
}

func crlf(path string, rules ...patch.Rule) patch.Target {
	return patch.Target{Path: path, Separator: patch.CRLF, Rules: rules}
}

// Format is the shape a campaign's version value must have.
type Format int

const (
	// Triple is MAJOR.MINOR.PATCH.
	Triple Format = iota
	// Quad is MAJOR.MINOR.BUILD.PATCH, as used by V8.
	Quad
)

var formatPatterns = map[Format]*regexp.Regexp{
	Triple: regexp.MustCompile(`^\d+\.\d+\.\d+$`),
	Quad:   regexp.MustCompile(`^\d+\.\d+\.\d+\.\d+$`),
}

func (f Format) String() string {
	switch f {
	case Triple:
		return "triple"
	case Quad:
		return "quad"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// Example returns a sample value in this format for messages.
func (f Format) Example() string {
	if f == Quad {
		return "14.4.258.13"
	}
	return "5.0.3"
}

// ParseFormat accepts "triple" or "quad".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "triple":
		return Triple, nil
	case "quad":
		return Quad, nil
	}
	return Triple, fmt.Errorf("invalid version format %q (want triple or quad)", s)
}

// ValidationError reports a version value that does not fit its campaign.
type ValidationError struct {
	Campaign string
	Value    string
	Reason   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s version %q: %s", e.Campaign, e.Value, e.Reason)
}

// Campaign is a named, ordered table of targets sharing one version axis.
type Campaign struct {
	Name        string
	Description string
	Format      Format
	Targets     []patch.Target
}

// Validate checks value against the campaign's format.
func (c *Campaign) Validate(value string) error {
	re, ok := formatPatterns[c.Format]
	if !ok {
		return &ValidationError{Campaign: c.Name, Value: value, Reason: fmt.Sprintf("unknown format %v", c.Format)}
	}
	if !re.MatchString(value) {
		return &ValidationError{
			Campaign: c.Name,
			Value:    value,
			Reason:   fmt.Sprintf("expected %s version like %s", c.Format, c.Format.Example()),
		}
	}
	return nil
}

// Set is an ordered collection of campaigns with unique names.
type Set struct {
	campaigns []*Campaign
}

// Builtin returns the campaigns shipped with the tool: javet, node and v8.
func Builtin() *Set {
	return &Set{campaigns: []*Campaign{javet, node, v8}}
}

// Add appends c, or replaces a campaign of the same name.
func (s *Set) Add(c *Campaign) {
	for i, existing := range s.campaigns {
		if existing.Name == c.Name {
			s.campaigns[i] = c
			return
		}
	}
	s.campaigns = append(s.campaigns, c)
}

// Lookup returns the campaign with the given name.
func (s *Set) Lookup(name string) (*Campaign, error) {
	for _, c := range s.campaigns {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, fmt.Errorf("unknown campaign %q (valid: %s)", name, strings.Join(s.Names(), ", "))
}

// Names returns campaign names in declaration order.
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.campaigns))
	for _, c := range s.campaigns {
		names = append(names, c.Name)
	}
	return names
}

// All returns the campaigns in declaration order.
func (s *Set) All() []*Campaign {
	return slices.Clone(s.campaigns)
}

// normalize maps a captured token onto dotted form for comparison.
func normalize(token string) string {
	return strings.ReplaceAll(token, ",", ".")
}
