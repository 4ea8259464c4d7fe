package patch

import (
	"fmt"
	"regexp"
	"strings"
)

// VersionGroup is the capture group name every rule must define.
const VersionGroup = "version"

// Separator is the exact byte sequence a target's lines are joined with.
type Separator string

const (
	LF   Separator = "\n"
	CRLF Separator = "\r\n"
)

func (s Separator) String() string {
	switch s {
	case LF:
		return "LF"
	case CRLF:
		return "CRLF"
	}
	return fmt.Sprintf("%q", string(s))
}

// ParseSeparator accepts "lf" or "crlf" in any case. Empty means LF.
func ParseSeparator(s string) (Separator, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "lf":
		return LF, nil
	case "crlf":
		return CRLF, nil
	}
	return "", fmt.Errorf("invalid line separator %q (want lf or crlf)", s)
}

// Delimiter selects how a dotted version is rendered into a rule's capture.
type Delimiter int

const (
	// Dot substitutes the value as given.
	Dot Delimiter = iota
	// Comma renders the value as a resource tuple: 1.2.3 becomes 1,2,3.
	Comma
)

func (d Delimiter) String() string {
	if d == Comma {
		return "comma"
	}
	return "dot"
}

// Format renders value for this delimiter.
func (d Delimiter) Format(value string) string {
	if d == Comma {
		return strings.ReplaceAll(value, ".", ",")
	}
	return value
}

// ParseDelimiter accepts "dot" or "comma". Empty means Dot.
func ParseDelimiter(s string) (Delimiter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "dot":
		return Dot, nil
	case "comma":
		return Comma, nil
	}
	return Dot, fmt.Errorf("invalid delimiter %q (want dot or comma)", s)
}

// Rule locates one versioned token on a line.
type Rule struct {
	Pattern   *regexp.Regexp
	Delimiter Delimiter
}

// NewRule compiles expr and checks that it captures a version group.
func NewRule(expr string, d Delimiter) (Rule, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return Rule{}, fmt.Errorf("compiling pattern %q: %w", expr, err)
	}
	if re.SubexpIndex(VersionGroup) < 0 {
		return Rule{}, fmt.Errorf("pattern %q has no (?P<%s>...) group", expr, VersionGroup)
	}
	return Rule{Pattern: re, Delimiter: d}, nil
}

// MustRule is NewRule for static tables. It panics on an invalid pattern.
func MustRule(expr string, d Delimiter) Rule {
	r, err := NewRule(expr, d)
	if err != nil {
		panic(err)
	}
	return r
}

// Dotted builds a rule whose capture holds a dotted version.
func Dotted(expr string) Rule {
	return MustRule(expr, Dot)
}

// CommaTuple builds a rule whose capture holds a comma-separated tuple.
func CommaTuple(expr string) Rule {
	return MustRule(expr, Comma)
}

// find returns the byte offsets of the version capture in line.
func (r Rule) find(line string) (start, end int, ok bool) {
	loc := r.Pattern.FindStringSubmatchIndex(line)
	if loc == nil {
		return 0, 0, false
	}
	i := r.Pattern.SubexpIndex(VersionGroup)
	start, end = loc[2*i], loc[2*i+1]
	if start < 0 {
		return 0, 0, false
	}
	return start, end, true
}

// match applies the rule to line. The returned line has only the capture
// replaced; everything outside it is preserved byte for byte.
func (r Rule) match(line, value string) (LineChange, string, bool) {
	start, end, ok := r.find(line)
	if !ok {
		return LineChange{}, line, false
	}
	rendered := r.Delimiter.Format(value)
	change := LineChange{Old: line[start:end], New: rendered}
	return change, line[:start] + rendered + line[end:], true
}
