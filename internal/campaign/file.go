package campaign

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/caoccao/javet-buildkit/internal/patch"
	"gopkg.in/yaml.v3"
)

// fileDoc is the YAML layout of a campaign file:
//
//	campaigns:
//	  - name: android
//	    description: Android packaging version
//	    format: triple
//	    targets:
//	      - path: android/pom.xml
//	        separator: lf
//	        rules:
//	          - pattern: '^    <version>(?P<version>\d+\.\d+\.\d+)</version>$'
//	          - pattern: '(?P<version>\d+,\d+,\d+)'
//	            delimiter: comma
type fileDoc struct {
	Campaigns []campaignDef `yaml:"campaigns"`
}

type campaignDef struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Format      string      `yaml:"format"`
	Targets     []targetDef `yaml:"targets"`
}

type targetDef struct {
	Path      string    `yaml:"path"`
	Separator string    `yaml:"separator"`
	Rules     []ruleDef `yaml:"rules"`
}

type ruleDef struct {
	Pattern   string `yaml:"pattern"`
	Delimiter string `yaml:"delimiter"`
}

// LoadFile reads campaign definitions from a YAML file.
func LoadFile(path string) ([]*Campaign, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading campaign file: %w", err)
	}
	campaigns, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return campaigns, nil
}

// Parse decodes campaign definitions from YAML and compiles their rules.
func Parse(data []byte) ([]*Campaign, error) {
	var doc fileDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing campaign file: %w", err)
	}
	if len(doc.Campaigns) == 0 {
		return nil, errors.New("no campaigns defined")
	}

	seen := make(map[string]bool)
	campaigns := make([]*Campaign, 0, len(doc.Campaigns))
	for i, cs := range doc.Campaigns {
		name := strings.TrimSpace(cs.Name)
		if name == "" {
			return nil, fmt.Errorf("campaign %d: missing name", i+1)
		}
		if seen[name] {
			return nil, fmt.Errorf("campaign %q defined twice", name)
		}
		seen[name] = true

		c, err := cs.compile(name)
		if err != nil {
			return nil, fmt.Errorf("campaign %q: %w", name, err)
		}
		campaigns = append(campaigns, c)
	}
	return campaigns, nil
}

func (cs campaignDef) compile(name string) (*Campaign, error) {
	format, err := ParseFormat(cs.Format)
	if err != nil {
		return nil, err
	}
	if len(cs.Targets) == 0 {
		return nil, errors.New("no targets defined")
	}

	c := &Campaign{Name: name, Description: cs.Description, Format: format}
	for _, ts := range cs.Targets {
		if strings.TrimSpace(ts.Path) == "" {
			return nil, errors.New("target with empty path")
		}
		sep, err := patch.ParseSeparator(ts.Separator)
		if err != nil {
			return nil, fmt.Errorf("target %s: %w", ts.Path, err)
		}
		if len(ts.Rules) == 0 {
			return nil, fmt.Errorf("target %s: no rules defined", ts.Path)
		}

		t := patch.Target{Path: ts.Path, Separator: sep}
		for _, rs := range ts.Rules {
			delim, err := patch.ParseDelimiter(rs.Delimiter)
			if err != nil {
				return nil, fmt.Errorf("target %s: %w", ts.Path, err)
			}
			rule, err := patch.NewRule(rs.Pattern, delim)
			if err != nil {
				return nil, fmt.Errorf("target %s: %w", ts.Path, err)
			}
			t.Rules = append(t.Rules, rule)
		}
		c.Targets = append(c.Targets, t)
	}
	return c, nil
}
