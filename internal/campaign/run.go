package campaign

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/caoccao/javet-buildkit/internal/patch"
	"github.com/caoccao/javet-buildkit/internal/semver"
)

// RunOptions controls a campaign run.
type RunOptions struct {
	patch.Options
	// RefuseDowngrade stops a run before any write when the tree already
	// holds a newer value.
	RefuseDowngrade bool
	// OnResult is called after each target, in declaration order.
	OnResult func(*patch.Result)
}

// Report aggregates the per-target results of one run.
type Report struct {
	Campaign string
	Value    string
	Results  []*patch.Result
}

// Summary returns counts per outcome.
func (r *Report) Summary() patch.Summary {
	return patch.Summarize(r.Results)
}

// Failed reports whether any target failed to be read or written.
func (r *Report) Failed() bool {
	return r.Summary().Failed > 0
}

// DowngradeError is returned when the requested value is older than one
// already present in the tree.
type DowngradeError struct {
	Campaign string
	Current  string
	Value    string
}

func (e *DowngradeError) Error() string {
	return fmt.Sprintf("%s version %s is older than %s found in the tree (drop --no-downgrade to allow)",
		e.Campaign, e.Value, e.Current)
}

// Run propagates value to every target under root. Targets that are missing
// or fail are recorded and the run continues; each target is visited once.
// An error is returned only for an invalid value, or for an older value when
// RefuseDowngrade is set.
func (c *Campaign) Run(root, value string, opts RunOptions) (*Report, error) {
	if err := c.Validate(value); err != nil {
		return nil, err
	}

	if opts.RefuseDowngrade {
		if values := Values(c.Scan(root)); len(values) > 0 {
			if current := values[len(values)-1]; semver.Compare(current, value) > 0 {
				return nil, &DowngradeError{Campaign: c.Name, Current: current, Value: value}
			}
		}
	}

	report := &Report{Campaign: c.Name, Value: value}
	for _, t := range c.Targets {
		res := patch.ApplyTarget(root, t, value, opts.Options)
		report.Results = append(report.Results, res)
		if opts.OnResult != nil {
			opts.OnResult(res)
		}
	}
	return report, nil
}

// TargetScan is the current state of one target.
type TargetScan struct {
	Path    string
	Matches []patch.Match
	Missing bool
	Err     error
}

// Scan reads every target under root and reports the versions it holds.
func (c *Campaign) Scan(root string) []TargetScan {
	scans := make([]TargetScan, 0, len(c.Targets))
	for _, t := range c.Targets {
		path := filepath.Join(root, filepath.FromSlash(t.Path))
		matches, err := patch.Inspect(path, t.Separator, t.Rules)
		scan := TargetScan{Path: path, Matches: matches}
		switch {
		case errors.Is(err, patch.ErrNotFound):
			scan.Missing = true
		case err != nil:
			scan.Err = err
		}
		for i := range scan.Matches {
			scan.Matches[i].Value = normalize(scan.Matches[i].Value)
		}
		scans = append(scans, scan)
	}
	return scans
}

// Values returns the distinct versions found by a scan, oldest first.
func Values(scans []TargetScan) []string {
	seen := make(map[string]struct{})
	var values []string
	for _, s := range scans {
		for _, m := range s.Matches {
			if _, ok := seen[m.Value]; ok {
				continue
			}
			seen[m.Value] = struct{}{}
			values = append(values, m.Value)
		}
	}
	slices.SortFunc(values, semver.Compare)
	return values
}
