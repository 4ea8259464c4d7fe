package patch

import "fmt"

// Outcome classifies what happened to one target.
type Outcome int

const (
	Skipped Outcome = iota
	Updated
	Missing
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Skipped:
		return "skipped"
	case Updated:
		return "updated"
	case Missing:
		return "missing"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// LineChange records one matched line. Line is 1-based.
// Old and New are the captured token before and after substitution.
type LineChange struct {
	Line int
	Old  string
	New  string
}

// Result is the structured outcome of one rewrite. Presentation is left to callers.
type Result struct {
	Path    string
	Outcome Outcome
	Changes []LineChange
	// Diff is set only when Options.Diff is on and the content changed.
	Diff string
	// DryRun marks an Updated result whose write was suppressed.
	DryRun bool
	Err    error
}

// Summary counts results per outcome.
type Summary struct {
	Updated int
	Skipped int
	Missing int
	Failed  int
}

// Total returns the number of results counted.
func (s Summary) Total() int {
	return s.Updated + s.Skipped + s.Missing + s.Failed
}

// Summarize returns counts per outcome.
func Summarize(results []*Result) Summary {
	var s Summary
	for _, r := range results {
		switch r.Outcome {
		case Updated:
			s.Updated++
		case Skipped:
			s.Skipped++
		case Missing:
			s.Missing++
		case Failed:
			s.Failed++
		}
	}
	return s
}
