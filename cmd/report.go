package cmd

import (
	"fmt"
	"strings"

	"github.com/caoccao/javet-buildkit/internal/logging"
	"github.com/caoccao/javet-buildkit/internal/patch"
)

// printResult logs one campaign target the way a version run reads.
func printResult(res *patch.Result) {
	logging.Infof("Updating %s.\n", res.Path)
	for _, c := range res.Changes {
		logging.Infof("  %d: %s -> %s\n", c.Line, c.Old, c.New)
	}
	switch res.Outcome {
	case patch.Updated:
		if res.DryRun {
			logging.Infof("  %s\n", logging.Paint("green", "Would update."))
		} else {
			logging.Infof("  %s\n", logging.Paint("green", "Updated."))
		}
	case patch.Skipped:
		logging.Infof("  %s\n", logging.Paint("yellow", "Skipped."))
	case patch.Missing:
		logging.Warnf("%s not found.\n", res.Path)
	case patch.Failed:
		logging.Errorf("%v\n", res.Err)
	}
	printDiff(res)
}

// printPatched logs one build output file. Skipped files only show up with
// --verbose when quiet is set.
func printPatched(res *patch.Result, quiet bool) {
	switch res.Outcome {
	case patch.Updated:
		if res.DryRun {
			logging.Infof("Would patch %s.\n", res.Path)
		} else {
			logging.Infof("Patched %s.\n", res.Path)
		}
	case patch.Skipped:
		if quiet {
			logging.Debugf("Skipped %s.\n", res.Path)
		} else {
			logging.Infof("Skipped %s.\n", res.Path)
		}
	case patch.Missing:
		logging.Warnf("Failed to locate %s.\n", res.Path)
	case patch.Failed:
		logging.Errorf("Failed to patch %s: %v\n", res.Path, res.Err)
	}
	printDiff(res)
}

func printDiff(res *patch.Result) {
	if res.Diff == "" {
		return
	}
	for _, line := range strings.SplitAfter(res.Diff, "\n") {
		switch {
		case line == "":
		case strings.HasPrefix(line, "@@"):
			logging.Infof("%s", logging.Paint("cyan", line))
		case strings.HasPrefix(line, "+"):
			logging.Infof("%s", logging.Paint("green", line))
		case strings.HasPrefix(line, "-"):
			logging.Infof("%s", logging.Paint("red", line))
		default:
			logging.Infof("%s", line)
		}
	}
}

func formatSummary(s patch.Summary, dryRun bool) string {
	verb := "updated"
	if dryRun {
		verb = "would update"
	}
	return fmt.Sprintf("%d %s, %d skipped, %d missing, %d failed",
		s.Updated, verb, s.Skipped, s.Missing, s.Failed)
}

// resultsError turns failed results into the command's exit error.
func resultsError(s patch.Summary) error {
	if s.Failed == 0 {
		return nil
	}
	if s.Failed == 1 {
		return fmt.Errorf("1 file failed")
	}
	return fmt.Errorf("%d files failed", s.Failed)
}
