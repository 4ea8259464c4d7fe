package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/caoccao/javet-buildkit/internal/campaign"
	"github.com/caoccao/javet-buildkit/internal/config"
	"github.com/caoccao/javet-buildkit/internal/logging"
	"github.com/caoccao/javet-buildkit/internal/patch"
	"github.com/caoccao/javet-buildkit/internal/semver"
	"github.com/spf13/cobra"
)

var (
	setDryRun      bool
	setDiff        bool
	setNoDowngrade bool
	setBump        string
)

var setVersionCmd = &cobra.Command{
	Use:     "set-version <campaign> [version]",
	Aliases: []string{"bump"},
	Short:   "Write a version number into every file of a campaign",
	Long: `Rewrite the version token in every file a campaign lists.

Use --bump instead of a version to increment the highest version currently
found in the tree. Files that already carry the version are left untouched.`,
	Args: usageArgs(cobra.RangeArgs(1, 2)),
	RunE: func(cmd *cobra.Command, args []string) error {
		set, err := loadCampaigns()
		if err != nil {
			return err
		}
		c, err := set.Lookup(args[0])
		if err != nil {
			return wrapUsageError(err)
		}

		value, err := targetVersion(c, args[1:])
		if err != nil {
			return err
		}

		if setDryRun {
			logging.Infoln("[DRY RUN] No files will be written.")
		}
		report, err := c.Run(projectRoot, value, campaign.RunOptions{
			Options:         patch.Options{DryRun: setDryRun, Diff: setDiff},
			RefuseDowngrade: setNoDowngrade,
			OnResult:        printResult,
		})
		if err != nil {
			var ve *campaign.ValidationError
			if errors.As(err, &ve) {
				return wrapUsageError(err)
			}
			return err
		}

		summary := report.Summary()
		logging.Infof("\n%s %s: %s\n", c.Name, value, formatSummary(summary, setDryRun))

		if !setDryRun {
			if err := recordVersion(report); err != nil {
				logging.Warnf("could not save state: %v\n", err)
			}
		}
		return resultsError(summary)
	},
}

// targetVersion returns the explicit version argument or computes one from --bump.
func targetVersion(c *campaign.Campaign, args []string) (string, error) {
	switch {
	case len(args) == 1 && setBump != "":
		return "", wrapUsageError(errors.New("give either a version or --bump, not both"))
	case len(args) == 1:
		return args[0], nil
	case setBump == "":
		return "", wrapUsageError(errors.New("a version or --bump is required"))
	}

	part, err := semver.ParsePart(setBump)
	if err != nil {
		return "", wrapUsageError(err)
	}
	values := campaign.Values(c.Scan(projectRoot))
	if len(values) == 0 {
		return "", fmt.Errorf("no %s version found under %s to bump", c.Name, projectRoot)
	}
	current := values[len(values)-1]
	next, err := semver.Increment(current, part)
	if err != nil {
		return "", err
	}
	logging.Infof("Bumping %s from %s to %s.\n", c.Name, current, next)
	return next, nil
}

func recordVersion(report *campaign.Report) error {
	state, err := config.Load(projectRoot)
	if err != nil {
		return err
	}
	summary := report.Summary()
	state.Record(report.Campaign, config.AppliedVersion{
		Version:   report.Value,
		AppliedAt: time.Now().UTC(),
		Updated:   summary.Updated,
		Missing:   summary.Missing,
	})
	return state.Save(projectRoot)
}

// loadCampaigns returns the built-in campaigns plus any from --campaign-file.
func loadCampaigns() (*campaign.Set, error) {
	set := campaign.Builtin()
	if campaignFile == "" {
		return set, nil
	}
	extra, err := campaign.LoadFile(campaignFile)
	if err != nil {
		return nil, err
	}
	for _, c := range extra {
		logging.Debugf("Loaded campaign %q from %s\n", c.Name, campaignFile)
		set.Add(c)
	}
	return set, nil
}

func addCampaignFileFlag(cmd *cobra.Command) {
	cmd.Flags().StringVar(&campaignFile, "campaign-file", "", "YAML file with additional campaigns")
}

func init() {
	setVersionCmd.Flags().BoolVar(&setDryRun, "dry-run", false, "Show what would change without writing")
	setVersionCmd.Flags().BoolVar(&setDiff, "diff", false, "Print a unified diff of each changed file")
	setVersionCmd.Flags().BoolVar(&setNoDowngrade, "no-downgrade", false, "Refuse a version older than the one in the tree")
	setVersionCmd.Flags().StringVar(&setBump, "bump", "", "Increment the current version: major, minor, patch or build")
	addCampaignFileFlag(setVersionCmd)
	rootCmd.AddCommand(setVersionCmd)
}
