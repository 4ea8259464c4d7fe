package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/caoccao/javet-buildkit/internal/campaign"
	"github.com/caoccao/javet-buildkit/internal/config"
	"github.com/caoccao/javet-buildkit/internal/logging"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status [campaign...]",
	Short: "Show the versions each campaign's files currently carry",
	RunE: func(cmd *cobra.Command, args []string) error {
		set, err := loadCampaigns()
		if err != nil {
			return err
		}
		campaigns := set.All()
		if len(args) > 0 {
			campaigns = campaigns[:0]
			for _, name := range args {
				c, err := set.Lookup(name)
				if err != nil {
					return wrapUsageError(err)
				}
				campaigns = append(campaigns, c)
			}
		}

		state, err := config.Load(projectRoot)
		if err != nil {
			return err
		}

		drifted := 0
		for i, c := range campaigns {
			if i > 0 {
				logging.Infoln()
			}
			if !printStatus(c, state) {
				drifted++
			}
		}
		if drifted > 0 {
			return fmt.Errorf("%d campaign(s) have inconsistent versions", drifted)
		}
		return nil
	},
}

// printStatus reports one campaign and returns false when its files disagree.
func printStatus(c *campaign.Campaign, state *config.LocalState) bool {
	scans := c.Scan(projectRoot)
	values := campaign.Values(scans)

	current := "none found"
	switch len(values) {
	case 0:
	case 1:
		current = logging.Paint("green", values[0])
	default:
		current = logging.Paint("red", strings.Join(values, ", "))
	}
	logging.Infof("%s: %s\n", logging.Paint("bold", c.Name), current)

	if applied, ok := state.Versions[c.Name]; ok {
		logging.Infof("  Last set: %s on %s (%d updated)\n",
			applied.Version, applied.AppliedAt.Local().Format("2006-01-02 15:04"), applied.Updated)
	}

	missing := 0
	for _, s := range scans {
		rel := relPath(s.Path)
		switch {
		case s.Err != nil:
			logging.Errorf("  %s: %v\n", rel, s.Err)
		case s.Missing:
			missing++
			logging.Debugf("  %s: missing\n", rel)
		case len(s.Matches) == 0:
			logging.Warnf("  %s: no version found\n", rel)
		case len(values) > 1:
			for _, m := range s.Matches {
				logging.Infof("  %s:%d: %s\n", rel, m.Line, m.Value)
			}
		default:
			for _, m := range s.Matches {
				logging.Debugf("  %s:%d: %s\n", rel, m.Line, m.Value)
			}
		}
	}
	if missing > 0 {
		logging.Infof("  %d of %d files not present.\n", missing, len(scans))
	}
	if len(values) > 1 {
		logging.Warnf("%s files disagree: %s\n", c.Name, strings.Join(values, ", "))
		return false
	}
	return true
}

func relPath(path string) string {
	rel, err := filepath.Rel(projectRoot, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}

func init() {
	addCampaignFileFlag(statusCmd)
	rootCmd.AddCommand(statusCmd)
}
