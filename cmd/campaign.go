package cmd

import (
	"github.com/caoccao/javet-buildkit/internal/logging"
	"github.com/spf13/cobra"
)

var campaignCmd = &cobra.Command{
	Use:   "campaign",
	Short: "Inspect version campaigns",
}

var campaignListCmd = &cobra.Command{
	Use:   "list",
	Short: "List known campaigns",
	Args:  usageArgs(cobra.NoArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		set, err := loadCampaigns()
		if err != nil {
			return err
		}
		for _, c := range set.All() {
			logging.Infof("%-8s %-6s %2d files  %s\n", c.Name, c.Format, len(c.Targets), c.Description)
		}
		return nil
	},
}

var campaignShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show the files and patterns of a campaign",
	Args:  usageArgs(cobra.ExactArgs(1)),
	RunE: func(cmd *cobra.Command, args []string) error {
		set, err := loadCampaigns()
		if err != nil {
			return err
		}
		c, err := set.Lookup(args[0])
		if err != nil {
			return wrapUsageError(err)
		}

		logging.Infof("%s: %s\n", logging.Paint("bold", c.Name), c.Description)
		logging.Infof("Format: %s (e.g. %s)\n", c.Format, c.Format.Example())
		for _, t := range c.Targets {
			logging.Infof("\n%s [%s]\n", t.Path, t.Separator)
			for _, r := range t.Rules {
				logging.Infof("  %-5s %s\n", r.Delimiter, r.Pattern)
			}
		}
		return nil
	},
}

func init() {
	addCampaignFileFlag(campaignListCmd)
	addCampaignFileFlag(campaignShowCmd)
	campaignCmd.AddCommand(campaignListCmd, campaignShowCmd)
	rootCmd.AddCommand(campaignCmd)
}
