package cmd

import (
	"bytes"

	"github.com/BurntSushi/toml"
	"github.com/caoccao/javet-buildkit/internal/logging"
	"github.com/caoccao/javet-buildkit/internal/profile"
	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage saved option profiles",
}

// Flags for profile create
var (
	profCampaignFile *string
	profV8Path       *string
	profNodePath     *string
	profTemporalPath *string
	profGnOut        *string
	profStrict       *bool
)

var profileCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new profile",
	Args:  usageArgs(cobra.ExactArgs(1)),
	RunE: func(cmd *cobra.Command, args []string) error {
		p := &profile.Profile{}

		if cmd.Flags().Changed("root") {
			p.Root = &rootDir
		}
		if cmd.Flags().Changed("campaign-file") {
			p.CampaignFile = profCampaignFile
		}
		if cmd.Flags().Changed("v8-path") {
			p.V8Path = profV8Path
		}
		if cmd.Flags().Changed("node-path") {
			p.NodePath = profNodePath
		}
		if cmd.Flags().Changed("temporal-path") {
			p.TemporalPath = profTemporalPath
		}
		if cmd.Flags().Changed("gn-out") {
			p.GnOut = profGnOut
		}
		if cmd.Flags().Changed("strict") {
			p.Strict = profStrict
		}
		if cmd.Flags().Changed("verbose") {
			p.Verbose = &verbose
		}
		if cmd.Flags().Changed("no-color") {
			p.NoColor = &noColor
		}
		if cmd.Flags().Changed("log-file") {
			p.LogFile = &logFile
		}

		if err := profile.Save(args[0], p); err != nil {
			return err
		}
		logging.Infof("Profile %q saved to %s\n", args[0], profile.Dir())
		return nil
	},
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved profiles",
	Args:  usageArgs(cobra.NoArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		names, err := profile.List()
		if err != nil {
			return err
		}
		if len(names) == 0 {
			logging.Infoln("No profiles saved.")
			return nil
		}
		for _, n := range names {
			logging.Infoln(n)
		}
		return nil
	},
}

var profileShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a profile's contents",
	Args:  usageArgs(cobra.ExactArgs(1)),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := profile.Load(args[0])
		if err != nil {
			return err
		}
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(p); err != nil {
			return err
		}
		logging.Infof("%s", buf.String())
		return nil
	},
}

var profileDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a saved profile",
	Args:  usageArgs(cobra.ExactArgs(1)),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := profile.Delete(args[0]); err != nil {
			return err
		}
		logging.Infof("Profile %q deleted.\n", args[0])
		return nil
	},
}

func init() {
	// Wire up flags for create. We use local variables so they only apply to
	// this subcommand and don't collide with the flags of the commands they
	// configure.
	profCampaignFile = profileCreateCmd.Flags().String("campaign-file", "", "YAML file with additional campaigns")
	profV8Path = profileCreateCmd.Flags().String("v8-path", "", "V8 checkout root for patch v8")
	profNodePath = profileCreateCmd.Flags().String("node-path", "", "Node.js checkout root for patch node")
	profTemporalPath = profileCreateCmd.Flags().String("temporal-path", "", "temporal_rs checkout root for patch temporal")
	profGnOut = profileCreateCmd.Flags().String("gn-out", "", "Output directory for gn")
	profStrict = profileCreateCmd.Flags().Bool("strict", false, "Fail when a build output directory is missing")

	profileCmd.AddCommand(profileCreateCmd, profileListCmd, profileShowCmd, profileDeleteCmd)
	rootCmd.AddCommand(profileCmd)
}
