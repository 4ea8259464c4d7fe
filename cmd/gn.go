package cmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/caoccao/javet-buildkit/internal/config"
	"github.com/caoccao/javet-buildkit/internal/gn"
	"github.com/caoccao/javet-buildkit/internal/logging"
	"github.com/caoccao/javet-buildkit/internal/patch"
	"github.com/spf13/cobra"
)

var (
	gnOS     string
	gnArch   string
	gnI18n   bool
	gnDryRun bool
	gnOut    string
)

var gnCmd = &cobra.Command{
	Use:   "gn",
	Short: "Generate V8 args.gn files",
	Long: `Generate the GN argument files used to build V8.

Without --os and --arch every supported combination is generated, with and
without i18n. Files that already hold the same content are not rewritten.`,
	Args: usageArgs(cobra.NoArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		if (gnOS == "") != (gnArch == "") {
			return wrapUsageError(errors.New("--os and --arch must be given together"))
		}

		out := gnOut
		if out == "" {
			out = filepath.Join(projectRoot, filepath.FromSlash(config.GnDir))
		}
		g := &gn.Generator{
			OutputDir: out,
			Options:   patch.Options{DryRun: gnDryRun},
			OnFile:    printGenerated,
		}

		if gnOS != "" {
			res, err := g.GenerateOne(gnOS, gnArch, gnI18n)
			if err != nil {
				var ve *gn.ValidationError
				if errors.As(err, &ve) {
					return wrapUsageError(err)
				}
				return err
			}
			if res.Outcome == patch.Failed {
				return res.Err
			}
			return nil
		}

		count, err := g.GenerateAll()
		if gnDryRun {
			logging.Infof("\n[DRY RUN] Would generate %d files total.\n", count)
		} else {
			logging.Infof("\nGenerated %d files total.\n", count)
		}
		return err
	},
}

func printGenerated(t gn.Target, content string, res *patch.Result) {
	name := t.FileName()
	switch {
	case res.Outcome == patch.Failed:
		logging.Errorf("Failed to write %s: %v\n", name, res.Err)
	case gnDryRun:
		logging.Infof("[DRY RUN] Would generate: %s\n", name)
		logging.Infof("%s", content)
		logging.Infoln("---")
	case res.Outcome == patch.Skipped:
		logging.Infof("Generated: %s %s\n", name, logging.Paint("dark_gray", "(unchanged)"))
	default:
		logging.Infof("Generated: %s\n", name)
	}
	logging.Debugf("  %s\n", res.Path)
}

func init() {
	gnCmd.Flags().StringVar(&gnOS, "os", "", fmt.Sprintf("Target OS (%s)", strings.Join(gn.OSNames(), ", ")))
	gnCmd.Flags().StringVar(&gnArch, "arch", "", "Target architecture")
	gnCmd.Flags().BoolVar(&gnI18n, "i18n", false, "Enable i18n support (with --os and --arch)")
	gnCmd.Flags().BoolVar(&gnDryRun, "dry-run", false, "Print the files instead of writing them")
	gnCmd.Flags().StringVar(&gnOut, "out", "", "Output directory (default <root>/"+config.GnDir+")")
	rootCmd.AddCommand(gnCmd)
}
