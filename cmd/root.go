package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/caoccao/javet-buildkit/internal/config"
	"github.com/caoccao/javet-buildkit/internal/logging"
	"github.com/caoccao/javet-buildkit/internal/profile"
	"github.com/spf13/cobra"
)

var (
	rootDir      string
	profileName  string
	verbose      bool
	logFile      string
	noColor      bool
	campaignFile string

	// projectRoot is rootDir resolved to the enclosing checkout.
	projectRoot string
)

var rootCmd = &cobra.Command{
	Use:           "javet-buildkit",
	Short:         "Version and build-patch tool for the Javet repository",
	Long:          "Propagate version numbers across the Javet tree, generate V8 GN args and patch V8/Node.js build outputs before compiling.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Apply profile defaults for flags not explicitly set by the user.
		if profileName != "" {
			p, err := profile.Load(profileName)
			if err != nil {
				return err
			}
			applyProfile(cmd, p)
		}

		logging.SetVerbose(verbose)
		logging.SetColor(logging.StdoutIsTerminal() && !noColor)
		if err := logging.SetOutputFile(logFile); err != nil {
			return fmt.Errorf("opening log file %q: %w", logFile, err)
		}
		projectRoot = config.ResolveRoot(rootDir)
		logging.Debugf("Project root: %s\n", projectRoot)
		return nil
	},
}

func applyProfile(cmd *cobra.Command, p *profile.Profile) {
	changed := cmd.Flags().Changed
	if p.Root != nil && !changed("root") {
		rootDir = *p.Root
	}
	if p.CampaignFile != nil && !changed("campaign-file") {
		campaignFile = *p.CampaignFile
	}
	if !changed("path") {
		switch {
		case cmd == patchV8Cmd && p.V8Path != nil:
			v8Path = *p.V8Path
		case cmd == patchNodeCmd && p.NodePath != nil:
			nodePath = *p.NodePath
		case cmd == patchTemporalCmd && p.TemporalPath != nil:
			temporalPath = *p.TemporalPath
		}
	}
	if p.GnOut != nil && !changed("out") {
		gnOut = *p.GnOut
	}
	if p.Strict != nil && !changed("strict") {
		strict = *p.Strict
	}
	if p.Verbose != nil && !changed("verbose") {
		verbose = *p.Verbose
	}
	if p.NoColor != nil && !changed("no-color") {
		noColor = *p.NoColor
	}
	if p.LogFile != nil && !changed("log-file") {
		logFile = *p.LogFile
	}
}

func Execute() {
	err := rootCmd.Execute()
	closeErr := logging.Close()
	if closeErr != nil {
		fmt.Fprintf(os.Stderr, "Error closing log file: %v\n", closeErr)
		if err == nil {
			os.Exit(1)
		}
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if isUsageError(err) {
			if cmd, _, findErr := rootCmd.Find(os.Args[1:]); findErr == nil && cmd != nil {
				_ = cmd.Usage()
			} else {
				_ = rootCmd.Usage()
			}
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return wrapUsageError(err)
	})

	rootCmd.PersistentFlags().StringVarP(&rootDir, "root", "r", ".", "Javet project root (searched upward for build.gradle.kts)")
	rootCmd.PersistentFlags().StringVar(&profileName, "profile", "", "Load a saved option profile by name")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write command output to a log file")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
}

type usageError struct {
	err error
}

func (e *usageError) Error() string {
	return e.err.Error()
}

func (e *usageError) Unwrap() error {
	return e.err
}

func wrapUsageError(err error) error {
	if err == nil {
		return nil
	}
	return &usageError{err: err}
}

func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if validate == nil {
			return nil
		}
		if err := validate(cmd, args); err != nil {
			return wrapUsageError(err)
		}
		return nil
	}
}

func isUsageError(err error) bool {
	var ue *usageError
	if errors.As(err, &ue) {
		return true
	}

	msg := err.Error()
	return strings.HasPrefix(msg, "unknown command ")
}
