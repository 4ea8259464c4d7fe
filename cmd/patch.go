package cmd

import (
	"errors"

	"github.com/caoccao/javet-buildkit/internal/buildpatch"
	"github.com/caoccao/javet-buildkit/internal/logging"
	"github.com/caoccao/javet-buildkit/internal/patch"
	"github.com/caoccao/javet-buildkit/internal/progress"
	"github.com/spf13/cobra"
)

var (
	v8Path       string
	nodePath     string
	temporalPath string
	strict       bool
	patchDryRun  bool
	patchDiff    bool
)

var patchCmd = &cobra.Command{
	Use:   "patch",
	Short: "Patch generated build files before compiling",
}

var patchV8Cmd = &cobra.Command{
	Use:   "v8",
	Short: "Relax warning flags in V8's generated ninja files",
	Args:  usageArgs(cobra.NoArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPatch("v8", v8Path, buildpatch.PatchNinja)
	},
}

var patchNodeCmd = &cobra.Command{
	Use:   "node",
	Short: "Patch Node.js common.gypi and generated makefiles",
	Args:  usageArgs(cobra.NoArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPatch("node", nodePath, buildpatch.PatchNode)
	},
}

var patchTemporalCmd = &cobra.Command{
	Use:   "temporal",
	Short: "Add a static library target to temporal_rs Cargo manifests",
	Args:  usageArgs(cobra.NoArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPatch("temporal", temporalPath, buildpatch.PatchTemporal)
	},
}

type patchFunc func(root string, opts buildpatch.Options) ([]*patch.Result, error)

func runPatch(name, root string, fn patchFunc) error {
	if root == "" {
		return wrapUsageError(errors.New("--path is required"))
	}

	var bar *progress.Bar
	opts := buildpatch.Options{
		Options: patch.Options{DryRun: patchDryRun, Diff: patchDiff},
		Strict:  strict,
		OnProgress: func(p buildpatch.Progress) {
			if p.Completed == 1 {
				bar = progress.New(p.Total, "Patching "+name)
			}
			bar.Set(p.Completed)
		},
	}
	opts.OnResult = func(res *patch.Result) {
		printPatched(res, bar != nil)
	}

	results, err := fn(root, opts)
	bar.Finish()
	if err != nil {
		return err
	}

	summary := patch.Summarize(results)
	if summary.Total() == 0 {
		logging.Infoln("No files to patch.")
		return nil
	}
	logging.Infof("Patched %s: %s\n", name, formatSummary(summary, patchDryRun))
	return resultsError(summary)
}

func init() {
	patchV8Cmd.Flags().StringVarP(&v8Path, "path", "p", "", "V8 checkout root")
	patchNodeCmd.Flags().StringVarP(&nodePath, "path", "p", "", "Node.js checkout root")
	patchTemporalCmd.Flags().StringVarP(&temporalPath, "path", "p", "", "temporal_rs checkout root")

	patchCmd.PersistentFlags().BoolVar(&strict, "strict", false, "Fail when a build output directory is missing")
	patchCmd.PersistentFlags().BoolVar(&patchDryRun, "dry-run", false, "Show what would change without writing")
	patchCmd.PersistentFlags().BoolVar(&patchDiff, "diff", false, "Print a unified diff of each changed file")

	patchCmd.AddCommand(patchV8Cmd, patchNodeCmd, patchTemporalCmd)
	rootCmd.AddCommand(patchCmd)
}
