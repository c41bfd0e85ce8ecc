package cli

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/yaklabco/textorize/internal/logging"
	"github.com/yaklabco/textorize/internal/ui/pretty"
	"github.com/yaklabco/textorize/pkg/config"
	"github.com/yaklabco/textorize/pkg/runner"
	"github.com/yaklabco/textorize/pkg/source"
)

func newWatchCommand() *cobra.Command {
	var cfg config.Config
	flags := &convertFlags{}
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch [paths...]",
		Short: "Convert documents again whenever they change",
		Long: `Convert the given files and directories, then keep converting them as
they change until interrupted. New files created in watched directories
are picked up when they have a known extension.

Examples:
  textorize watch docs/
  textorize watch --output-dir text --debounce 500ms site/`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("debounce") {
				cfg.Watch.Debounce = debounce
			}
			return runWatch(cmd, args, &cfg, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "auto", "input format: auto, html, markdown, text")
	cmd.Flags().StringVar(&flags.flavor, "flavor", "commonmark", "Markdown flavor: commonmark, gfm")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.extensions, "ext", nil, "extensions picked up in directories")
	cmd.Flags().StringVarP(&flags.outputDir, "output-dir", "o", "", "write outputs below this directory")
	cmd.Flags().StringVar(&flags.outputExt, "output-ext", "", "extension of output files (default .txt)")
	cmd.Flags().DurationVar(&debounce, "debounce", config.DefaultDebounce, "wait this long for a file to settle")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "list unchanged files too")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string, cfg *config.Config, flags *convertFlags) error {
	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := applyConvertFlags(cmd, cfg, flags); err != nil {
		return err
	}

	finalCfg, workDir, err := loadConfig(ctx, cmd, cfg)
	if err != nil {
		return err
	}

	opts := runner.OptionsFromConfig(finalCfg, args)
	opts.WorkingDir = workDir
	opts.Capture = false
	opts.DryRun = false

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}
	out := cmd.OutOrStdout()
	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, out))

	logging.FromContext(ctx).Debug("starting watch",
		logging.FieldPaths, opts.Paths,
		logging.FieldWorkingDir, opts.WorkingDir,
		logging.FieldDebounce, opts.Debounce,
	)

	r := runner.New(source.NewConverter(string(finalCfg.Flavor)))
	err = r.Watch(ctx, opts, func(outcome runner.FileOutcome) {
		if outcome.Unchanged && !flags.verbose {
			return
		}
		outcome.Path = relToWorkDir(outcome.Path, workDir)
		outcome.OutputPath = relToWorkDir(outcome.OutputPath, workDir)
		fmt.Fprint(out, styles.FormatOutcome(outcome))
	})
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	return nil
}

// relToWorkDir shortens path for display when it lies below workDir.
func relToWorkDir(path, workDir string) string {
	if path == "" {
		return path
	}
	rel, err := filepath.Rel(workDir, path)
	if err != nil || !filepath.IsLocal(rel) {
		return path
	}
	return rel
}
