package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/textorize/internal/logging"
	"github.com/yaklabco/textorize/pkg/config"
	"github.com/yaklabco/textorize/pkg/reporter"
	"github.com/yaklabco/textorize/pkg/runner"
	"github.com/yaklabco/textorize/pkg/source"
)

// stdinPath is the path argument that selects standard input.
const stdinPath = "-"

type convertFlags struct {
	format     string
	flavor     string
	report     string
	outputExt  string
	outputDir  string
	ignore     []string
	extensions []string
	compact    bool
	verbose    bool
}

func newConvertCommand() *cobra.Command {
	var cfg config.Config
	flags := &convertFlags{}

	cmd := &cobra.Command{
		Use:     "convert [paths...]",
		Aliases: []string{"c"},
		Short:   "Convert documents to plain text",
		Long:    convertLongDescription + "\n\nReport formats:\n  " + strings.Join(reporter.Describe(), "\n  "),
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, args, &cfg, flags)
		},
	}

	addConvertFlags(cmd, &cfg, flags)

	return cmd
}

const convertLongDescription = `Convert HTML, Markdown and text documents to plain text.

Each input file is converted next to itself with its extension replaced
by .txt. Directories are walked for files with a known extension. With no
paths and piped standard input, the input is converted to standard output.

Examples:
  textorize convert page.html               # Write page.txt
  textorize convert docs/                   # Convert every document in docs
  textorize convert --output-dir text docs/ # Mirror docs/ below text/
  textorize convert --stdout page.html      # Print instead of writing
  curl -s https://example.com | textorize convert
  textorize convert --dry-run --report table docs/
  textorize convert --dry-run --report diff docs/ # Preview output changes`

func runConvert(cmd *cobra.Command, args []string, cfg *config.Config, flags *convertFlags) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	if err := applyConvertFlags(cmd, cfg, flags); err != nil {
		return err
	}

	finalCfg, workDir, err := loadConfig(ctx, cmd, cfg)
	if err != nil {
		return err
	}

	if isStdinRequest(cmd, args) {
		return convertStdin(ctx, cmd, finalCfg)
	}

	opts := runner.OptionsFromConfig(finalCfg, args)
	opts.WorkingDir = workDir

	logger.Debug("starting conversion run",
		logging.FieldPaths, opts.Paths,
		logging.FieldWorkingDir, opts.WorkingDir,
		logging.FieldJobs, opts.Jobs,
	)

	result, err := runner.New(source.NewConverter(string(finalCfg.Flavor))).Run(ctx, opts)
	if err != nil {
		return errors.Join(errors.New("conversion run failed"), err)
	}

	logger.Debug("conversion run finished",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesProcessed, result.Stats.FilesConverted,
		logging.FieldFilesWritten, result.Stats.FilesWritten,
		logging.FieldFilesFailed, result.Stats.FilesErrored,
	)

	// Converted text owns stdout in capture mode; the report moves to stderr.
	reportWriter := cmd.OutOrStdout()
	if opts.Capture {
		reportWriter = cmd.ErrOrStderr()
		for _, file := range result.Files {
			if _, err := io.WriteString(cmd.OutOrStdout(), file.Text); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
		}
	}

	if err := reportResult(ctx, cmd, reportWriter, result, finalCfg, flags, workDir); err != nil {
		return err
	}

	if ExitCodeFromResult(result) != ExitSuccess {
		return ErrConversionFailed
	}
	return nil
}

// applyConvertFlags maps string flags to typed config values. Only values
// explicitly set on the command line are kept, so config files still apply.
func applyConvertFlags(cmd *cobra.Command, cfg *config.Config, flags *convertFlags) error {
	if cmd.Flags().Changed("format") {
		format, err := source.ParseFormat(flags.format)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidUsage, err)
		}
		cfg.Format = config.InputFormat(format)
	}
	if cmd.Flags().Changed("flavor") {
		cfg.Flavor = config.Flavor(flags.flavor)
	}
	if cmd.Flags().Changed("report") {
		if _, err := reporter.ParseFormat(flags.report); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidUsage, err)
		}
		cfg.Report = config.ReportFormat(flags.report)
	}
	cfg.Ignore = flags.ignore
	cfg.Extensions = flags.extensions
	cfg.Output.Extension = flags.outputExt
	cfg.Output.Dir = flags.outputDir
	return nil
}

// isStdinRequest reports whether input comes from standard input: either
// "-" is the only path, or no path is given and stdin is not a terminal.
func isStdinRequest(cmd *cobra.Command, args []string) bool {
	if len(args) == 1 && args[0] == stdinPath {
		return true
	}
	if len(args) > 0 {
		return false
	}
	if f, ok := cmd.InOrStdin().(*os.File); ok {
		return !term.IsTerminal(int(f.Fd()))
	}
	return true
}

// convertStdin converts standard input to standard output.
func convertStdin(ctx context.Context, cmd *cobra.Command, cfg *config.Config) error {
	in := cmd.InOrStdin()
	if cfg.MaxFileSize > 0 {
		in = io.LimitReader(in, cfg.MaxFileSize+1)
	}
	content, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("%w: stdin: %w", runner.ErrReadFailure, err)
	}
	if cfg.MaxFileSize > 0 && int64(len(content)) > cfg.MaxFileSize {
		return fmt.Errorf("%w: stdin exceeds %d bytes", runner.ErrReadFailure, cfg.MaxFileSize)
	}

	format, err := source.ParseFormat(string(cfg.Format))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidUsage, err)
	}
	if format == source.FormatAuto {
		format = source.Detect("", content)
	}

	text, err := source.NewConverter(string(cfg.Flavor)).Convert(ctx, format, content)
	if err != nil {
		return fmt.Errorf("%w: stdin: %w", runner.ErrConvertFailure, err)
	}

	logging.FromContext(ctx).Debug("converted stdin",
		logging.FieldFormat, format,
		logging.FieldBytesIn, len(content),
		logging.FieldBytesOut, len(text),
	)

	if _, err := io.WriteString(cmd.OutOrStdout(), text); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// reportResult writes the run report in the configured format.
func reportResult(
	ctx context.Context,
	cmd *cobra.Command,
	w io.Writer,
	result *runner.Result,
	cfg *config.Config,
	flags *convertFlags,
	workDir string,
) error {
	// Get color mode from persistent flag.
	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto" // Default to auto if flag retrieval fails
	}

	format, err := reporter.ParseFormat(string(cfg.Report))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidUsage, err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      w,
		Format:      format,
		Color:       colorMode,
		ShowSummary: true,
		Verbose:     flags.verbose,
		Compact:     flags.compact,
		WorkingDir:  workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		logging.FromContext(ctx).Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}
	return nil
}

func addConvertFlags(cmd *cobra.Command, cfg *config.Config, flags *convertFlags) {
	cmd.Flags().StringVar(&flags.format, "format", "auto", "input format: auto, html, markdown, text")
	cmd.Flags().StringVar(&flags.flavor, "flavor", "commonmark", "Markdown flavor: commonmark, gfm")
	cmd.Flags().StringVar(&flags.report, "report", "text", "report format: "+strings.Join(reporter.Formats(), ", "))
	cmd.Flags().BoolVar(&cfg.DryRun, "dry-run", false, "convert without writing output files")
	cmd.Flags().BoolVar(&cfg.Stdout, "stdout", false, "write converted text to standard output")
	cmd.Flags().IntVarP(&cfg.Jobs, "jobs", "j", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().Int64Var(&cfg.MaxFileSize, "max-file-size", 0, "largest input converted, in bytes (0 = config default)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.extensions, "ext", nil, "extensions picked up in directories")
	cmd.Flags().StringVarP(&flags.outputDir, "output-dir", "o", "", "write outputs below this directory")
	cmd.Flags().StringVar(&flags.outputExt, "output-ext", "", "extension of output files (default .txt)")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact JSON report")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "list unchanged files too")
}
