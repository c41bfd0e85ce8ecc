package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/textorize/internal/configloader"
	"github.com/yaklabco/textorize/internal/logging"
	"github.com/yaklabco/textorize/pkg/config"
)

// commandContext returns the command context. The root command stores the
// configured logger in it before any subcommand runs.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// loadConfig resolves the configuration for a command, with cliCfg holding
// the values set by flags.
func loadConfig(ctx context.Context, cmd *cobra.Command, cliCfg *config.Config) (*config.Config, string, error) {
	logger := logging.FromContext(ctx)

	// Get the explicit config path from the root command's persistent flag.
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, "", fmt.Errorf("get config flag: %w", err)
	}

	// Get working directory for config discovery.
	workDir, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		Verbose:      logger.GetLevel() == log.DebugLevel,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		var validationErr *configloader.ValidationError
		if errors.As(err, &validationErr) {
			return nil, "", err
		}
		return nil, "", errors.Join(ErrConfig, err)
	}

	// Log warnings from config loading.
	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}

	// Log loaded configuration files.
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	finalCfg := loadResult.Config
	logger.Debug("configuration loaded",
		logging.FieldFormat, finalCfg.Format,
		logging.FieldFlavor, finalCfg.Flavor,
		logging.FieldDryRun, finalCfg.DryRun,
		logging.FieldJobs, finalCfg.Jobs,
	)

	return finalCfg, workDir, nil
}
