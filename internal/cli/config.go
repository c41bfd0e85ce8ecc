package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/textorize/internal/configloader"
	"github.com/yaklabco/textorize/internal/ui/pretty"
	"github.com/yaklabco/textorize/pkg/config"
)

type configFlags struct {
	env bool
}

func newConfigCommand() *cobra.Command {
	flags := &configFlags{}

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Long: `Print the configuration that convert and watch would use in the current
directory, after merging the system, user and project files, the file
given with --config and TEXTORIZE_* environment variables.

With --env, list the supported environment variables instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if flags.env {
				return listEnvVars(cmd.OutOrStdout())
			}
			return showConfig(cmd)
		},
	}

	cmd.Flags().BoolVar(&flags.env, "env", false, "list supported environment variables")

	return cmd
}

func showConfig(cmd *cobra.Command) error {
	ctx := commandContext(cmd)

	cfg, _, err := loadConfig(ctx, cmd, &config.Config{})
	if err != nil {
		return err
	}

	if err := cfg.WriteYAML(cmd.OutOrStdout(), config.DefaultTemplateHeader()); err != nil {
		return fmt.Errorf("write configuration: %w", err)
	}
	return nil
}

func listEnvVars(w io.Writer) error {
	styles := pretty.NewStyles(pretty.IsColorEnabled("auto", w))

	vars := configloader.ListEnvVars()
	width := 0
	for _, v := range vars {
		width = max(width, len(v.Name))
	}

	var builder strings.Builder
	for _, v := range vars {
		builder.WriteString(styles.Bold.Render(fmt.Sprintf("%-*s", width, v.Name)))
		builder.WriteString("  ")
		builder.WriteString(styles.Dim.Render(v.Description))
		builder.WriteString("\n")
	}

	if _, err := io.WriteString(w, builder.String()); err != nil {
		return fmt.Errorf("write environment variables: %w", err)
	}
	return nil
}
