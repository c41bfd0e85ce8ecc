package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/textorize/internal/logging"
)

func newVersionCommand(info BuildInfo) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the version, commit hash, and build date of textorize.`,
		Run: func(cmd *cobra.Command, _ []string) {
			logger := logging.NewInteractive(cmd.OutOrStdout())

			logger.Info("textorize",
				logging.FieldVersion, info.Version,
				logging.FieldCommit, info.Commit,
				logging.FieldBuilt, info.Date,
			)
		},
	}

	return cmd
}
