// Package cmd provides the CLI commands for posquality.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	logpkg "github.com/kailas-cloud/posquality/internal/logger"
)

// NewRootCmd builds the command tree. Each call returns independent flag state.
func NewRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "posquality-cli",
		Short: "Score point-of-sale providers against a search request",
		Long: `posquality-cli scores providers for a user's search request by combining
attribute similarity with great-circle distance.

Examples:
  posquality-cli score scenario.yaml
  posquality-cli score --json scenario.yaml
  posquality-cli score --timeliness 0.8 scenario.yaml`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level := "warn"
			if verbose {
				level = "debug"
			}
			logger, err := logpkg.NewLogger("local", level)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			cmd.SetContext(logpkg.ContextWithLogger(cmd.Context(), logger))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			_ = loggerFrom(cmd).Sync()
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newScoreCmd())
	root.AddCommand(newVersionCmd())
	return root
}

// Execute runs the CLI.
func Execute() error {
	return NewRootCmd().Execute()
}

func loggerFrom(cmd *cobra.Command) *zap.Logger {
	return logpkg.FromContext(cmd.Context())
}
