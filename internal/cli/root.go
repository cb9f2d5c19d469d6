package cli

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"
)

func RootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "ng-openapi-gen",
		Short:         "Generate an Angular API client from an OpenAPI 3 document",
		Version:       "1.0.0",
		SilenceUsage:  true,
		SilenceErrors: true,

		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	root.PersistentFlags().BoolP("verbose", "v", false, "Log debug details to stderr")

	root.AddCommand(GenerateCommand(), DumpCommand())

	return root
}

// newLogger returns the logger for a command run. Debug records only show
// with --verbose.
func newLogger(cmd *cobra.Command) *slog.Logger {
	return newLoggerTo(cmd.ErrOrStderr(), verbose(cmd))
}

func newLoggerTo(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func verbose(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("verbose")
	return v
}
