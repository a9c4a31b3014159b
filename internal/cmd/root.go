package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/boolean-maybe/structsearch/config"
	"github.com/boolean-maybe/structsearch/internal/app"
	"github.com/boolean-maybe/structsearch/internal/bootstrap"
)

// NewRootCmd builds the command tree. Without a subcommand it runs the
// search TUI.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "structsearch",
		Short: "Structured search input for the terminal",
		Long: `structsearch builds searches out of filter tags: a filter key, an
operator and one or more values, picked from a catalog of filters.

Run without arguments to open the search UI.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", config.Version, config.GitCommit, config.BuildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := config.LoadConfig(); err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			config.BindFlagSet(cmd.Flags())
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runUI()
		},
	}

	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("filters", "", "path to a filters.yaml catalog")

	rootCmd.AddCommand(newDecodeCmd())
	rootCmd.AddCommand(newEncodeCmd())
	rootCmd.AddCommand(newFiltersCmd())
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newDocsCmd())
	rootCmd.AddCommand(newInfoCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}

func runUI() error {
	result, err := bootstrap.Bootstrap()
	if err != nil {
		return err
	}
	defer result.Cleanup()

	if err := app.Run(result.App, result.RootLayout); err != nil {
		slog.Error("application error", "error", err)
		return err
	}
	return nil
}
