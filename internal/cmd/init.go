package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/boolean-maybe/structsearch/catalog"
	"github.com/boolean-maybe/structsearch/config"
)

func newInitCmd() *cobra.Command {
	var target string
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Install a sample filters.yaml and config.yaml",
		Long: `Install the sample filter catalog and a default config.yaml into the user
config directory or the project. Without --target an interactive prompt
asks where to install.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			choice := config.InstallChoice{Target: target, Overwrite: overwrite}
			if target == "" {
				picked, proceed, err := config.PromptForSampleInstall()
				if err != nil {
					return err
				}
				if !proceed {
					fmt.Fprintln(cmd.OutOrStdout(), "Nothing installed.")
					return nil
				}
				choice = picked
			}

			dir, err := config.TargetDir(choice.Target)
			if err != nil {
				return err
			}
			written, err := config.InstallSampleFilters(dir, catalog.DefaultFiltersYAML(), choice.Overwrite)
			for _, path := range written {
				fmt.Fprintln(cmd.OutOrStdout(), "wrote", path)
			}
			if err != nil {
				return fmt.Errorf("install sample: %w", err)
			}
			if len(written) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Existing files kept; use --overwrite to replace them.")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&target, "target", "", "install target: user or project (skips the prompt)")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "replace existing files")
	return cmd
}
