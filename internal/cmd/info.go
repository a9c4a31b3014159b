package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/boolean-maybe/structsearch/config"
	"github.com/boolean-maybe/structsearch/util/sysinfo"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show version, terminal and path information",
		Long: `Print the build version, the detected terminal capabilities and the
paths structsearch reads and writes. Useful when reporting problems.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "structsearch %s (commit %s, built %s)\n\n", config.Version, config.GitCommit, config.BuildDate)

			info := sysinfo.NewSystemInfo()
			fmt.Fprint(out, info.String())

			cat, defaultKey, err := loadCatalog()
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "\nCatalog\n-------\nSource:        %s\nFree text key: %s\n", cat.Source, defaultKey)
			return nil
		},
	}
}
