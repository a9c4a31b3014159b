package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/boolean-maybe/structsearch/config"
	"github.com/boolean-maybe/structsearch/search"
	"github.com/boolean-maybe/structsearch/view/result"
)

func newDecodeCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "decode TOKEN...",
		Short: "Turn search tokens into a structured value",
		Long: `Decode search tokens such as "domain=example.com" into the structured
value a submitted search produces. Bare tokens naming a group become group
keys; everything else becomes a filter term.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, _, err := loadCatalog()
			if err != nil {
				return err
			}
			if output == "" {
				output = config.GetOutputFormat()
			}

			encoded, err := result.Encode(search.ToValue(args, cat.Filters), output)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), encoded)
			return err
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output format: yaml or json (default from config)")
	return cmd
}
