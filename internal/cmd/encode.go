package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/boolean-maybe/structsearch/search"
	"github.com/boolean-maybe/structsearch/view/result"
)

func newEncodeCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "encode [-f file]",
		Short: "Turn a structured value into search tokens",
		Long: `Read a structured value (yaml or json) from a file or stdin, check it
against the filter catalog and print its tokens, one per line.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var data []byte
			var err error
			if file == "" || file == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(file)
			}
			if err != nil {
				return fmt.Errorf("read value: %w", err)
			}

			v, err := result.Decode(data)
			if err != nil {
				return err
			}

			cat, defaultKey, err := loadCatalog()
			if err != nil {
				return err
			}
			if err := v.Validate(cat.Filters, defaultKey); err != nil {
				return fmt.Errorf("invalid value: %w", err)
			}

			out := cmd.OutOrStdout()
			for _, token := range search.FromValue(v) {
				if _, err := fmt.Fprintln(out, token); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "file holding the value (default stdin)")
	return cmd
}
