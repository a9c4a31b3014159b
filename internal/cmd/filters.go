package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/boolean-maybe/structsearch/search"
)

func newFiltersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "filters",
		Short: "Print the filter catalog as a tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, defaultKey, err := loadCatalog()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "# %s (free text: %s)\n", cat.Source, defaultKey)
			cat.Walk(func(f *search.Filter, depth int) {
				fmt.Fprintln(out, describeFilter(f, depth))
			})
			return nil
		},
	}
}

// describeFilter renders one tree line: indented key, name and operators
func describeFilter(f *search.Filter, depth int) string {
	var b strings.Builder
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(f.Key)
	if f.Name != "" && f.Name != f.Key {
		fmt.Fprintf(&b, " (%s)", f.Name)
	}
	switch {
	case f.IsGroup():
		b.WriteString(" group")
	default:
		if ops := f.OperatorKeys(); len(ops) > 0 {
			fmt.Fprintf(&b, " [%s]", strings.Join(ops, " "))
		}
		if f.HasMultiOptions {
			b.WriteString(" multi")
		}
		if f.IsAsync() {
			b.WriteString(" async")
		}
	}
	return b.String()
}
