package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/boolean-maybe/structsearch/internal/viewer"
	"github.com/boolean-maybe/structsearch/view"
)

func newDocsCmd() *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "docs [topic]",
		Short: "Browse the help pages",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if list {
				for _, topic := range view.HelpTopics() {
					fmt.Fprintln(cmd.OutOrStdout(), topic)
				}
				return nil
			}

			topic := ""
			if len(args) == 1 {
				topic = args[0]
			}
			return viewer.Run(topic)
		},
	}

	cmd.Flags().BoolVarP(&list, "list", "l", false, "list topics instead of opening the viewer")
	return cmd
}
