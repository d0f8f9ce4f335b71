package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/imgajeed76/tabview/internal/ui/styles"
	"github.com/imgajeed76/tabview/internal/view"
	"github.com/spf13/cobra"
)

func newColumnsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "columns <label>...",
		Short: "Print the record keys derived from column labels",
		Long: `Print the record key each column label maps to. The first word is
lowercased, later words are capitalized, and whitespace is removed:

  "First Name"  -> firstName
  "START date"  -> startDate

Fails when two labels derive the same key.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cols, err := view.NewColumns(args...)
			if err != nil {
				return columnError(err, nil)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, c := range cols {
				fmt.Fprintf(w, "%s\t%s\n", c.Label, styles.InfoMsg(c.Key))
			}
			return w.Flush()
		},
	}
}
