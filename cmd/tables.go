package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-acpiview/internal/managers/parsers"
)

func newTablesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "List the tables acpiview can decode",
		Args:  rejectArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "SIGNATURE\tNAME\tDESCRIPTION\n")
			fmt.Fprintf(w, "---------\t----\t-----------\n")
			for _, info := range parsers.NewStaticParserRegistry().ListTables() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", info.Signature, info.Name, info.Description)
			}
			return nil
		},
	}
}
