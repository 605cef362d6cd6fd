package cmd

import (
	"github.com/spf13/cobra"
)

func newPreviewCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Show the first rows of the debt table",
		Long: `Show the first rows of the debt table in storage order.

Examples:
  debtreport preview              # First 10 records
  debtreport preview --limit 25   # First 25 records
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rep, err := a.reporter(cmd)
			if err != nil {
				return err
			}

			records, err := rep.Preview(limit)
			if err != nil {
				return err
			}
			return a.writeResult("preview", "Preview", records)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 10, "Number of records to show")
	return cmd
}
