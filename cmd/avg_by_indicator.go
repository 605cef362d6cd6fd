package cmd

import (
	"github.com/spf13/cobra"
)

func newAvgByIndicatorCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "avg-by-indicator",
		Short: "Average debt per indicator, highest first",
		Long: `Average debt per indicator, highest first.

Examples:
  debtreport avg-by-indicator             # Top 10 indicators
  debtreport avg-by-indicator --limit 3   # Top 3 indicators
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rep, err := a.reporter(cmd)
			if err != nil {
				return err
			}

			averages, err := rep.AverageDebtByIndicator(limit)
			if err != nil {
				return err
			}
			return a.writeResult("average_debt_by_indicator", "Average debt by indicator", averages)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 10, "Number of indicators to show")
	return cmd
}
