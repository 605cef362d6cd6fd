package cmd

import (
	"github.com/spf13/cobra"
)

func newTotalDebtCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "total-debt",
		Short: "Total debt owed, in millions of USD",
		RunE: func(cmd *cobra.Command, args []string) error {
			rep, err := a.reporter(cmd)
			if err != nil {
				return err
			}

			total, err := rep.TotalDebt()
			if err != nil {
				return err
			}
			return a.writeResult("total_debt", "Total debt (millions USD)", total)
		},
	}
}
