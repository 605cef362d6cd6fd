package cmd

import (
	"github.com/spf13/cobra"
)

func newTopDebtorCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "top-debtor",
		Short: "Country with the highest total debt",
		Long: `Sum every country's debt across all indicators and show the largest.

When several countries share the largest total, the first by name wins.
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rep, err := a.reporter(cmd)
			if err != nil {
				return err
			}

			top, err := rep.TopDebtorCountry()
			if err != nil {
				return err
			}
			return a.writeResult("top_debtor", "Country with the highest debt", top)
		},
	}
}
