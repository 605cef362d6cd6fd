package cmd

import (
	"github.com/spf13/cobra"
)

func newMaxForIndicatorCmd(a *app) *cobra.Command {
	var code string

	cmd := &cobra.Command{
		Use:   "max-for-indicator",
		Short: "Records carrying the highest debt of an indicator",
		Long: `Find the highest debt recorded under an indicator and list every
record carrying exactly that amount.

Examples:
  debtreport max-for-indicator --code DT.AMT.DLXF.CD
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rep, err := a.reporter(cmd)
			if err != nil {
				return err
			}

			records, err := rep.RecordsAtMaxForIndicator(code)
			if err != nil {
				return err
			}
			return a.writeResult("records_at_max", "Highest debt for "+code, records)
		},
	}

	cmd.Flags().StringVarP(&code, "code", "c", "", "Indicator code, e.g. DT.AMT.DLXF.CD")
	_ = cmd.MarkFlagRequired("code")
	return cmd
}
