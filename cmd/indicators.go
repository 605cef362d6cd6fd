package cmd

import (
	"github.com/spf13/cobra"
)

func newIndicatorsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "indicators",
		Short: "List the distinct debt indicator codes",
		RunE: func(cmd *cobra.Command, args []string) error {
			rep, err := a.reporter(cmd)
			if err != nil {
				return err
			}

			codes, err := rep.DistinctIndicators()
			if err != nil {
				return err
			}
			return a.writeResult("distinct_debt_indicators", "Distinct debt indicators", codes)
		},
	}
}
