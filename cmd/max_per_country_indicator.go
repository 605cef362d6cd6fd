package cmd

import (
	"github.com/spf13/cobra"
)

func newMaxPerCountryIndicatorCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "max-per-country-indicator",
		Short: "Highest debt for every country and indicator",
		RunE: func(cmd *cobra.Command, args []string) error {
			rep, err := a.reporter(cmd)
			if err != nil {
				return err
			}

			maxima, err := rep.MaxDebtPerCountryIndicator()
			if err != nil {
				return err
			}
			return a.writeResult("max_debt_per_country_indicator", "Maximum debt per country and indicator", maxima)
		},
	}
}
