package cmd

import (
	"github.com/spf13/cobra"
)

func newCountriesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "countries",
		Short: "Count the distinct countries in the table",
		RunE: func(cmd *cobra.Command, args []string) error {
			rep, err := a.reporter(cmd)
			if err != nil {
				return err
			}

			n, err := rep.CountDistinctCountries()
			if err != nil {
				return err
			}
			return a.writeResult("total_distinct_countries", "Distinct countries", n)
		},
	}
}
