package cmd

import (
	"github.com/spf13/cobra"
)

func newIndicatorFrequencyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "indicator-frequency",
		Short: "Number of records per indicator, most common first",
		RunE: func(cmd *cobra.Command, args []string) error {
			rep, err := a.reporter(cmd)
			if err != nil {
				return err
			}

			counts, err := rep.IndicatorFrequency()
			if err != nil {
				return err
			}
			return a.writeResult("indicator_frequency", "Most common debt indicators", counts)
		},
	}
}
