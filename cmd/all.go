package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ridoystarlord/debtreport/output"
	"github.com/ridoystarlord/debtreport/runner"
)

func newAllCmd(a *app) *cobra.Command {
	opts := runner.DefaultOptions()

	cmd := &cobra.Command{
		Use:   "all",
		Short: "Answer every question in one run",
		Long: `Run the full report: preview, distinct countries, distinct indicators,
total debt, top debtor, average debt by indicator, highest debt for one
indicator, indicator frequency and maximum debt per country and indicator.

Nothing is printed unless every step succeeds.

Examples:
  debtreport all
  debtreport all --code DT.AMT.DPNG.CD --format json
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rep, err := a.reporter(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := a.context(cmd)
			defer cancel()

			report, err := runner.Run(ctx, rep, opts, a.logger)
			if err != nil {
				return err
			}

			format, err := output.ParseFormat(a.cfg.Format)
			if err != nil {
				return err
			}
			if format == output.FormatJSON {
				return output.WriteJSON(a.out, report)
			}

			sections, err := output.ReportSections(report)
			if err != nil {
				return err
			}
			return output.Write(a.out, format, sections...)
		},
	}

	cmd.Flags().StringVarP(&opts.IndicatorCode, "code", "c", runner.DefaultIndicator, "Indicator to find the highest debt for")
	cmd.Flags().IntVar(&opts.PreviewLimit, "preview", opts.PreviewLimit, "Number of records in the preview")
	cmd.Flags().IntVarP(&opts.AverageLimit, "limit", "l", opts.AverageLimit, "Number of indicators in the average debt ranking")
	return cmd
}
