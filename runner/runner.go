package runner

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ridoystarlord/debtreport/reporter"
	"github.com/ridoystarlord/debtreport/schema"
)

// DefaultIndicator is long-term principal repayments on external debt.
const DefaultIndicator = "DT.AMT.DLXF.CD"

// Options tune the full report run.
type Options struct {
	PreviewLimit  int
	AverageLimit  int
	IndicatorCode string
}

// DefaultOptions returns the standard report limits.
func DefaultOptions() Options {
	return Options{
		PreviewLimit:  10,
		AverageLimit:  10,
		IndicatorCode: DefaultIndicator,
	}
}

// Report holds the answer to every question, in the order they are asked.
type Report struct {
	Preview                []schema.DebtRecord          `json:"preview"`
	DistinctCountries      int                          `json:"total_distinct_countries"`
	DistinctIndicators     []string                     `json:"distinct_debt_indicators"`
	TotalDebtMillions      float64                      `json:"total_debt"`
	TopDebtor              schema.CountryTotal          `json:"top_debtor"`
	AverageByIndicator     []schema.IndicatorAverage    `json:"average_debt_by_indicator"`
	IndicatorCode          string                       `json:"indicator_code"`
	RecordsAtMax           []schema.CountryIndicator    `json:"records_at_max"`
	IndicatorFrequency     []schema.IndicatorCount      `json:"indicator_frequency"`
	MaxPerCountryIndicator []schema.CountryIndicatorMax `json:"max_debt_per_country_indicator"`
}

type step struct {
	name string
	run  func() error
}

// Run answers every question against rep. The first failing step aborts the
// run and no partial report is returned.
func Run(ctx context.Context, rep *reporter.Reporter, opts Options, logger *zap.Logger) (*Report, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.IndicatorCode == "" {
		opts.IndicatorCode = DefaultIndicator
	}

	report := &Report{IndicatorCode: opts.IndicatorCode}
	steps := []step{
		{"preview", func() (err error) {
			report.Preview, err = rep.Preview(opts.PreviewLimit)
			return
		}},
		{"distinct_countries", func() (err error) {
			report.DistinctCountries, err = rep.CountDistinctCountries()
			return
		}},
		{"distinct_indicators", func() (err error) {
			report.DistinctIndicators, err = rep.DistinctIndicators()
			return
		}},
		{"total_debt", func() (err error) {
			report.TotalDebtMillions, err = rep.TotalDebt()
			return
		}},
		{"top_debtor", func() (err error) {
			report.TopDebtor, err = rep.TopDebtorCountry()
			return
		}},
		{"average_by_indicator", func() (err error) {
			report.AverageByIndicator, err = rep.AverageDebtByIndicator(opts.AverageLimit)
			return
		}},
		{"records_at_max", func() (err error) {
			report.RecordsAtMax, err = rep.RecordsAtMaxForIndicator(opts.IndicatorCode)
			return
		}},
		{"indicator_frequency", func() (err error) {
			report.IndicatorFrequency, err = rep.IndicatorFrequency()
			return
		}},
		{"max_per_country_indicator", func() (err error) {
			report.MaxPerCountryIndicator, err = rep.MaxDebtPerCountryIndicator()
			return
		}},
	}

	for _, s := range steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		start := time.Now()
		if err := s.run(); err != nil {
			logger.Warn("Report step failed", zap.String("step", s.name), zap.Error(err))
			return nil, fmt.Errorf("%s: %w", s.name, err)
		}
		logger.Debug("Report step completed",
			zap.String("step", s.name),
			zap.Duration("duration", time.Since(start)))
	}

	return report, nil
}
