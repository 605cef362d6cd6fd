package output

import (
	"fmt"
	"strconv"

	"github.com/ridoystarlord/debtreport/runner"
	"github.com/ridoystarlord/debtreport/schema"
)

// Table is the flattened, format-neutral view of a query result.
type Table struct {
	Title   string
	Columns []string
	Rows    [][]string
}

// Section pairs a titled table with the value it was built from, so JSON
// output can encode the typed value directly.
type Section struct {
	Key   string
	Value any
	Table Table
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Tabulate flattens any query result into a Table.
func Tabulate(title string, v any) (Table, error) {
	t := Table{Title: title}

	switch val := v.(type) {
	case []schema.DebtRecord:
		t.Columns = []string{schema.ColumnCountryName, schema.ColumnIndicatorName, schema.ColumnIndicatorCode, schema.ColumnDebt}
		for _, r := range val {
			t.Rows = append(t.Rows, []string{r.CountryName, r.IndicatorName, r.IndicatorCode, formatFloat(r.Debt)})
		}
	case int:
		t.Columns = []string{"total_distinct_countries"}
		t.Rows = [][]string{{strconv.Itoa(val)}}
	case []string:
		t.Columns = []string{"distinct_debt_indicators"}
		for _, s := range val {
			t.Rows = append(t.Rows, []string{s})
		}
	case float64:
		t.Columns = []string{"total_debt"}
		t.Rows = [][]string{{formatFloat(val)}}
	case schema.CountryTotal:
		t.Columns = []string{schema.ColumnCountryName, "total_debt"}
		t.Rows = [][]string{{val.CountryName, formatFloat(val.TotalDebt)}}
	case []schema.IndicatorAverage:
		t.Columns = []string{"debt_indicator", schema.ColumnIndicatorName, "average_debt"}
		for _, r := range val {
			t.Rows = append(t.Rows, []string{r.IndicatorCode, r.IndicatorName, formatFloat(r.AverageDebt)})
		}
	case []schema.CountryIndicator:
		t.Columns = []string{schema.ColumnCountryName, schema.ColumnIndicatorName}
		for _, r := range val {
			t.Rows = append(t.Rows, []string{r.CountryName, r.IndicatorName})
		}
	case []schema.IndicatorCount:
		t.Columns = []string{schema.ColumnIndicatorCode, "indicator_count"}
		for _, r := range val {
			t.Rows = append(t.Rows, []string{r.IndicatorCode, strconv.Itoa(r.Count)})
		}
	case []schema.CountryIndicatorMax:
		t.Columns = []string{schema.ColumnCountryName, schema.ColumnIndicatorName, "max_debt"}
		for _, r := range val {
			t.Rows = append(t.Rows, []string{r.CountryName, r.IndicatorName, formatFloat(r.MaxDebt)})
		}
	default:
		return t, fmt.Errorf("cannot tabulate %T", v)
	}

	return t, nil
}

// ReportSections splits a full report into its titled sections, in the
// order the questions are asked.
func ReportSections(r *runner.Report) ([]Section, error) {
	parts := []struct {
		key   string
		title string
		value any
	}{
		{"preview", "Preview", r.Preview},
		{"total_distinct_countries", "Distinct countries", r.DistinctCountries},
		{"distinct_debt_indicators", "Distinct debt indicators", r.DistinctIndicators},
		{"total_debt", "Total debt (millions USD)", r.TotalDebtMillions},
		{"top_debtor", "Country with the highest debt", r.TopDebtor},
		{"average_debt_by_indicator", "Average debt by indicator", r.AverageByIndicator},
		{"records_at_max", "Highest debt for " + r.IndicatorCode, r.RecordsAtMax},
		{"indicator_frequency", "Most common debt indicators", r.IndicatorFrequency},
		{"max_debt_per_country_indicator", "Maximum debt per country and indicator", r.MaxPerCountryIndicator},
	}

	sections := make([]Section, 0, len(parts))
	for _, p := range parts {
		t, err := Tabulate(p.title, p.value)
		if err != nil {
			return nil, err
		}
		sections = append(sections, Section{Key: p.key, Value: p.value, Table: t})
	}
	return sections, nil
}
