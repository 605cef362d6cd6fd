package schema

// DefaultTable is the table the debt dataset is published in.
const DefaultTable = "international_debt"

// Column names of the debt table.
const (
	ColumnCountryName   = "country_name"
	ColumnIndicatorCode = "indicator_code"
	ColumnIndicatorName = "indicator_name"
	ColumnDebt          = "debt"
)

// RequiredColumns lists every column a debt table must carry.
var RequiredColumns = []string{
	ColumnCountryName,
	ColumnIndicatorCode,
	ColumnIndicatorName,
	ColumnDebt,
}

// DebtRecord is one (country, indicator, amount) observation. Debt is in USD.
type DebtRecord struct {
	CountryName   string  `json:"country_name" yaml:"country_name"`
	IndicatorCode string  `json:"indicator_code" yaml:"indicator_code"`
	IndicatorName string  `json:"indicator_name" yaml:"indicator_name"`
	Debt          float64 `json:"debt" yaml:"debt"`
}

type CountryTotal struct {
	CountryName string  `json:"country_name" yaml:"country_name"`
	TotalDebt   float64 `json:"total_debt" yaml:"total_debt"`
}

type IndicatorAverage struct {
	IndicatorCode string  `json:"debt_indicator" yaml:"debt_indicator"`
	IndicatorName string  `json:"indicator_name" yaml:"indicator_name"`
	AverageDebt   float64 `json:"average_debt" yaml:"average_debt"`
}

type CountryIndicator struct {
	CountryName   string `json:"country_name" yaml:"country_name"`
	IndicatorName string `json:"indicator_name" yaml:"indicator_name"`
}

type IndicatorCount struct {
	IndicatorCode string `json:"indicator_code" yaml:"indicator_code"`
	Count         int    `json:"indicator_count" yaml:"indicator_count"`
}

type CountryIndicatorMax struct {
	CountryName   string  `json:"country_name" yaml:"country_name"`
	IndicatorName string  `json:"indicator_name" yaml:"indicator_name"`
	MaxDebt       float64 `json:"max_debt" yaml:"max_debt"`
}
