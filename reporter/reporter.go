// Package reporter answers the fixed set of debt questions over an
// immutable, in-memory collection of debt records.
package reporter

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/ridoystarlord/debtreport/schema"
	"github.com/ridoystarlord/debtreport/validator"
)

// Reporter owns its own copy of the loaded records. It is never mutated
// after New returns.
type Reporter struct {
	records []schema.DebtRecord
}

// New validates and copies records into a new Reporter.
func New(records []schema.DebtRecord) (*Reporter, error) {
	for i, r := range records {
		if err := validator.CheckRecord(i+1, r); err != nil {
			return nil, err
		}
	}

	owned := make([]schema.DebtRecord, len(records))
	copy(owned, records)

	return &Reporter{records: owned}, nil
}

// Len returns the number of loaded records.
func (r *Reporter) Len() int {
	return len(r.records)
}

func (r *Reporter) ensureRecords() error {
	if len(r.records) == 0 {
		return schema.ErrEmptyDataset
	}
	return nil
}

// Preview returns the first n records in storage order.
func (r *Reporter) Preview(n int) ([]schema.DebtRecord, error) {
	if err := r.ensureRecords(); err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, &schema.InvalidLimitError{Limit: n}
	}
	if n > len(r.records) {
		n = len(r.records)
	}

	out := make([]schema.DebtRecord, n)
	copy(out, r.records[:n])
	return out, nil
}

// CountDistinctCountries counts distinct country names.
func (r *Reporter) CountDistinctCountries() (int, error) {
	if err := r.ensureRecords(); err != nil {
		return 0, err
	}

	seen := make(map[string]struct{})
	for _, rec := range r.records {
		seen[rec.CountryName] = struct{}{}
	}
	return len(seen), nil
}

// DistinctIndicators returns every indicator code once, ascending.
func (r *Reporter) DistinctIndicators() ([]string, error) {
	if err := r.ensureRecords(); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	codes := make([]string, 0)
	for _, rec := range r.records {
		if _, ok := seen[rec.IndicatorCode]; ok {
			continue
		}
		seen[rec.IndicatorCode] = struct{}{}
		codes = append(codes, rec.IndicatorCode)
	}

	sort.Strings(codes)
	return codes, nil
}

// TotalDebt returns the sum of all debt in millions of USD, rounded to two
// decimals with halves rounded away from zero.
func (r *Reporter) TotalDebt() (float64, error) {
	if err := r.ensureRecords(); err != nil {
		return 0, err
	}

	sum := decimal.Zero
	for _, rec := range r.records {
		sum = sum.Add(decimal.NewFromFloat(rec.Debt))
	}
	return sum.Shift(-6).Round(2).InexactFloat64(), nil
}

// TopDebtorCountry returns the country with the largest summed debt. Ties
// go to the lexicographically smallest country name.
func (r *Reporter) TopDebtorCountry() (schema.CountryTotal, error) {
	if err := r.ensureRecords(); err != nil {
		return schema.CountryTotal{}, err
	}

	byCountry := newGroups[string]()
	for _, rec := range r.records {
		byCountry.add(rec.CountryName, rec.Debt)
	}

	var top schema.CountryTotal
	for i, name := range byCountry.keys {
		total := stableSum(byCountry.values[name])
		if i == 0 || total > top.TotalDebt || (total == top.TotalDebt && name < top.CountryName) {
			top = schema.CountryTotal{CountryName: name, TotalDebt: total}
		}
	}
	return top, nil
}

type indicatorKey struct {
	code string
	name string
}

// AverageDebtByIndicator returns the mean debt per (code, name) pair,
// highest first, capped at limit groups. Equal means keep the order in
// which their groups first appear.
func (r *Reporter) AverageDebtByIndicator(limit int) ([]schema.IndicatorAverage, error) {
	if err := r.ensureRecords(); err != nil {
		return nil, err
	}
	if limit < 0 {
		return nil, &schema.InvalidLimitError{Limit: limit}
	}

	byIndicator := newGroups[indicatorKey]()
	for _, rec := range r.records {
		byIndicator.add(indicatorKey{code: rec.IndicatorCode, name: rec.IndicatorName}, rec.Debt)
	}

	out := make([]schema.IndicatorAverage, 0, len(byIndicator.keys))
	for _, key := range byIndicator.keys {
		values := byIndicator.values[key]
		out = append(out, schema.IndicatorAverage{
			IndicatorCode: key.code,
			IndicatorName: key.name,
			AverageDebt:   stableSum(values) / float64(len(values)),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AverageDebt > out[j].AverageDebt
	})

	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

// RecordsAtMaxForIndicator finds the largest debt recorded under code and
// returns every record in the table carrying exactly that amount, in
// storage order.
func (r *Reporter) RecordsAtMaxForIndicator(code string) ([]schema.CountryIndicator, error) {
	if err := r.ensureRecords(); err != nil {
		return nil, err
	}

	found := false
	peak := 0.0
	for _, rec := range r.records {
		if rec.IndicatorCode != code {
			continue
		}
		if !found || rec.Debt > peak {
			peak = rec.Debt
			found = true
		}
	}
	if !found {
		return nil, &schema.UnknownIndicatorError{Code: code}
	}

	var out []schema.CountryIndicator
	for _, rec := range r.records {
		if rec.Debt == peak {
			out = append(out, schema.CountryIndicator{
				CountryName:   rec.CountryName,
				IndicatorName: rec.IndicatorName,
			})
		}
	}
	return out, nil
}

// IndicatorFrequency counts records per indicator code, most frequent
// first. Equal counts are ordered by code.
func (r *Reporter) IndicatorFrequency() ([]schema.IndicatorCount, error) {
	if err := r.ensureRecords(); err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, rec := range r.records {
		counts[rec.IndicatorCode]++
	}

	out := make([]schema.IndicatorCount, 0, len(counts))
	for code, n := range counts {
		out = append(out, schema.IndicatorCount{IndicatorCode: code, Count: n})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].IndicatorCode < out[j].IndicatorCode
	})
	return out, nil
}

type countryIndicatorKey struct {
	country   string
	indicator string
}

// MaxDebtPerCountryIndicator returns the largest debt for every
// (country, indicator name) pair, highest first. Equal maxima are ordered
// by country, then indicator name.
func (r *Reporter) MaxDebtPerCountryIndicator() ([]schema.CountryIndicatorMax, error) {
	if err := r.ensureRecords(); err != nil {
		return nil, err
	}

	maxima := make(map[countryIndicatorKey]float64)
	for _, rec := range r.records {
		key := countryIndicatorKey{country: rec.CountryName, indicator: rec.IndicatorName}
		if cur, ok := maxima[key]; !ok || rec.Debt > cur {
			maxima[key] = rec.Debt
		}
	}

	out := make([]schema.CountryIndicatorMax, 0, len(maxima))
	for key, peak := range maxima {
		out = append(out, schema.CountryIndicatorMax{
			CountryName:   key.country,
			IndicatorName: key.indicator,
			MaxDebt:       peak,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.MaxDebt != b.MaxDebt {
			return a.MaxDebt > b.MaxDebt
		}
		if a.CountryName != b.CountryName {
			return a.CountryName < b.CountryName
		}
		return a.IndicatorName < b.IndicatorName
	})
	return out, nil
}

// groups collects values per key and remembers first-seen key order.
type groups[K comparable] struct {
	keys   []K
	values map[K][]float64
}

func newGroups[K comparable]() *groups[K] {
	return &groups[K]{values: make(map[K][]float64)}
}

func (g *groups[K]) add(key K, v float64) {
	if _, ok := g.values[key]; !ok {
		g.keys = append(g.keys, key)
	}
	g.values[key] = append(g.values[key], v)
}

// stableSum adds values in ascending order so the result does not depend on
// input order.
func stableSum(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	sum := 0.0
	for _, v := range sorted {
		sum += v
	}
	return sum
}
