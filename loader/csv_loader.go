package loader

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ridoystarlord/debtreport/schema"
	"github.com/ridoystarlord/debtreport/validator"
)

// CSVSource reads a CSV file with a header row. Columns are matched by name,
// so their order does not matter and extra columns are ignored.
type CSVSource struct {
	Path string
}

func (s *CSVSource) Describe() string {
	return "csv file " + s.Path
}

func (s *CSVSource) Rows(ctx context.Context) ([]validator.RecordInput, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("opening csv file: %w", err)
	}
	defer f.Close()

	return readCSV(ctx, f)
}

func readCSV(ctx context.Context, r io.Reader) ([]validator.RecordInput, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("csv file is empty, expected a header row")
	}
	if err != nil {
		return nil, fmt.Errorf("reading csv header: %w", err)
	}

	index := map[string]int{}
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}
	for _, col := range schema.RequiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("csv header is missing column %q", col)
		}
	}

	cell := func(rec []string, col string) string {
		i := index[col]
		if i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	rows := []validator.RecordInput{}
	for n := 1; ; n++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv row %d: %w", n, err)
		}

		rows = append(rows, validator.RecordInput{
			Row:           n,
			CountryName:   cell(rec, schema.ColumnCountryName),
			IndicatorCode: cell(rec, schema.ColumnIndicatorCode),
			IndicatorName: cell(rec, schema.ColumnIndicatorName),
			Debt:          cell(rec, schema.ColumnDebt),
		})
	}

	return rows, nil
}
