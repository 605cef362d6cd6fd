package loader

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ridoystarlord/debtreport/database"
	"github.com/ridoystarlord/debtreport/validator"
)

// No ORDER BY: rows come back in storage order.
const (
	selectRecordsQuery = `SELECT country_name, indicator_name, indicator_code, debt FROM %s`

	// debt is read as text so numeric values keep their exact digits and
	// non-numeric values reach validation instead of failing the scan.
	selectRecordsQueryPostgres = `SELECT country_name, indicator_name, indicator_code, debt::text FROM %s`
)

// PostgresSource reads the debt table from PostgreSQL.
type PostgresSource struct {
	URL   string
	Table string
}

func (s *PostgresSource) Describe() string {
	return "postgres table " + s.Table
}

func (s *PostgresSource) Rows(ctx context.Context) ([]validator.RecordInput, error) {
	pool, err := database.OpenPostgres(ctx, s.URL)
	if err != nil {
		return nil, err
	}
	defer pool.Close()

	rows, err := pool.Query(ctx, fmt.Sprintf(selectRecordsQueryPostgres, s.Table))
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", s.Table, err)
	}
	defer rows.Close()

	var out []validator.RecordInput
	for rows.Next() {
		var country, name, code, debt *string
		if err := rows.Scan(&country, &name, &code, &debt); err != nil {
			return nil, fmt.Errorf("scanning row %d: %w", len(out)+1, err)
		}
		out = append(out, validator.RecordInput{
			Row:           len(out) + 1,
			CountryName:   deref(country),
			IndicatorCode: deref(code),
			IndicatorName: deref(name),
			Debt:          deref(debt),
		})
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("iterating %s rows: %w", s.Table, rows.Err())
	}

	return out, nil
}

// SQLiteSource reads the debt table from a SQLite database file.
type SQLiteSource struct {
	Path  string
	Table string
}

func (s *SQLiteSource) Describe() string {
	return "sqlite table " + s.Table + " in " + s.Path
}

func (s *SQLiteSource) Rows(ctx context.Context) ([]validator.RecordInput, error) {
	db, err := database.OpenSQLite(ctx, s.Path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, fmt.Sprintf(selectRecordsQuery, s.Table))
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", s.Table, err)
	}
	defer rows.Close()

	var out []validator.RecordInput
	for rows.Next() {
		var country, name, code, debt sql.NullString
		if err := rows.Scan(&country, &name, &code, &debt); err != nil {
			return nil, fmt.Errorf("scanning row %d: %w", len(out)+1, err)
		}
		out = append(out, validator.RecordInput{
			Row:           len(out) + 1,
			CountryName:   country.String,
			IndicatorCode: code.String,
			IndicatorName: name.String,
			Debt:          debt.String,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s rows: %w", s.Table, err)
	}

	return out, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
