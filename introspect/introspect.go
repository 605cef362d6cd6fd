package introspect

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ridoystarlord/debtreport/database"
	"github.com/ridoystarlord/debtreport/schema"
)

// TableInfo describes what a database holds for the debt table.
type TableInfo struct {
	Name     string   `json:"name"`
	Exists   bool     `json:"exists"`
	Columns  []string `json:"columns"`
	Missing  []string `json:"missing"`
	RowCount int64    `json:"row_count"`
}

// Ready reports whether the table exists with every required column.
func (t TableInfo) Ready() bool {
	return t.Exists && len(t.Missing) == 0
}

// InspectPostgres looks up table in information_schema and counts its rows.
// Schema-qualified names ("reports.international_debt") are supported;
// unqualified names resolve against the public schema.
func InspectPostgres(ctx context.Context, pool *pgxpool.Pool, table string) (TableInfo, error) {
	if err := database.ValidateTableName(table); err != nil {
		return TableInfo{}, err
	}

	info := TableInfo{Name: table}
	tableSchema, tableName := "public", table
	if i := strings.Index(table, "."); i >= 0 {
		tableSchema, tableName = table[:i], table[i+1:]
	}

	columnsQuery := `
	SELECT column_name
	FROM information_schema.columns
	WHERE table_schema = $1 AND table_name = $2
	ORDER BY ordinal_position;
	`

	rows, err := pool.Query(ctx, columnsQuery, tableSchema, tableName)
	if err != nil {
		return info, fmt.Errorf("querying columns: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var col string
		if err := rows.Scan(&col); err != nil {
			return info, fmt.Errorf("scanning column: %w", err)
		}
		info.Columns = append(info.Columns, col)
	}

	if rows.Err() != nil {
		return info, fmt.Errorf("iterating column rows: %w", rows.Err())
	}

	return finish(info, func() (int64, error) {
		var n int64
		err := pool.QueryRow(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).Scan(&n)
		return n, err
	})
}

// InspectSQLite reads the table layout with PRAGMA table_info.
func InspectSQLite(ctx context.Context, db *sql.DB, table string) (TableInfo, error) {
	if err := database.ValidateTableName(table); err != nil {
		return TableInfo{}, err
	}

	info := TableInfo{Name: table}
	pragma := fmt.Sprintf("PRAGMA table_info(%s)", table)
	if i := strings.Index(table, "."); i >= 0 {
		pragma = fmt.Sprintf("PRAGMA %s.table_info(%s)", table[:i], table[i+1:])
	}

	rows, err := db.QueryContext(ctx, pragma)
	if err != nil {
		return info, fmt.Errorf("querying columns: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid       int
			name      string
			colType   string
			notNull   int
			dfltValue sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dfltValue, &pk); err != nil {
			return info, fmt.Errorf("scanning column: %w", err)
		}
		info.Columns = append(info.Columns, name)
	}

	if err := rows.Err(); err != nil {
		return info, fmt.Errorf("iterating column rows: %w", err)
	}

	return finish(info, func() (int64, error) {
		var n int64
		err := db.QueryRowContext(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).Scan(&n)
		return n, err
	})
}

func finish(info TableInfo, count func() (int64, error)) (TableInfo, error) {
	info.Exists = len(info.Columns) > 0
	info.Missing = missingColumns(info.Columns)
	if !info.Exists {
		return info, nil
	}

	n, err := count()
	if err != nil {
		return info, fmt.Errorf("counting rows: %w", err)
	}
	info.RowCount = n
	return info, nil
}

func missingColumns(have []string) []string {
	present := map[string]bool{}
	for _, c := range have {
		present[strings.ToLower(c)] = true
	}

	var missing []string
	for _, c := range schema.RequiredColumns {
		if !present[c] {
			missing = append(missing, c)
		}
	}
	return missing
}
