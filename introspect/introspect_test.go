package introspect

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ridoystarlord/debtreport/database"
)

func openDB(t *testing.T, stmts ...string) *sql.DB {
	t.Helper()
	db, err := database.OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "debt.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	for _, stmt := range stmts {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}
	return db
}

func TestInspectSQLite(t *testing.T) {
	db := openDB(t,
		`CREATE TABLE international_debt (country_name TEXT, country_code TEXT, indicator_name TEXT, indicator_code TEXT, debt REAL)`,
		`INSERT INTO international_debt VALUES ('A', 'AAA', 'N1', 'I1', 10), ('B', 'BBB', 'N1', 'I1', 30)`,
	)

	info, err := InspectSQLite(context.Background(), db, "international_debt")
	require.NoError(t, err)

	assert.True(t, info.Ready())
	assert.Equal(t, TableInfo{
		Name:     "international_debt",
		Exists:   true,
		Columns:  []string{"country_name", "country_code", "indicator_name", "indicator_code", "debt"},
		RowCount: 2,
	}, info)
}

func TestInspectSQLiteSchemaQualified(t *testing.T) {
	db := openDB(t, `CREATE TABLE debt (country_name TEXT, indicator_name TEXT, indicator_code TEXT, debt REAL)`)

	info, err := InspectSQLite(context.Background(), db, "main.debt")
	require.NoError(t, err)
	assert.True(t, info.Ready())
	assert.Equal(t, int64(0), info.RowCount)
}

func TestInspectSQLiteMissingColumns(t *testing.T) {
	db := openDB(t, `CREATE TABLE international_debt (Country_Name TEXT, indicator_code TEXT)`)

	info, err := InspectSQLite(context.Background(), db, "international_debt")
	require.NoError(t, err)

	assert.True(t, info.Exists)
	assert.False(t, info.Ready())
	assert.Equal(t, []string{"indicator_name", "debt"}, info.Missing)
}

func TestInspectSQLiteMissingTable(t *testing.T) {
	db := openDB(t)

	info, err := InspectSQLite(context.Background(), db, "international_debt")
	require.NoError(t, err)

	assert.False(t, info.Exists)
	assert.False(t, info.Ready())
	assert.Len(t, info.Missing, 4)
	assert.Zero(t, info.RowCount)
}

func TestInspectSQLiteInvalidName(t *testing.T) {
	db := openDB(t)

	_, err := InspectSQLite(context.Background(), db, "debt); DROP TABLE x; --")
	assert.ErrorContains(t, err, "invalid table name")
}
