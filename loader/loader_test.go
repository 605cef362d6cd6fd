package loader

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ridoystarlord/debtreport/schema"
	"github.com/ridoystarlord/debtreport/validator"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func sqliteFixture(t *testing.T, table string, rows [][]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "debt.db")

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE ` + table + ` (
		country_name TEXT,
		indicator_name TEXT,
		indicator_code TEXT,
		debt REAL
	)`)
	require.NoError(t, err)

	for _, r := range rows {
		_, err := db.Exec(`INSERT INTO `+table+` (country_name, indicator_name, indicator_code, debt) VALUES (?, ?, ?, ?)`, r...)
		require.NoError(t, err)
	}
	return path
}

func TestOpen(t *testing.T) {
	tests := []struct {
		location string
		want     Source
	}{
		{"postgres://localhost/debt", &PostgresSource{URL: "postgres://localhost/debt", Table: schema.DefaultTable}},
		{"postgresql://localhost/debt", &PostgresSource{URL: "postgresql://localhost/debt", Table: schema.DefaultTable}},
		{"sqlite://data/debt.db", &SQLiteSource{Path: "data/debt.db", Table: schema.DefaultTable}},
		{"data/debt.CSV", &CSVSource{Path: "data/debt.CSV"}},
		{"debt.yaml", &YAMLSource{Path: "debt.yaml"}},
		{"debt.yml", &YAMLSource{Path: "debt.yml"}},
		{"debt.sqlite3", &SQLiteSource{Path: "debt.sqlite3", Table: schema.DefaultTable}},
	}

	for _, tt := range tests {
		t.Run(tt.location, func(t *testing.T) {
			got, err := Open(tt.location, "")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOpenErrors(t *testing.T) {
	_, err := Open("", "")
	assert.ErrorContains(t, err, "no data source configured")

	_, err = Open("debt.xlsx", "")
	assert.ErrorContains(t, err, "unsupported data source")

	_, err = Open("postgres://localhost/debt", "debt; DROP TABLE users")
	assert.ErrorContains(t, err, "invalid table name")
}

func TestReadCSV(t *testing.T) {
	data := "\ufeffDebt,Country_Name,indicator_code,indicator_name,region\n" +
		"61739336.9, Afghanistan ,DT.AMT.DLXF.CD,\"Principal repayments, long-term\",South Asia\n" +
		",Chad,DT.INT.DLXF.CD,Interest payments,Africa\n"

	rows, err := readCSV(context.Background(), strings.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, []validator.RecordInput{
		{Row: 1, CountryName: "Afghanistan", IndicatorCode: "DT.AMT.DLXF.CD", IndicatorName: "Principal repayments, long-term", Debt: "61739336.9"},
		{Row: 2, CountryName: "Chad", IndicatorCode: "DT.INT.DLXF.CD", IndicatorName: "Interest payments", Debt: ""},
	}, rows)
}

func TestReadCSVHeaderOnly(t *testing.T) {
	rows, err := readCSV(context.Background(), strings.NewReader("country_name,indicator_name,indicator_code,debt\n"))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestReadCSVErrors(t *testing.T) {
	_, err := readCSV(context.Background(), strings.NewReader(""))
	assert.ErrorContains(t, err, "expected a header row")

	_, err = readCSV(context.Background(), strings.NewReader("country_name,indicator_code,debt\nA,I1,1\n"))
	assert.ErrorContains(t, err, `missing column "indicator_name"`)
}

func TestReadCSVCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := readCSV(ctx, strings.NewReader("country_name,indicator_name,indicator_code,debt\nA,N1,I1,1\n"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseYAML(t *testing.T) {
	data := []byte(`
records:
  - country_name: Afghanistan
    indicator_code: DT.AMT.DLXF.CD
    indicator_name: Principal repayments
    debt: 61739336.9
  - country_name: Chad
    indicator_code: DT.INT.DLXF.CD
    debt: null
  - country_name: Peru
    indicator_code: DT.INT.DLXF.CD
    debt: [1, 2]
  - country_name: Mali
    indicator_code: DT.INT.DLXF.CD
    debt: "many"
`)

	rows, err := parseYAML(data)
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, validator.RecordInput{
		Row:           1,
		CountryName:   "Afghanistan",
		IndicatorCode: "DT.AMT.DLXF.CD",
		IndicatorName: "Principal repayments",
		Debt:          "61739336.9",
	}, rows[0])
	assert.Equal(t, "", rows[1].Debt)
	assert.Equal(t, "", rows[2].Debt)
	assert.Equal(t, "many", rows[3].Debt)
	assert.Equal(t, 4, rows[3].Row)
}

func TestParseYAMLInvalid(t *testing.T) {
	_, err := parseYAML([]byte("records: [unclosed"))
	assert.ErrorContains(t, err, "unmarshalling YAML")
}

func TestSQLiteSource(t *testing.T) {
	path := sqliteFixture(t, schema.DefaultTable, [][]any{
		{"Brazil", "Principal repayments", "DT.AMT.DLXF.CD", 500.5},
		{"China", "Interest payments", "DT.INT.DLXF.CD", nil},
		{nil, "Interest payments", "DT.INT.DLXF.CD", 7},
	})

	src, err := Open("sqlite://"+path, "")
	require.NoError(t, err)

	rows, err := src.Rows(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Brazil", rows[0].CountryName)
	assert.Equal(t, "DT.AMT.DLXF.CD", rows[0].IndicatorCode)
	assert.Equal(t, "Principal repayments", rows[0].IndicatorName)
	assert.Equal(t, 1, rows[0].Row)
	assert.Equal(t, "", rows[1].Debt)
	assert.Equal(t, "", rows[2].CountryName)
	assert.Equal(t, 3, rows[2].Row)
}

func TestSQLiteSourceMissingTable(t *testing.T) {
	path := sqliteFixture(t, "other_table", nil)

	_, err := (&SQLiteSource{Path: path, Table: schema.DefaultTable}).Rows(context.Background())
	assert.ErrorContains(t, err, "querying international_debt")
}

func TestLoad(t *testing.T) {
	path := sqliteFixture(t, "debt", [][]any{
		{"A", "N1", "I1", 10},
		{"B", "N1", "I1", 30.25},
	})
	src, err := Open(path, "debt")
	require.NoError(t, err)

	core, logs := observer.New(zap.DebugLevel)
	records, err := Load(context.Background(), src, zap.New(core))
	require.NoError(t, err)

	assert.Equal(t, []schema.DebtRecord{
		{CountryName: "A", IndicatorCode: "I1", IndicatorName: "N1", Debt: 10},
		{CountryName: "B", IndicatorCode: "I1", IndicatorName: "N1", Debt: 30.25},
	}, records)
	require.Equal(t, 1, logs.FilterMessage("Loaded debt records").Len())
}

func TestLoadRejectsMalformedRow(t *testing.T) {
	path := writeFile(t, "debt.csv", "country_name,indicator_name,indicator_code,debt\n"+
		"A,N1,I1,10\n"+
		"B,N1,I1,-3\n")
	src, err := Open(path, "")
	require.NoError(t, err)

	core, logs := observer.New(zap.WarnLevel)
	records, err := Load(context.Background(), src, zap.New(core))
	assert.Nil(t, records)

	var malformed *schema.MalformedRecordError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, 2, malformed.Row)
	assert.Equal(t, "debt", malformed.Field)
	assert.Equal(t, 1, logs.FilterMessage("Rejected malformed record").Len())
}

func TestLoadMissingFile(t *testing.T) {
	src := &YAMLSource{Path: filepath.Join(t.TempDir(), "missing.yaml")}

	_, err := Load(context.Background(), src, nil)
	assert.ErrorContains(t, err, "reading yaml file "+src.Path)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSelectQueriesProjectSameColumns(t *testing.T) {
	assert.Equal(t, selectRecordsQuery, strings.Replace(selectRecordsQueryPostgres, "debt::text", "debt", 1))
}
