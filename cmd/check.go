package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ridoystarlord/debtreport/database"
	"github.com/ridoystarlord/debtreport/introspect"
	"github.com/ridoystarlord/debtreport/loader"
)

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check that the data source is reachable and well formed",
		Long: `Check the configured data source before running reports.

For database sources this command will:
- Verify connectivity
- Check that the debt table exists
- Check that it has country_name, indicator_code, indicator_name and debt
- Report the row count

For file sources it reads the file and reports the row count.

Examples:
  debtreport check --source postgres://localhost/international_debt
  debtreport check --source debt.csv --timeout 10s
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := a.source()
			if err != nil {
				return err
			}

			ctx, cancel := a.context(cmd)
			defer cancel()

			var info introspect.TableInfo
			switch s := src.(type) {
			case *loader.PostgresSource:
				pool, err := database.OpenPostgres(ctx, s.URL)
				if err != nil {
					return err
				}
				defer pool.Close()
				if info, err = introspect.InspectPostgres(ctx, pool, s.Table); err != nil {
					return err
				}
			case *loader.SQLiteSource:
				db, err := database.OpenSQLite(ctx, s.Path)
				if err != nil {
					return err
				}
				defer db.Close()
				if info, err = introspect.InspectSQLite(ctx, db, s.Table); err != nil {
					return err
				}
			default:
				rows, err := src.Rows(ctx)
				if err != nil {
					return err
				}
				color.New(color.FgGreen).Fprintf(a.out, "✅ %s is readable\n", src.Describe())
				fmt.Fprintf(a.out, "📊 Found %d rows\n", len(rows))
				return nil
			}

			return reportTable(a, src, info)
		},
	}
}

func reportTable(a *app, src loader.Source, info introspect.TableInfo) error {
	if !info.Ready() {
		if !info.Exists {
			return fmt.Errorf("%s not found", src.Describe())
		}
		return fmt.Errorf("%s is missing columns: %s", src.Describe(), strings.Join(info.Missing, ", "))
	}

	color.New(color.FgGreen).Fprintf(a.out, "✅ %s is reachable\n", src.Describe())
	fmt.Fprintf(a.out, "📋 Columns: %s\n", strings.Join(info.Columns, ", "))
	fmt.Fprintf(a.out, "📊 Found %d rows\n", info.RowCount)
	return nil
}
