package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ridoystarlord/debtreport/output"
	"github.com/ridoystarlord/debtreport/schema"
	"github.com/ridoystarlord/debtreport/validator"
)

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate every record in the data source",
		Long: `Validate every record in the data source and report all problems at once.

This command checks:
- country_name and indicator_code are present
- debt is a non-negative number
- duplicate (country_name, indicator_code) pairs (warning: they still count)
- indicator codes used with more than one indicator_name (warning)

Examples:
  debtreport validate --source debt.csv
  debtreport validate --format json
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := a.source()
			if err != nil {
				return err
			}

			ctx, cancel := a.context(cmd)
			defer cancel()

			rows, err := src.Rows(ctx)
			if err != nil {
				return err
			}

			result := validator.ValidateDataset(rows)

			format, err := output.ParseFormat(a.cfg.Format)
			if err != nil {
				return err
			}
			switch format {
			case output.FormatJSON:
				err = output.WriteJSON(a.out, result)
			case output.FormatCSV:
				err = output.Write(a.out, format, output.Section{Key: "findings", Value: result, Table: findingsTable(result)})
			default:
				outputText(a.out, result)
			}
			if err != nil {
				return err
			}

			if !result.Valid {
				first := result.Errors[0]
				return fmt.Errorf("%d malformed records: %w", len(result.Errors), &schema.MalformedRecordError{
					Row:    first.Row,
					Field:  first.Field,
					Value:  first.Value,
					Reason: first.Message,
				})
			}
			return nil
		},
	}
}

func findingsTable(result *validator.ValidationResult) output.Table {
	t := output.Table{
		Title:   "Validation findings",
		Columns: []string{"severity", "type", "row", "field", "value", "message"},
	}
	for _, group := range [][]validator.ValidationError{result.Errors, result.Warnings, result.Info} {
		for _, f := range group {
			row := ""
			if f.Row > 0 {
				row = strconv.Itoa(f.Row)
			}
			t.Rows = append(t.Rows, []string{f.Severity, f.Type, row, f.Field, f.Value, f.Message})
		}
	}
	return t
}

func outputText(w io.Writer, result *validator.ValidationResult) {
	// Print summary
	if result.Valid {
		color.New(color.FgGreen).Fprintln(w, "✅ Dataset validation passed!")
	} else {
		color.New(color.FgRed).Fprintln(w, "❌ Dataset validation failed!")
	}

	printFindings(w, "🔴 Errors", result.Errors)
	printFindings(w, "🟡 Warnings", result.Warnings)
	printFindings(w, "🔵 Info", result.Info)

	fmt.Fprintf(w, "\n📊 Summary:\n")
	fmt.Fprintf(w, "  • Errors: %d\n", len(result.Errors))
	fmt.Fprintf(w, "  • Warnings: %d\n", len(result.Warnings))
	fmt.Fprintf(w, "  • Info: %d\n", len(result.Info))

	if result.Valid {
		fmt.Fprintf(w, "\n🎉 Every record is ready for reporting!\n")
	} else {
		fmt.Fprintf(w, "\n💡 Fix the errors above before running reports.\n")
	}
}

func printFindings(w io.Writer, label string, findings []validator.ValidationError) {
	if len(findings) == 0 {
		return
	}

	fmt.Fprintf(w, "\n%s (%d):\n", label, len(findings))
	for i, f := range findings {
		fmt.Fprintf(w, "  %d. ", i+1)
		if f.Row > 0 {
			fmt.Fprintf(w, "[row %d]", f.Row)
		}
		if f.Field != "" {
			fmt.Fprintf(w, ".%s", f.Field)
		}
		fmt.Fprintf(w, ": %s\n", f.Message)
	}
}
