package validator

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	govalidator "github.com/go-playground/validator/v10"

	"github.com/ridoystarlord/debtreport/schema"
)

// RecordInput is one raw row as read from a source, before any typing.
// Row is 1-based. SQL NULLs and empty cells arrive as "".
type RecordInput struct {
	Row           int    `json:"row"`
	CountryName   string `json:"country_name" validate:"required"`
	IndicatorCode string `json:"indicator_code" validate:"required"`
	IndicatorName string `json:"indicator_name"`
	Debt          string `json:"debt" validate:"required,debt"`
}

// ValidationError represents a validation finding with details
type ValidationError struct {
	Type     string `json:"type"`
	Row      int    `json:"row,omitempty"`
	Field    string `json:"field,omitempty"`
	Value    string `json:"value,omitempty"`
	Message  string `json:"message"`
	Severity string `json:"severity"` // "error", "warning", "info"
}

// ValidationResult contains all validation results
type ValidationResult struct {
	Valid    bool              `json:"valid"`
	Errors   []ValidationError `json:"errors"`
	Warnings []ValidationError `json:"warnings"`
	Info     []ValidationError `json:"info"`
}

var recordValidate *govalidator.Validate

func init() {
	recordValidate = govalidator.New()

	// Report column names instead of Go field names.
	recordValidate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := recordValidate.RegisterValidation("debt", validateDebt); err != nil {
		panic(fmt.Sprintf("registering debt validation: %v", err))
	}
}

// validateDebt accepts a finite, non-negative decimal amount.
func validateDebt(fl govalidator.FieldLevel) bool {
	_, err := parseDebt(fl.Field().String())
	return err == nil
}

func parseDebt(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("not a finite number")
	}
	if v < 0 {
		return 0, fmt.Errorf("negative")
	}
	return v, nil
}

// ToRecord validates a raw row and converts it to a DebtRecord. Failures are
// returned as *schema.MalformedRecordError.
func ToRecord(in RecordInput) (schema.DebtRecord, error) {
	if err := recordValidate.Struct(in); err != nil {
		return schema.DebtRecord{}, malformed(in, err)
	}

	debt, err := parseDebt(in.Debt)
	if err != nil {
		return schema.DebtRecord{}, &schema.MalformedRecordError{
			Row:    in.Row,
			Field:  schema.ColumnDebt,
			Value:  in.Debt,
			Reason: "must be a non-negative number",
		}
	}

	return schema.DebtRecord{
		CountryName:   in.CountryName,
		IndicatorCode: in.IndicatorCode,
		IndicatorName: in.IndicatorName,
		Debt:          debt,
	}, nil
}

// ToRecords converts every row, stopping at the first malformed one.
func ToRecords(ins []RecordInput) ([]schema.DebtRecord, error) {
	records := make([]schema.DebtRecord, 0, len(ins))
	for _, in := range ins {
		rec, err := ToRecord(in)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// CheckRecord validates an already typed record. row is 1-based.
func CheckRecord(row int, rec schema.DebtRecord) error {
	in := RecordInput{
		Row:           row,
		CountryName:   rec.CountryName,
		IndicatorCode: rec.IndicatorCode,
		IndicatorName: rec.IndicatorName,
		Debt:          strconv.FormatFloat(rec.Debt, 'g', -1, 64),
	}
	_, err := ToRecord(in)
	return err
}

func malformed(in RecordInput, err error) error {
	var verrs govalidator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("row %d: %w", in.Row, err)
	}

	fe := verrs[0]
	out := &schema.MalformedRecordError{
		Row:   in.Row,
		Field: fe.Field(),
		Value: fmt.Sprint(fe.Value()),
	}
	switch fe.Tag() {
	case "required":
		out.Reason = "must not be null or empty"
		out.Value = ""
	case "debt":
		out.Reason = "must be a non-negative number"
	default:
		out.Reason = fmt.Sprintf("failed %q check", fe.Tag())
	}
	return out
}

type pairKey struct {
	country string
	code    string
}

// ValidateDataset checks every row and reports all findings at once instead
// of stopping at the first bad row.
func ValidateDataset(ins []RecordInput) *ValidationResult {
	result := &ValidationResult{
		Valid:    true,
		Errors:   []ValidationError{},
		Warnings: []ValidationError{},
		Info:     []ValidationError{},
	}

	firstRow := make(map[pairKey]int)
	names := make(map[string][]string)
	var codes []string
	countries := make(map[string]struct{})

	for _, in := range ins {
		if _, err := ToRecord(in); err != nil {
			var bad *schema.MalformedRecordError
			if errors.As(err, &bad) {
				result.Errors = append(result.Errors, ValidationError{
					Type:     "malformed_record",
					Row:      bad.Row,
					Field:    bad.Field,
					Value:    bad.Value,
					Message:  bad.Reason,
					Severity: "error",
				})
			} else {
				result.Errors = append(result.Errors, ValidationError{
					Type:     "malformed_record",
					Row:      in.Row,
					Message:  err.Error(),
					Severity: "error",
				})
			}
			continue
		}

		countries[in.CountryName] = struct{}{}

		key := pairKey{country: in.CountryName, code: in.IndicatorCode}
		if first, ok := firstRow[key]; ok {
			result.Warnings = append(result.Warnings, ValidationError{
				Type:     "duplicate_pair",
				Row:      in.Row,
				Message:  fmt.Sprintf("%s/%s already seen at row %d; both rows count toward sums and averages", in.CountryName, in.IndicatorCode, first),
				Severity: "warning",
			})
		} else {
			firstRow[key] = in.Row
		}

		if _, ok := names[in.IndicatorCode]; !ok {
			codes = append(codes, in.IndicatorCode)
		}
		if !contains(names[in.IndicatorCode], in.IndicatorName) {
			names[in.IndicatorCode] = append(names[in.IndicatorCode], in.IndicatorName)
		}
	}

	for _, code := range codes {
		if ns := names[code]; len(ns) > 1 {
			result.Warnings = append(result.Warnings, ValidationError{
				Type:     "indicator_name_conflict",
				Field:    schema.ColumnIndicatorName,
				Value:    code,
				Message:  fmt.Sprintf("indicator %s has %d names: %s", code, len(ns), strings.Join(ns, " | ")),
				Severity: "warning",
			})
		}
	}

	result.Info = append(result.Info,
		ValidationError{
			Type:     "row_count",
			Message:  fmt.Sprintf("%d rows read", len(ins)),
			Severity: "info",
		},
		ValidationError{
			Type:     "country_count",
			Message:  fmt.Sprintf("%d distinct countries", len(countries)),
			Severity: "info",
		},
		ValidationError{
			Type:     "indicator_count",
			Message:  fmt.Sprintf("%d distinct indicators", len(names)),
			Severity: "info",
		},
	)

	result.Valid = len(result.Errors) == 0
	return result
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
