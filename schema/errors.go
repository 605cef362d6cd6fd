package schema

import (
	"errors"
	"fmt"
)

// ErrEmptyDataset is returned by every query when no records are loaded.
var ErrEmptyDataset = errors.New("no debt records loaded")

// UnknownIndicatorError reports an indicator code with no matching records.
type UnknownIndicatorError struct {
	Code string
}

func (e *UnknownIndicatorError) Error() string {
	return fmt.Sprintf("no records for indicator %q", e.Code)
}

// MalformedRecordError reports a row rejected at load time. Row is 1-based.
type MalformedRecordError struct {
	Row    int
	Field  string
	Value  string
	Reason string
}

func (e *MalformedRecordError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("row %d: %s %s", e.Row, e.Field, e.Reason)
	}
	return fmt.Sprintf("row %d: %s %s (got %q)", e.Row, e.Field, e.Reason, e.Value)
}

// InvalidLimitError reports a negative row limit.
type InvalidLimitError struct {
	Limit int
}

func (e *InvalidLimitError) Error() string {
	return fmt.Sprintf("limit must not be negative, got %d", e.Limit)
}

// Kind names the error category for CLI reporting.
func Kind(err error) string {
	var unknown *UnknownIndicatorError
	var malformed *MalformedRecordError
	var limit *InvalidLimitError

	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrEmptyDataset):
		return "EmptyDatasetError"
	case errors.As(err, &unknown):
		return "UnknownIndicatorError"
	case errors.As(err, &malformed):
		return "MalformedRecordError"
	case errors.As(err, &limit):
		return "InvalidLimitError"
	default:
		return "Error"
	}
}
