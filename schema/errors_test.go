package schema

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKind(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{ErrEmptyDataset, "EmptyDatasetError"},
		{fmt.Errorf("total_debt: %w", ErrEmptyDataset), "EmptyDatasetError"},
		{&UnknownIndicatorError{Code: "I9"}, "UnknownIndicatorError"},
		{fmt.Errorf("loading: %w", &MalformedRecordError{Row: 2, Field: "debt"}), "MalformedRecordError"},
		{&InvalidLimitError{Limit: -1}, "InvalidLimitError"},
		{errors.New("connection refused"), "Error"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Kind(tt.err), "Kind(%v)", tt.err)
	}
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, `no records for indicator "I9"`, (&UnknownIndicatorError{Code: "I9"}).Error())
	assert.Equal(t, "row 3: country_name must not be null or empty",
		(&MalformedRecordError{Row: 3, Field: "country_name", Reason: "must not be null or empty"}).Error())
	assert.Equal(t, `row 4: debt must be a non-negative number (got "-1")`,
		(&MalformedRecordError{Row: 4, Field: "debt", Value: "-1", Reason: "must be a non-negative number"}).Error())
	assert.Equal(t, "limit must not be negative, got -2", (&InvalidLimitError{Limit: -2}).Error())
}
