package web

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string  `validate:"required,notblank"`
	Price float64 `validate:"required,gt=0"`
}

func Test_NewValidator(t *testing.T) {
	v := NewValidator()

	testCases := []struct {
		name     string
		input    sample
		expected map[string]string
	}{
		{name: "valid", input: sample{Name: "Laptop", Price: 1}, expected: nil},
		{name: "blank name", input: sample{Name: "   ", Price: 1}, expected: map[string]string{"Name": "failed on rule: notblank"}},
		{name: "empty name", input: sample{Name: "", Price: 1}, expected: map[string]string{"Name": "failed on rule: required"}},
		{name: "negative price", input: sample{Name: "x", Price: -3}, expected: map[string]string{"Price": "failed on rule: gt"}},
		{name: "zero price", input: sample{Name: "x", Price: 0}, expected: map[string]string{"Price": "failed on rule: required"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Struct(tc.input)
			if tc.expected == nil {
				require.NoError(t, err)
				return
			}
			fields, ok := ValidationErrors(err)
			require.True(t, ok)
			assert.Equal(t, tc.expected, fields)
		})
	}
}

func Test_ValidationErrors_notValidationError(t *testing.T) {
	fields, ok := ValidationErrors(errors.New("other"))
	assert.False(t, ok)
	assert.Nil(t, fields)
}
