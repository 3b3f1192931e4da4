package usecase_test

import (
	"encoding/json"
	"testing"

	"mis-dashboard/internal/usecase"

	"github.com/stretchr/testify/assert"
)

func TestToFloat(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  float64
	}{
		{name: "annotation after slash", value: "12.5/pc", want: 12.5},
		{name: "letters only", value: "abc", want: 0},
		{name: "nil", value: nil, want: 0},
		{name: "empty string", value: "", want: 0},
		{name: "negative with unit", value: "-3.2kg", want: -3.2},
		{name: "thousands separator", value: "1,250.75", want: 1250.75},
		{name: "second dot ignored", value: "1.2.3", want: 1.2},
		{name: "slash first", value: "/42", want: 0},
		{name: "lone minus", value: "-", want: 0},
		{name: "float value", value: 7.25, want: 7.25},
		{name: "int value", value: 3, want: 3},
		{name: "zero", value: 0, want: 0},
		{name: "json number", value: json.Number("88.5"), want: 88.5},
		{name: "false", value: false, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, usecase.ToFloat(tt.value), 1e-9)
		})
	}
}

func TestFormatFixed(t *testing.T) {
	assert.Equal(t, "12.500", usecase.FormatFixed("12.5/pc", 3))
	assert.Equal(t, "0.000", usecase.FormatFixed(nil, 3))
	assert.Equal(t, "-3.20", usecase.FormatFixed("-3.2kg", 2))
	assert.Equal(t, "500", usecase.FormatFixed("500", 0))
}
