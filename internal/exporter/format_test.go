package exporter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPercent(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected string
	}{
		{name: "four decimal share", input: 0.6667, expected: "66.67%"},
		{name: "half", input: 0.5, expected: "50.00%"},
		{name: "small share", input: 0.0312, expected: "3.12%"},
		{name: "whole", input: 1, expected: "100.00%"},
		{name: "zero", input: 0, expected: "0.00%"},
		{name: "half rounds to even", input: 0.12345, expected: "12.34%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatPercent(tt.input))
		})
	}
}

func TestFormatInt(t *testing.T) {
	assert.Equal(t, "0", formatInt(0))
	assert.Equal(t, "2007", formatInt(2007))
	assert.Equal(t, "-5", formatInt(-5))
}
