package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatistics_FilteredLookupsDefaultToZero(t *testing.T) {
	stats := &Statistics{
		Years:                []int{2019, 2020},
		SalaryByYear:         map[int]int{2019: 100, 2020: 200},
		CountByYear:          map[int]int{2019: 1, 2020: 2},
		FilteredSalaryByYear: map[int]int{2020: 150},
		FilteredCountByYear:  map[int]int{2020: 1},
	}

	assert.Equal(t, 0, stats.FilteredSalary(2019))
	assert.Equal(t, 0, stats.FilteredCount(2019))
	assert.Equal(t, 150, stats.FilteredSalary(2020))
	assert.Equal(t, 1, stats.FilteredCount(2020))

	empty := &Statistics{}
	assert.Equal(t, 0, empty.FilteredSalary(2020))
}

func TestParseOutputMode(t *testing.T) {
	tests := []struct {
		input  string
		want   OutputMode
		wantOK bool
	}{
		{"document", OutputModeDocument, true},
		{" Chart ", OutputModeChart, true},
		{"SPREADSHEET", OutputModeSpreadsheet, true},
		{"all", OutputModeAll, true},
		{"pdf", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseOutputMode(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
