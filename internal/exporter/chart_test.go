package exporter

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vacancystats/internal/shared/testutil"
	"vacancystats/pkg/contracts/domain"
)

func TestChartHTML(t *testing.T) {
	html, err := ChartHTML(testutil.SampleStatistics(), 1200, 900)
	require.NoError(t, err)

	for _, want := range []string{
		"Уровень зарплат по годам",
		"Количество вакансий по годам",
		"Уровень зарплат по городам",
		"Доля вакансий по городам",
		"з/п аналитик",
		"2007", "2008", "2009",
		"Москва",
		OtherLabel,
		"width: 1200px",
	} {
		assert.Contains(t, html, want)
	}
	assert.Equal(t, 4, strings.Count(html, "<svg"))
}

func TestGroupedBars(t *testing.T) {
	panel := groupedBars("t", []int{2007, 2008}, [][2]int{{100, 50}, {200, 0}}, [2][]string{{"a"}, {"b"}})

	require.Len(t, panel.Bars, 4)
	require.Len(t, panel.Labels, 2)
	require.Len(t, panel.Grid, 5)
	assert.Equal(t, "200", panel.Grid[4].Lines[0])

	// The tallest bar fills the plot, a zero value has no height
	assert.InDelta(t, plotBottom-plotTop, panel.Bars[2].Height, 1e-9)
	assert.InDelta(t, plotTop, panel.Bars[2].Y, 1e-9)
	assert.Zero(t, panel.Bars[3].Height)

	// All vacancies first, profession second
	assert.Equal(t, palette[0], panel.Bars[0].Color)
	assert.Equal(t, palette[1], panel.Bars[1].Color)
	assert.Less(t, panel.Bars[0].X, panel.Bars[1].X)
}

func TestGroupedBars_NoYears(t *testing.T) {
	panel := groupedBars("t", nil, nil, [2][]string{{"a"}, {"b"}})
	assert.Empty(t, panel.Bars)
	assert.Len(t, panel.Grid, 5)
}

func TestCityBars(t *testing.T) {
	cities := testutil.SampleStatistics().SalaryByCity
	panel := cityBars("t", cities)

	require.Len(t, panel.Bars, 3)
	assert.True(t, panel.Horizontal)
	// Highest salary on top
	assert.Less(t, panel.Bars[0].Y, panel.Bars[1].Y)
	assert.Greater(t, panel.Bars[0].Width, panel.Bars[1].Width)
	assert.Equal(t, []string{"Санкт-", "Петербург"}, panel.Labels[1].Lines)
}

func TestBars_NegativeSalaries(t *testing.T) {
	grouped := groupedBars("t", []int{2007}, [][2]int{{-500, 300}}, [2][]string{{"a"}, {"b"}})
	require.Len(t, grouped.Bars, 2)
	assert.Zero(t, grouped.Bars[0].Height)
	assert.Equal(t, plotBottom, grouped.Bars[0].Y)
	assert.Greater(t, grouped.Bars[1].Height, 0.0)

	horizontal := cityBars("t", []domain.CitySalary{{City: "Москва", Salary: 1000}, {City: "Тверь", Salary: -200}})
	require.Len(t, horizontal.Bars, 2)
	assert.Greater(t, horizontal.Bars[0].Width, 0.0)
	assert.Zero(t, horizontal.Bars[1].Width)

	for _, bar := range append(grouped.Bars, horizontal.Bars...) {
		assert.GreaterOrEqual(t, bar.Width, 0.0)
		assert.GreaterOrEqual(t, bar.Height, 0.0)
	}
}

func TestSharePie(t *testing.T) {
	pie := sharePie("t", testutil.SampleStatistics())

	require.Len(t, pie.Slices, 4)
	assert.Equal(t, "Москва", pie.Slices[0].Label)
	assert.Equal(t, OtherLabel, pie.Slices[3].Label)
	for _, s := range pie.Slices {
		assert.False(t, s.Full)
		assert.True(t, strings.HasPrefix(s.Path, "M"))
	}
	// Half of the pie uses the small arc flag, the rest are smaller still
	assert.Contains(t, pie.Slices[0].Path, " 0 0 0 ")
}

func TestSharePie_SingleCity(t *testing.T) {
	stats := &domain.Statistics{ShareByCity: []domain.CityShare{{City: "Москва", Share: 1}}}
	pie := sharePie("t", stats)

	require.Len(t, pie.Slices, 1)
	assert.True(t, pie.Slices[0].Full)
}

func TestSharePie_NoRemainder(t *testing.T) {
	stats := &domain.Statistics{ShareByCity: []domain.CityShare{{City: "A", Share: 0.6667}, {City: "B", Share: 0.3334}}}
	pie := sharePie("t", stats)

	// Rounded shares above one leave no remainder slice
	require.Len(t, pie.Slices, 2)
	assert.Equal(t, "B", pie.Slices[1].Label)
}

func TestNiceCeil(t *testing.T) {
	tests := []struct {
		input    float64
		expected float64
	}{
		{0, 1},
		{-3, 1},
		{1, 1},
		{3, 4},
		{100, 100},
		{101, 200},
		{38916, 40000},
		{57354, 100000},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, niceCeil(tt.input), "niceCeil(%v)", tt.input)
	}
}

func TestWrapLabel(t *testing.T) {
	assert.Equal(t, []string{"Москва"}, wrapLabel("Москва"))
	assert.Equal(t, []string{"Санкт-", "Петербург"}, wrapLabel("Санкт-Петербург"))
	assert.Equal(t, []string{"Нижний", "Новгород"}, wrapLabel("Нижний Новгород"))
	assert.Equal(t, []string{""}, wrapLabel(""))
}

func TestLineDY(t *testing.T) {
	assert.Equal(t, "0.35em", lineDY(0, 1))
	assert.Equal(t, "-0.20em", lineDY(0, 2))
	assert.Equal(t, "1.1em", lineDY(1, 2))
}

func TestChartRenderer_Render(t *testing.T) {
	browser := requireBrowser(t)
	logger, _ := testutil.NewTestLogger(t)
	path := filepath.Join(t.TempDir(), "graph.png")

	renderer := NewChartRenderer(browser, 1200, 900, logger, nil)
	require.NoError(t, renderer.Render(context.Background(), testutil.SampleStatistics(), path))

	png, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
}
