package exporter

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "vacancystats/internal/errors"
	"vacancystats/internal/shared/testutil"
)

func TestReportHTML(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	renderer := NewDocumentRenderer(nil, "", logger, nil)

	html, err := renderer.ReportHTML(testutil.SampleStatistics(), []byte("\x89PNGfake"))
	require.NoError(t, err)

	assert.Contains(t, html, "Аналитика по зарплатам и городам для профессии Аналитик")
	assert.Contains(t, html, `src="data:image/png;base64,`)
	assert.Contains(t, html, "<th>Средняя зарплата - Аналитик</th>")
	assert.Contains(t, html, "<td>2008</td><td>43646</td><td>0</td><td>3</td><td>0</td>")
	assert.Contains(t, html, "<td>Москва</td><td>57354</td>")
	assert.Contains(t, html, "<td>Москва</td><td>50.00%</td>")
}

func TestReportHTML_NoChart(t *testing.T) {
	renderer := NewDocumentRenderer(nil, "", nil, nil)

	html, err := renderer.ReportHTML(testutil.SampleStatistics(), nil)
	require.NoError(t, err)
	assert.NotContains(t, html, "<img")
}

func TestReportHTML_CustomTemplate(t *testing.T) {
	dir := t.TempDir()
	tmpl := filepath.Join(dir, "custom.html")
	require.NoError(t, os.WriteFile(tmpl, []byte(
		`<p>{{.Profession}}{{range .ShareByCity}};{{.City}}={{.Percent}}{{end}}</p>`), 0644))

	renderer := NewDocumentRenderer(nil, tmpl, nil, nil)
	html, err := renderer.ReportHTML(testutil.SampleStatistics(), nil)
	require.NoError(t, err)
	assert.Equal(t, "<p>Аналитик;Москва=50.00%;Санкт-Петербург=30.00%;Екатеринбург=10.00%</p>", html)
}

func TestReportHTML_MissingTemplate(t *testing.T) {
	renderer := NewDocumentRenderer(nil, filepath.Join(t.TempDir(), "absent.html"), nil, nil)

	_, err := renderer.ReportHTML(testutil.SampleStatistics(), nil)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrTypeConfig, apperrors.TypeOf(err))
}

func TestDocumentRenderer_MissingChart(t *testing.T) {
	renderer := NewDocumentRenderer(nil, "", nil, nil)
	dir := t.TempDir()

	err := renderer.Render(context.Background(), testutil.SampleStatistics(),
		filepath.Join(dir, "graph.png"), filepath.Join(dir, "report.pdf"))
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrTypeStorage, apperrors.TypeOf(err))
}

func TestDocumentRenderer_Render(t *testing.T) {
	browser := requireBrowser(t)
	logger, _ := testutil.NewTestLogger(t)
	dir := t.TempDir()
	chartPath := filepath.Join(dir, "graph.png")
	pdfPath := filepath.Join(dir, "report.pdf")

	stats := testutil.SampleStatistics()
	require.NoError(t, NewChartRenderer(browser, 1200, 900, logger, nil).Render(context.Background(), stats, chartPath))
	require.NoError(t, NewDocumentRenderer(browser, "", logger, nil).Render(context.Background(), stats, chartPath, pdfPath))

	pdf, err := os.ReadFile(pdfPath)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}
