package exporter

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	apperrors "vacancystats/internal/errors"
	"vacancystats/internal/shared/testutil"
	"vacancystats/pkg/contracts/domain"
)

func exportWorkbook(t *testing.T, stats *domain.Statistics) *excelize.File {
	t.Helper()
	logger, _ := testutil.NewTestLogger(t)
	path := filepath.Join(t.TempDir(), "report.xlsx")

	require.NoError(t, NewWorkbookExporter(logger, nil).Export(context.Background(), stats, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func cellValue(t *testing.T, f *excelize.File, sheet, cell string) string {
	t.Helper()
	v, err := f.GetCellValue(sheet, cell, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	return v
}

func TestWorkbookExporter_Sheets(t *testing.T) {
	f := exportWorkbook(t, testutil.SampleStatistics())
	assert.Equal(t, []string{YearSheet, CitySheet}, f.GetSheetList())
}

func TestWorkbookExporter_YearSheet(t *testing.T) {
	f := exportWorkbook(t, testutil.SampleStatistics())

	rows, err := f.GetRows(YearSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, YearHeaders("Аналитик"), rows[0])
	assert.Equal(t, []string{"2007", "38916", "42500", "4", "2"}, rows[1])
	assert.Equal(t, []string{"2008", "43646", "0", "3", "0"}, rows[2])
	assert.Equal(t, []string{"2009", "42492", "50000", "3", "1"}, rows[3])
}

func TestWorkbookExporter_CitySheet(t *testing.T) {
	f := exportWorkbook(t, testutil.SampleStatistics())

	assert.Equal(t, "Город", cellValue(t, f, CitySheet, "A1"))
	assert.Equal(t, "Уровень зарплат", cellValue(t, f, CitySheet, "B1"))
	assert.Equal(t, "Город", cellValue(t, f, CitySheet, "D1"))
	assert.Equal(t, "Доля вакансий", cellValue(t, f, CitySheet, "E1"))
	assert.Empty(t, cellValue(t, f, CitySheet, "C1"))

	assert.Equal(t, "Москва", cellValue(t, f, CitySheet, "A2"))
	assert.Equal(t, "57354", cellValue(t, f, CitySheet, "B2"))
	assert.Equal(t, "Екатеринбург", cellValue(t, f, CitySheet, "A4"))

	assert.Equal(t, "Санкт-Петербург", cellValue(t, f, CitySheet, "D3"))
	assert.Equal(t, "0.3", cellValue(t, f, CitySheet, "E3"))

	// Shares are stored as numbers and displayed as percentages
	shown, err := f.GetCellValue(CitySheet, "E2")
	require.NoError(t, err)
	assert.Equal(t, "50.00%", shown)
}

func TestWorkbookExporter_Styles(t *testing.T) {
	f := exportWorkbook(t, testutil.SampleStatistics())

	headerStyleID, err := f.GetCellStyle(YearSheet, "C1")
	require.NoError(t, err)
	headerStyle, err := f.GetStyle(headerStyleID)
	require.NoError(t, err)
	require.NotNil(t, headerStyle.Font)
	assert.True(t, headerStyle.Font.Bold)
	assert.Len(t, headerStyle.Border, 4)

	dataStyleID, err := f.GetCellStyle(YearSheet, "B2")
	require.NoError(t, err)
	dataStyle, err := f.GetStyle(dataStyleID)
	require.NoError(t, err)
	assert.Len(t, dataStyle.Border, 4)

	percentStyleID, err := f.GetCellStyle(CitySheet, "E2")
	require.NoError(t, err)
	percentStyle, err := f.GetStyle(percentStyleID)
	require.NoError(t, err)
	assert.Equal(t, percentFormat, percentStyle.NumFmt)
}

func TestWorkbookExporter_ColumnWidths(t *testing.T) {
	f := exportWorkbook(t, testutil.SampleStatistics())

	// "Средняя зарплата - Аналитик" is the widest value in column C
	width, err := f.GetColWidth(YearSheet, "C")
	require.NoError(t, err)
	assert.Equal(t, float64(len([]rune("Средняя зарплата - Аналитик"))+2), width)

	year, err := f.GetColWidth(YearSheet, "A")
	require.NoError(t, err)
	assert.Less(t, year, width)

	city, err := f.GetColWidth(CitySheet, "D")
	require.NoError(t, err)
	assert.Equal(t, float64(len([]rune("Санкт-Петербург"))+2), city)
}

func TestWorkbookExporter_DoesNotMutate(t *testing.T) {
	stats := testutil.SampleStatistics()
	before := testutil.SampleStatistics()

	exportWorkbook(t, stats)
	assert.Equal(t, before, stats)
}

func TestWorkbookExporter_Span(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	defer tp.Shutdown(context.Background())

	logger, _ := testutil.NewTestLogger(t)
	exporter := NewWorkbookExporter(logger, tp.Tracer("test"))
	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, exporter.Export(context.Background(), testutil.SampleStatistics(), path))

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "export.workbook", spans[0].Name())
}

func TestWorkbookExporter_UnwritablePath(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	path := filepath.Join(t.TempDir(), "missing", "dir", "report.xlsx")

	err := NewWorkbookExporter(logger, nil).Export(context.Background(), testutil.SampleStatistics(), path)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrTypeStorage, apperrors.TypeOf(err))
}
